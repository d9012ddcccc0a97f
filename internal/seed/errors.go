package seed

import "errors"

var (
	// ErrInvalidCount 表示数量非法（<= 0）或输入批次为空。
	ErrInvalidCount = errors.New("invalid count")
	// ErrExhaustedSource 表示去重重试用完了尝试次数。
	ErrExhaustedSource = errors.New("source exhausted")
	// ErrInvalidRelationCount 表示关系数量为负。
	ErrInvalidRelationCount = errors.New("invalid relation count")
	// ErrInvalidPolicy 表示无法识别的关系抽取策略。
	ErrInvalidPolicy = errors.New("invalid relation policy")
)
