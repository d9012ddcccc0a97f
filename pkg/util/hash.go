package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint 返回 v 的 JSON 编码的 sha256，用于比较两次造数结果是否一致。
// map 的 key 由 encoding/json 排序，因此结果稳定。
func Fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("编码指纹内容失败: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
