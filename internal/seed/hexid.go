package seed

import (
	"strconv"
	"strings"
)

const (
	hexIDLength = 24
	hexDigits   = "0123456789abcdef"
)

// HexID 生成形如文档数据库 ObjectID 的 24 位小写十六进制串。
//
// 前缀是当前时间的纳秒十进制表示，剩余位从共享随机源抽取。
// 只保证同一批次内大概率不重复，不能用作强唯一标识。
func (g *Generator) HexID() string {
	prefix := strconv.FormatInt(g.now().UnixNano(), 10)
	if len(prefix) > hexIDLength {
		prefix = prefix[len(prefix)-hexIDLength:]
	}
	var sb strings.Builder
	sb.Grow(hexIDLength)
	sb.WriteString(prefix)
	for sb.Len() < hexIDLength {
		sb.WriteByte(hexDigits[g.src.Intn(len(hexDigits))])
	}
	return sb.String()
}
