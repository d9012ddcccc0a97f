package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	LabelAnimal = "Animal"
	LabelBranch = "Branch"
	LabelSeeded = "Seeded"

	RelHolds = "HOLDS"
)

const (
	PrefixAnimal = "ANIMAL"
	PrefixBranch = "BRANCH"
)

// RelEndpoint 描述关系两端节点的标签。
type RelEndpoint struct {
	Start string
	End   string
}

// RelEndpoints 记录每种关系类型的起止标签，写关系时用来收窄 MATCH。
var RelEndpoints = map[string]RelEndpoint{
	RelHolds: {Start: LabelBranch, End: LabelAnimal},
}

// MakeKey 生成图节点 key，如 BRANCH_7、ANIMAL_lion，前缀区分实体类型。
func MakeKey(prefix string, rawID any) string {
	return fmt.Sprintf("%s_%v", prefix, rawID)
}

// LabelPattern 把标签排序去重后拼成 Cypher 片段，如 ":Animal:Seeded"。
// 同一组标签无论输入顺序如何都得到同一个字符串，可直接作为分组 key。
func LabelPattern(labels []string) string {
	set := make(map[string]struct{}, len(labels))
	uniq := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, dup := set[l]; dup || l == "" {
			continue
		}
		set[l] = struct{}{}
		uniq = append(uniq, l)
	}
	if len(uniq) == 0 {
		return ""
	}
	sort.Strings(uniq)
	var sb strings.Builder
	for _, l := range uniq {
		sb.WriteByte(':')
		sb.WriteString(l)
	}
	return sb.String()
}
