package graph

import (
	"context"
	"fmt"

	"tierbench/internal/cypher"
)

// Reader 是只读查询接口，*loader.Client 实现了它。
type Reader interface {
	RunRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// HeldAnimal 是图中某分店持有的一种动物。
type HeldAnimal struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
}

// Holder 是图中持有某动物的分店。
type Holder struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Count   int    `json:"count"`
}

// Queries 在 Reader 之上提供动物与分店的遍历查询。
type Queries struct {
	reader Reader
}

func NewQueries(reader Reader) *Queries {
	return &Queries{reader: reader}
}

// AnimalsByBranch 沿 HOLDS 查找分店持有的动物。
func (q *Queries) AnimalsByBranch(ctx context.Context, branchID int) ([]HeldAnimal, error) {
	records, err := q.reader.RunRead(ctx, cypher.MustAsset("animals_by_branch.cql"), map[string]any{"branch_id": int64(branchID)})
	if err != nil {
		return nil, fmt.Errorf("查询分店动物失败: %w", err)
	}
	out := make([]HeldAnimal, 0, len(records))
	for _, rec := range records {
		out = append(out, HeldAnimal{
			Name:   asString(rec["name"]),
			Size:   asFloat(rec["size"]),
			Weight: asFloat(rec["weight"]),
			Count:  asInt(rec["count"]),
		})
	}
	return out, nil
}

// BranchesByAnimal 反向沿 HOLDS 查找持有某动物的分店。
func (q *Queries) BranchesByAnimal(ctx context.Context, name string) ([]Holder, error) {
	records, err := q.reader.RunRead(ctx, cypher.MustAsset("branches_by_animal.cql"), map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("查询动物所在分店失败: %w", err)
	}
	out := make([]Holder, 0, len(records))
	for _, rec := range records {
		out = append(out, Holder{
			ID:      asInt(rec["id"]),
			Name:    asString(rec["name"]),
			Address: asString(rec["address"]),
			Count:   asInt(rec["count"]),
		})
	}
	return out, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
