package seed

import (
	"fmt"
	"strings"

	"tierbench/internal/domain"
)

// Policy 决定关系生成时分店的抽取方式。
type Policy int

const (
	// WithReplacement 对 (分店, 动物) 对做拒绝采样，分店可以重复使用。
	WithReplacement Policy = iota
	// WithoutReplacement 分店不放回抽取，每条关系用到的分店都不同。
	WithoutReplacement
)

// String 返回策略的配置名。
func (p Policy) String() string {
	switch p {
	case WithReplacement:
		return "with_replacement"
	case WithoutReplacement:
		return "without_replacement"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy 解析配置中的策略名，空串表示 WithReplacement。
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "with_replacement":
		return WithReplacement, nil
	case "without_replacement":
		return WithoutReplacement, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, raw)
	}
}

// RelationLimit 返回在给定策略下最多能生成多少条不重复关系。
func RelationLimit(branches, animals int, policy Policy) int {
	if policy == WithoutReplacement {
		return branches
	}
	return branches * animals
}

// Relations 在已生成的分店和动物之间生成互不重复的关系。
//
// count 会被截断到 RelationLimit；每条被接受的关系再抽取 [1, maxCount] 的数量。
// maxCount <= 0 时使用 DefaultMaxCount。
func (g *Generator) Relations(branches []domain.Branch, animals []domain.Animal, count, maxCount int, policy Policy) ([]domain.Relation, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRelationCount, count)
	}
	if len(branches) == 0 || len(animals) == 0 {
		return nil, fmt.Errorf("%w: relations need branches and animals, got %d and %d", ErrInvalidCount, len(branches), len(animals))
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	if limit := RelationLimit(len(branches), len(animals), policy); count > limit {
		count = limit
	}

	switch policy {
	case WithReplacement:
		return g.relationsWithReplacement(branches, animals, count, maxCount)
	case WithoutReplacement:
		return g.relationsWithoutReplacement(branches, animals, count, maxCount), nil
	default:
		return nil, fmt.Errorf("unknown relation policy %d", int(policy))
	}
}

func (g *Generator) relationsWithReplacement(branches []domain.Branch, animals []domain.Animal, count, maxCount int) ([]domain.Relation, error) {
	relations := make([]domain.Relation, 0, count)
	accepted := make(map[domain.RelationKey]struct{}, count)
	budget := (count + 1) * attemptsPerItem * 2
	for attempts := 0; len(relations) < count; attempts++ {
		if attempts >= budget {
			return nil, fmt.Errorf("%w: found %d of %d distinct pairs after %d draws", ErrExhaustedSource, len(relations), count, attempts)
		}
		branch := branches[g.src.Intn(len(branches))]
		animal := animals[g.src.Intn(len(animals))]
		key := domain.RelationKey{BranchID: branch.ID, AnimalName: animal.Name}
		if _, dup := accepted[key]; dup {
			continue
		}
		accepted[key] = struct{}{}
		relations = append(relations, domain.Relation{
			BranchID:   branch.ID,
			AnimalName: animal.Name,
			Count:      1 + g.src.Intn(maxCount),
		})
	}
	return relations, nil
}

func (g *Generator) relationsWithoutReplacement(branches []domain.Branch, animals []domain.Animal, count, maxCount int) []domain.Relation {
	pool := make([]int, len(branches))
	for i := range pool {
		pool[i] = i
	}
	relations := make([]domain.Relation, 0, count)
	for len(relations) < count {
		pick := g.src.Intn(len(pool))
		branch := branches[pool[pick]]
		pool = append(pool[:pick], pool[pick+1:]...)
		animal := animals[g.src.Intn(len(animals))]
		relations = append(relations, domain.Relation{
			BranchID:   branch.ID,
			AnimalName: animal.Name,
			Count:      1 + g.src.Intn(maxCount),
		})
	}
	return relations
}
