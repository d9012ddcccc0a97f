package seed

import (
	"fmt"

	"tierbench/internal/domain"
)

// DocBranches 生成带嵌入动物的分店文档。
//
// 每个分店依次抽取 id、名字、地址，再以 index*animalsPerBranch 为偏移生成动物。
func (g *Generator) DocBranches(count, animalsPerBranch int) ([]domain.DocBranch, error) {
	n, err := clampCount("branch", count)
	if err != nil {
		return nil, err
	}
	perBranch, err := clampCount("animals per branch", animalsPerBranch)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, n)
	branches := make([]domain.DocBranch, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.uniqueHexID(ids)
		if err != nil {
			return nil, err
		}
		name := g.src.Company()
		address := g.src.StreetAddress()
		animals, err := g.DocAnimals(perBranch, i*perBranch)
		if err != nil {
			return nil, err
		}
		branches = append(branches, domain.DocBranch{
			ID:      id,
			Name:    name,
			Address: address,
			Animals: animals,
		})
	}
	return branches, nil
}

func (g *Generator) uniqueHexID(seen map[string]struct{}) (string, error) {
	for attempts := 0; attempts < attemptsPerItem; attempts++ {
		id := g.HexID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("%w: no unique hex id after %d attempts", ErrExhaustedSource, attemptsPerItem)
}
