package seed

import (
	"fmt"

	"tierbench/internal/domain"
)

// Request 是关系型造数请求。
type Request struct {
	AnimalCount        int    `json:"animal_count"`
	BranchCount        int    `json:"branch_count"`
	RelationCount      int    `json:"relation_count"`
	RelationMaxPerItem int    `json:"relation_count_max_per_item"`
	Policy             string `json:"policy,omitempty"`
	Clear              bool   `json:"clear,omitempty"`
	ResetSource        bool   `json:"reset_source,omitempty"`
}

// DocRequest 是文档型造数请求。
type DocRequest struct {
	BranchCount      int  `json:"branch_count"`
	AnimalsPerBranch int  `json:"animals_per_branch"`
	Clear            bool `json:"clear,omitempty"`
	ResetSource      bool `json:"reset_source,omitempty"`
}

// Batch 按固定顺序 分店 -> 动物 -> 关系 生成一个自洽的 BatchSet。
// 任一步失败都不返回部分结果。
func (g *Generator) Batch(req Request, policy Policy) (domain.BatchSet, error) {
	if req.RelationCount < 0 {
		return domain.BatchSet{}, fmt.Errorf("%w: got %d", ErrInvalidRelationCount, req.RelationCount)
	}
	branches, err := g.Branches(req.BranchCount, 0)
	if err != nil {
		return domain.BatchSet{}, fmt.Errorf("generate branches: %w", err)
	}
	animals, err := g.Animals(req.AnimalCount)
	if err != nil {
		return domain.BatchSet{}, fmt.Errorf("generate animals: %w", err)
	}
	relations, err := g.Relations(branches, animals, req.RelationCount, req.RelationMaxPerItem, policy)
	if err != nil {
		return domain.BatchSet{}, fmt.Errorf("generate relations: %w", err)
	}
	return domain.BatchSet{Branches: branches, Animals: animals, Relations: relations}, nil
}

// DocBatch 生成文档模型的分店批次。
func (g *Generator) DocBatch(req DocRequest) (domain.DocBatchSet, error) {
	branches, err := g.DocBranches(req.BranchCount, req.AnimalsPerBranch)
	if err != nil {
		return domain.DocBatchSet{}, fmt.Errorf("generate document branches: %w", err)
	}
	return domain.DocBatchSet{Branches: branches}, nil
}
