package loader

import (
	"time"

	"tierbench/internal/domain"
)

// BuildGraphRows 把一次关系型批次映射为建图所需的节点和关系。
// 引用了批次外实体的关系会被跳过。
func BuildGraphRows(batch domain.BatchSet, runID string, now time.Time) ([]domain.NodeRow, []domain.RelRow) {
	if runID == "" {
		runID = now.UTC().Format("20060102T150405Z")
	}
	now = now.UTC()

	nodes := make([]domain.NodeRow, 0, len(batch.Branches)+len(batch.Animals))
	rels := make([]domain.RelRow, 0, len(batch.Relations))

	branchKeys := make(map[int]string, len(batch.Branches))
	for _, b := range batch.Branches {
		key := domain.MakeKey(domain.PrefixBranch, b.ID)
		branchKeys[b.ID] = key
		nodes = append(nodes, domain.NodeRow{
			Key:    key,
			Labels: []string{domain.LabelBranch, domain.LabelSeeded},
			Properties: map[string]any{
				"id":      int64(b.ID),
				"name":    b.Name,
				"address": b.Address,
			},
			RunID:     runID,
			UpdatedAt: now,
		})
	}

	animalKeys := make(map[string]string, len(batch.Animals))
	for _, a := range batch.Animals {
		key := domain.MakeKey(domain.PrefixAnimal, a.Name)
		animalKeys[a.Name] = key
		nodes = append(nodes, domain.NodeRow{
			Key:    key,
			Labels: []string{domain.LabelAnimal, domain.LabelSeeded},
			Properties: map[string]any{
				"name":   a.Name,
				"size":   a.Size,
				"weight": a.Weight,
			},
			RunID:     runID,
			UpdatedAt: now,
		})
	}

	for _, r := range batch.Relations {
		start, ok := branchKeys[r.BranchID]
		if !ok {
			continue
		}
		end, ok := animalKeys[r.AnimalName]
		if !ok {
			continue
		}
		rels = append(rels, domain.RelRow{
			StartKey:   start,
			EndKey:     end,
			Type:       domain.RelHolds,
			Properties: map[string]any{"count": int64(r.Count)},
			RunID:      runID,
		})
	}
	return nodes, rels
}
