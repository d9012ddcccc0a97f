package loader

import (
	"context"
	"fmt"
	"sort"

	"tierbench/internal/cypher"
	"tierbench/internal/domain"
	"tierbench/pkg/util"
)

const defaultBatchSize = 100

// writeChunks 把同一条语句的参数按 batchSize 切块，每块一次写事务。
func writeChunks[T any](ctx context.Context, w Writer, query string, rows []T, batchSize int, encode func(T) map[string]any) error {
	for _, chunk := range util.Batch(rows, batchSize) {
		params := make([]map[string]any, len(chunk))
		for i, row := range chunk {
			params[i] = encode(row)
		}
		if err := w.RunWrite(ctx, query, map[string]any{"rows": params}); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encodeNode(row domain.NodeRow) map[string]any {
	return map[string]any{
		"key":        row.Key,
		"properties": row.Properties,
		"run_id":     row.RunID,
		"updated_at": row.UpdatedAt,
	}
}

func encodeRel(row domain.RelRow) map[string]any {
	return map[string]any{
		"start_key":  row.StartKey,
		"end_key":    row.EndKey,
		"properties": row.Properties,
		"run_id":     row.RunID,
	}
}

// NodeUpserter 写入分店和动物节点，同一标签组共用一条语句。
type NodeUpserter struct {
	client    Writer
	batchSize int
}

func NewNodeUpserter(client Writer, batchSize int) *NodeUpserter {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &NodeUpserter{client: client, batchSize: batchSize}
}

// InitNodes 用 CREATE 写入，要求图里没有同 key 节点，只在清空后使用。
func (u *NodeUpserter) InitNodes(ctx context.Context, rows []domain.NodeRow) error {
	return u.write(ctx, "init_nodes.cql", rows)
}

// UpsertNodes 用 MERGE 写入，可在已有数据上重复执行。
func (u *NodeUpserter) UpsertNodes(ctx context.Context, rows []domain.NodeRow) error {
	return u.write(ctx, "upsert_nodes.cql", rows)
}

func (u *NodeUpserter) write(ctx context.Context, tpl string, rows []domain.NodeRow) error {
	byLabels := make(map[string][]domain.NodeRow)
	for _, row := range rows {
		pattern := domain.LabelPattern(row.Labels)
		byLabels[pattern] = append(byLabels[pattern], row)
	}
	for _, pattern := range sortedKeys(byLabels) {
		query := cypher.MustTemplate(tpl, map[string]string{"LabelPattern": pattern})
		if err := writeChunks(ctx, u.client, query, byLabels[pattern], u.batchSize, encodeNode); err != nil {
			return fmt.Errorf("写入节点失败 labels=%s: %w", pattern, err)
		}
	}
	return nil
}

// RelUpserter 写入 HOLDS 等关系，端点标签取自 domain.RelEndpoints。
type RelUpserter struct {
	client    Writer
	batchSize int
}

func NewRelUpserter(client Writer, batchSize int) *RelUpserter {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &RelUpserter{client: client, batchSize: batchSize}
}

// InitRels 用 CREATE 建边。
func (u *RelUpserter) InitRels(ctx context.Context, rows []domain.RelRow) error {
	return u.write(ctx, "init_edges.cql", rows)
}

// UpsertRels 用 MERGE 建边。
func (u *RelUpserter) UpsertRels(ctx context.Context, rows []domain.RelRow) error {
	return u.write(ctx, "upsert_rels.cql", rows)
}

func (u *RelUpserter) write(ctx context.Context, tpl string, rows []domain.RelRow) error {
	byType := make(map[string][]domain.RelRow)
	for _, row := range rows {
		byType[row.Type] = append(byType[row.Type], row)
	}
	for _, relType := range sortedKeys(byType) {
		ep, ok := domain.RelEndpoints[relType]
		if !ok {
			return fmt.Errorf("未知关系类型: %s", relType)
		}
		query := cypher.MustTemplate(tpl, map[string]string{
			"StartLabel": ep.Start,
			"EndLabel":   ep.End,
			"RelType":    relType,
		})
		if err := writeChunks(ctx, u.client, query, byType[relType], u.batchSize, encodeRel); err != nil {
			return fmt.Errorf("写入关系失败 type=%s: %w", relType, err)
		}
	}
	return nil
}
