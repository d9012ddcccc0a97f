package loader

import (
	"context"
	"fmt"

	"tierbench/internal/cypher"
)

// SchemaManager 建立 key 唯一约束和查询索引，语句带 IF NOT EXISTS。
type SchemaManager struct {
	client Writer
}

func NewSchemaManager(client Writer) *SchemaManager {
	return &SchemaManager{client: client}
}

// Ensure 逐条执行 schema 语句。Neo4j 不允许在显式事务里改 schema，所以走 RunRaw。
func (m *SchemaManager) Ensure(ctx context.Context) error {
	for _, stmt := range cypher.Statements("init_schema.cql") {
		if err := m.client.RunRaw(ctx, stmt, nil); err != nil {
			return fmt.Errorf("执行 schema 语句失败: %w", err)
		}
	}
	return nil
}

// Cleaner 删除造数写入的节点和关系。
type Cleaner struct {
	client Writer
}

func NewCleaner(client Writer) *Cleaner {
	return &Cleaner{client: client}
}

// ClearAll 删除所有带 Seeded 标签的节点，DETACH 一并删掉关系。
func (c *Cleaner) ClearAll(ctx context.Context) error {
	if err := c.client.RunWrite(ctx, cypher.MustAsset("clear.cql"), nil); err != nil {
		return fmt.Errorf("清空图数据失败: %w", err)
	}
	return nil
}

// Deriver 在关系写完后计算分店库存与动物持有数。
type Deriver struct {
	client Writer
}

func NewDeriver(client Writer) *Deriver {
	return &Deriver{client: client}
}

// Run 只处理 run_id 对应批次的节点。
func (d *Deriver) Run(ctx context.Context, runID string) error {
	params := map[string]any{"run_id": runID}
	for _, stmt := range cypher.Statements("derive_props.cql") {
		if err := d.client.RunWrite(ctx, stmt, params); err != nil {
			return fmt.Errorf("计算派生属性失败: %w", err)
		}
	}
	return nil
}
