package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tierbench/internal/domain"
	"tierbench/internal/loader"
)

// RelationalSeeder 是关系库造数需要的写接口。
type RelationalSeeder interface {
	InsertBatch(ctx context.Context, batch domain.BatchSet) error
	ClearAll(ctx context.Context) error
}

// DocumentSeeder 是文档库造数需要的写接口。
type DocumentSeeder interface {
	InsertBranches(ctx context.Context, branches []domain.DocBranch) error
	ClearAll(ctx context.Context) error
}

// RelationalSeedFlow 负责关系库造数：可选清空 -> 计时写入。
type RelationalSeedFlow struct {
	Store  RelationalSeeder
	Logger *zap.Logger
}

// Run 返回写入耗时，清空不计入。
func (f *RelationalSeedFlow) Run(ctx context.Context, batch domain.BatchSet, clear bool) (time.Duration, error) {
	if f == nil || f.Store == nil {
		return 0, fmt.Errorf("relational flow 依赖未注入完整")
	}
	if clear {
		if err := f.Store.ClearAll(ctx); err != nil {
			return 0, fmt.Errorf("清空关系库失败: %w", err)
		}
	}
	start := time.Now()
	if err := f.Store.InsertBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("写入关系库失败: %w", err)
	}
	elapsed := time.Since(start)
	logOrNop(f.Logger).Info("relational seed persisted",
		zap.Int("branches", len(batch.Branches)),
		zap.Int("animals", len(batch.Animals)),
		zap.Int("relations", len(batch.Relations)),
		zap.Duration("elapsed", elapsed))
	return elapsed, nil
}

// DocumentSeedFlow 负责文档库造数。
type DocumentSeedFlow struct {
	Store  DocumentSeeder
	Logger *zap.Logger
}

func (f *DocumentSeedFlow) Run(ctx context.Context, batch domain.DocBatchSet, clear bool) (time.Duration, error) {
	if f == nil || f.Store == nil {
		return 0, fmt.Errorf("document flow 依赖未注入完整")
	}
	if clear {
		if err := f.Store.ClearAll(ctx); err != nil {
			return 0, fmt.Errorf("清空文档库失败: %w", err)
		}
	}
	start := time.Now()
	if err := f.Store.InsertBranches(ctx, batch.Branches); err != nil {
		return 0, fmt.Errorf("写入文档库失败: %w", err)
	}
	elapsed := time.Since(start)
	logOrNop(f.Logger).Info("document seed persisted",
		zap.Int("branches", len(batch.Branches)),
		zap.Int("animals", batch.AnimalCount()),
		zap.Duration("elapsed", elapsed))
	return elapsed, nil
}

// GraphSeedFlow 负责图库造数：可选清空 -> 建 schema -> 写节点 -> 写关系 -> 派生属性。
type GraphSeedFlow struct {
	Schema  *loader.SchemaManager
	Nodes   *loader.NodeUpserter
	Rels    *loader.RelUpserter
	Deriver *loader.Deriver
	Cleaner *loader.Cleaner
	Logger  *zap.Logger
}

// NewGraphSeedFlow 基于同一个 Writer 装配图写入组件。
func NewGraphSeedFlow(w loader.Writer, batchSize int, logger *zap.Logger) *GraphSeedFlow {
	return &GraphSeedFlow{
		Schema:  loader.NewSchemaManager(w),
		Nodes:   loader.NewNodeUpserter(w, batchSize),
		Rels:    loader.NewRelUpserter(w, batchSize),
		Deriver: loader.NewDeriver(w),
		Cleaner: loader.NewCleaner(w),
		Logger:  logger,
	}
}

// Run 清空后用 CREATE 写入，否则用 MERGE；只对写入部分计时。
func (f *GraphSeedFlow) Run(ctx context.Context, batch domain.BatchSet, runID string, clear bool) (time.Duration, error) {
	if f == nil || f.Nodes == nil || f.Rels == nil || f.Cleaner == nil {
		return 0, fmt.Errorf("graph flow 依赖未注入完整")
	}
	if clear {
		if err := f.Cleaner.ClearAll(ctx); err != nil {
			return 0, err
		}
	}
	if f.Schema != nil {
		if err := f.Schema.Ensure(ctx); err != nil {
			return 0, err
		}
	}
	nodes, rels := loader.BuildGraphRows(batch, runID, time.Now())

	start := time.Now()
	if clear {
		if err := f.Nodes.InitNodes(ctx, nodes); err != nil {
			return 0, err
		}
		if err := f.Rels.InitRels(ctx, rels); err != nil {
			return 0, err
		}
	} else {
		if err := f.Nodes.UpsertNodes(ctx, nodes); err != nil {
			return 0, fmt.Errorf("增量写入节点失败: %w", err)
		}
		if err := f.Rels.UpsertRels(ctx, rels); err != nil {
			return 0, fmt.Errorf("增量写入关系失败: %w", err)
		}
	}
	if f.Deriver != nil {
		if err := f.Deriver.Run(ctx, runID); err != nil {
			return 0, err
		}
	}
	elapsed := time.Since(start)
	logOrNop(f.Logger).Info("graph seed persisted",
		zap.String("run_id", runID),
		zap.Int("nodes", len(nodes)),
		zap.Int("rels", len(rels)),
		zap.Duration("elapsed", elapsed))
	return elapsed, nil
}

func logOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
