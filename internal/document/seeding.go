package document

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"tierbench/internal/domain"
	"tierbench/pkg/util"
)

// InsertBranches 分批写入分店文档。
func (s *Store) InsertBranches(ctx context.Context, branches []domain.DocBranch) error {
	docs := make([]any, 0, len(branches))
	for _, b := range branches {
		doc, err := toBranchDoc(b)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	for _, chunk := range util.Batch(docs, s.batchSize) {
		if _, err := s.coll.InsertMany(ctx, chunk); err != nil {
			return fmt.Errorf("写入分店文档失败: %w", translate(err))
		}
	}
	s.logger.Debug("document batch inserted", zap.Int("branches", len(branches)))
	return nil
}

// ClearAll 删除集合内全部文档。
func (s *Store) ClearAll(ctx context.Context) error {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("清空分店文档失败: %w", err)
	}
	s.logger.Debug("document collection cleared", zap.Int64("deleted", res.DeletedCount))
	return nil
}

// Count 返回分店文档数量。
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}
