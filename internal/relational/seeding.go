package relational

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tierbench/internal/domain"
)

// InsertBatch 在一个事务内依次写入分店、动物和关系。
func (s *Store) InsertBatch(ctx context.Context, batch domain.BatchSet) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(batch.Branches) > 0 {
			if err := tx.CreateInBatches(batch.Branches, s.batchSize).Error; err != nil {
				return fmt.Errorf("写入分店失败: %w", translate(err))
			}
		}
		if len(batch.Animals) > 0 {
			if err := tx.CreateInBatches(batch.Animals, s.batchSize).Error; err != nil {
				return fmt.Errorf("写入动物失败: %w", translate(err))
			}
		}
		if len(batch.Relations) > 0 {
			if err := tx.CreateInBatches(batch.Relations, s.batchSize).Error; err != nil {
				return fmt.Errorf("写入关系失败: %w", translate(err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("relational batch inserted",
		zap.Int("branches", len(batch.Branches)),
		zap.Int("animals", len(batch.Animals)),
		zap.Int("relations", len(batch.Relations)))
	return nil
}

// ClearAll 清空三张表，关系先删。
func (s *Store) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&domain.Relation{}, &domain.Animal{}, &domain.Branch{}} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("清空 %T 失败: %w", model, err)
			}
		}
		return nil
	})
}
