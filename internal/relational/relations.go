package relational

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tierbench/internal/domain"
)

// Relations 返回全部关系。
func (s *Store) Relations(ctx context.Context) ([]domain.Relation, error) {
	return s.findRelations(s.db.WithContext(ctx))
}

// RelationsByAnimal 返回某动物的全部关系。
func (s *Store) RelationsByAnimal(ctx context.Context, name string) ([]domain.Relation, error) {
	return s.findRelations(s.db.WithContext(ctx).Where("animal_name = ?", name))
}

// RelationsByBranch 返回某分店的全部关系。
func (s *Store) RelationsByBranch(ctx context.Context, branchID int) ([]domain.Relation, error) {
	return s.findRelations(s.db.WithContext(ctx).Where("branch_id = ?", branchID))
}

func (s *Store) findRelations(q *gorm.DB) ([]domain.Relation, error) {
	var out []domain.Relation
	if err := q.Order("branch_id").Order("animal_name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("查询关系失败: %w", err)
	}
	return out, nil
}

// CreateRelation 新增关系，两端实体必须存在。
func (s *Store) CreateRelation(ctx context.Context, r domain.Relation) (domain.Relation, error) {
	if r.Count < 1 {
		return domain.Relation{}, fmt.Errorf("%w: relation count must be at least 1", domain.ErrInvalid)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Branch{}).Where("id = ?", r.BranchID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: branch %d", domain.ErrNotFound, r.BranchID)
		}
		if err := tx.Model(&domain.Animal{}).Where("name = ?", r.AnimalName).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: animal %q", domain.ErrNotFound, r.AnimalName)
		}
		if err := tx.Model(&domain.Relation{}).Where("branch_id = ? AND animal_name = ?", r.BranchID, r.AnimalName).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: relation (%d, %q)", domain.ErrConflict, r.BranchID, r.AnimalName)
		}
		return translate(tx.Create(&r).Error)
	})
	if err != nil {
		return domain.Relation{}, err
	}
	return r, nil
}

// UpdateRelation 更新关系的数量。
func (s *Store) UpdateRelation(ctx context.Context, r domain.Relation) (domain.Relation, error) {
	if r.Count < 1 {
		return domain.Relation{}, fmt.Errorf("%w: relation count must be at least 1", domain.ErrInvalid)
	}
	res := s.db.WithContext(ctx).Model(&domain.Relation{}).
		Where("branch_id = ? AND animal_name = ?", r.BranchID, r.AnimalName).
		Update("count", r.Count)
	if res.Error != nil {
		return domain.Relation{}, fmt.Errorf("更新关系失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Relation{}, fmt.Errorf("%w: relation (%d, %q)", domain.ErrNotFound, r.BranchID, r.AnimalName)
	}
	return r, nil
}

// DeleteRelation 删除一条关系。
func (s *Store) DeleteRelation(ctx context.Context, branchID int, name string) error {
	res := s.db.WithContext(ctx).Where("branch_id = ? AND animal_name = ?", branchID, name).Delete(&domain.Relation{})
	if res.Error != nil {
		return fmt.Errorf("删除关系失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: relation (%d, %q)", domain.ErrNotFound, branchID, name)
	}
	return nil
}
