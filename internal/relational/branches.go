package relational

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tierbench/internal/domain"
)

// Branches 返回全部分店，按 id 排序。
func (s *Store) Branches(ctx context.Context) ([]domain.Branch, error) {
	var out []domain.Branch
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("查询分店失败: %w", err)
	}
	return out, nil
}

// Branch 按 id 查询分店。
func (s *Store) Branch(ctx context.Context, id int) (domain.Branch, error) {
	var out domain.Branch
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return domain.Branch{}, translate(err)
	}
	return out, nil
}

func (s *Store) branchesOfAnimal(ctx context.Context, name string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&domain.Branch{}).
		Joins("JOIN relations ON relations.branch_id = branches.id").
		Where("relations.animal_name = ?", name)
}

// BranchesByAnimal 返回持有某动物的分店。
func (s *Store) BranchesByAnimal(ctx context.Context, name string) ([]domain.Branch, error) {
	var out []domain.Branch
	if err := s.branchesOfAnimal(ctx, name).Select("branches.*").Order("branches.id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("查询动物所在分店失败: %w", err)
	}
	return out, nil
}

// BranchNamesByAnimal 返回持有某动物的分店名，ordered 为真时按名字排序。
func (s *Store) BranchNamesByAnimal(ctx context.Context, name string, ordered bool) ([]string, error) {
	q := s.branchesOfAnimal(ctx, name)
	if ordered {
		q = q.Order("branches.name")
	}
	names := make([]string, 0)
	if err := q.Pluck("branches.name", &names).Error; err != nil {
		return nil, fmt.Errorf("查询动物所在分店名失败: %w", err)
	}
	return names, nil
}

// CreateBranch 新增分店；ID 为 0 时取当前最大 id + 1。
func (s *Store) CreateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error) {
	if b.ID < 0 {
		return domain.Branch{}, fmt.Errorf("%w: branch id must not be negative", domain.ErrInvalid)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.ID == 0 {
			var maxID int
			if err := tx.Model(&domain.Branch{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
				return err
			}
			b.ID = maxID + 1
		} else {
			var n int64
			if err := tx.Model(&domain.Branch{}).Where("id = ?", b.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: branch %d", domain.ErrConflict, b.ID)
			}
		}
		return translate(tx.Create(&b).Error)
	})
	if err != nil {
		return domain.Branch{}, err
	}
	return b, nil
}

// UpdateBranch 更新分店名字与地址。
func (s *Store) UpdateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error) {
	res := s.db.WithContext(ctx).Model(&domain.Branch{}).Where("id = ?", b.ID).
		Updates(map[string]any{"name": b.Name, "address": b.Address})
	if res.Error != nil {
		return domain.Branch{}, fmt.Errorf("更新分店失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Branch{}, fmt.Errorf("%w: branch %d", domain.ErrNotFound, b.ID)
	}
	return b, nil
}

// DeleteBranch 删除分店及其全部关系。
func (s *Store) DeleteBranch(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", id).Delete(&domain.Relation{}).Error; err != nil {
			return fmt.Errorf("删除分店关系失败: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&domain.Branch{})
		if res.Error != nil {
			return fmt.Errorf("删除分店失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: branch %d", domain.ErrNotFound, id)
		}
		return nil
	})
}
