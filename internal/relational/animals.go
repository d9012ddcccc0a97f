package relational

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tierbench/internal/domain"
)

// Animals 返回全部动物，按名字排序。
func (s *Store) Animals(ctx context.Context) ([]domain.Animal, error) {
	var out []domain.Animal
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("查询动物失败: %w", err)
	}
	return out, nil
}

// Animal 按名字查询动物。
func (s *Store) Animal(ctx context.Context, name string) (domain.Animal, error) {
	var out domain.Animal
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&out).Error; err != nil {
		return domain.Animal{}, translate(err)
	}
	return out, nil
}

func (s *Store) animalsOfBranch(ctx context.Context, branchID int) *gorm.DB {
	return s.db.WithContext(ctx).Model(&domain.Animal{}).
		Joins("JOIN relations ON relations.animal_name = animals.name").
		Where("relations.branch_id = ?", branchID)
}

// AnimalsByBranch 返回某分店持有的动物。
func (s *Store) AnimalsByBranch(ctx context.Context, branchID int) ([]domain.Animal, error) {
	var out []domain.Animal
	if err := s.animalsOfBranch(ctx, branchID).Select("animals.*").Order("animals.name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("查询分店动物失败: %w", err)
	}
	return out, nil
}

// AnimalNamesByBranch 返回某分店持有的动物名字，ordered 为真时按名字排序。
func (s *Store) AnimalNamesByBranch(ctx context.Context, branchID int, ordered bool) ([]string, error) {
	q := s.animalsOfBranch(ctx, branchID)
	if ordered {
		q = q.Order("animals.name")
	}
	names := make([]string, 0)
	if err := q.Pluck("animals.name", &names).Error; err != nil {
		return nil, fmt.Errorf("查询分店动物名失败: %w", err)
	}
	return names, nil
}

// CreateAnimal 新增动物，名字已存在时返回 domain.ErrConflict。
func (s *Store) CreateAnimal(ctx context.Context, a domain.Animal) (domain.Animal, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.Animal{}, fmt.Errorf("%w: animal name is required", domain.ErrInvalid)
	}
	if err := domain.CheckMeasures(a.Name, a.Size, a.Weight); err != nil {
		return domain.Animal{}, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Animal{}).Where("name = ?", a.Name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: animal %q", domain.ErrConflict, a.Name)
		}
		return translate(tx.Create(&a).Error)
	})
	if err != nil {
		return domain.Animal{}, err
	}
	return a, nil
}

// UpdateAnimal 更新动物的尺寸与体重。
func (s *Store) UpdateAnimal(ctx context.Context, a domain.Animal) (domain.Animal, error) {
	if err := domain.CheckMeasures(a.Name, a.Size, a.Weight); err != nil {
		return domain.Animal{}, err
	}
	res := s.db.WithContext(ctx).Model(&domain.Animal{}).Where("name = ?", a.Name).
		Updates(map[string]any{"size": a.Size, "weight": a.Weight})
	if res.Error != nil {
		return domain.Animal{}, fmt.Errorf("更新动物失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Animal{}, fmt.Errorf("%w: animal %q", domain.ErrNotFound, a.Name)
	}
	return a, nil
}

// DeleteAnimal 删除动物及其全部关系。
func (s *Store) DeleteAnimal(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("animal_name = ?", name).Delete(&domain.Relation{}).Error; err != nil {
			return fmt.Errorf("删除动物关系失败: %w", err)
		}
		res := tx.Where("name = ?", name).Delete(&domain.Animal{})
		if res.Error != nil {
			return fmt.Errorf("删除动物失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: animal %q", domain.ErrNotFound, name)
		}
		return nil
	})
}
