package seed

import (
	"fmt"

	"tierbench/internal/domain"
)

// Branches 生成 count 个分店，id 依次为 shift+1 … shift+count。
func (g *Generator) Branches(count, shift int) ([]domain.Branch, error) {
	n, err := clampCount("branch", count)
	if err != nil {
		return nil, err
	}
	if shift < 0 {
		return nil, fmt.Errorf("%w: id shift must not be negative, got %d", ErrInvalidCount, shift)
	}
	branches := make([]domain.Branch, 0, n)
	for i := 1; i <= n; i++ {
		branches = append(branches, domain.Branch{
			ID:      shift + i,
			Name:    g.src.Company(),
			Address: g.src.StreetAddress(),
		})
	}
	return branches, nil
}
