package seed

import (
	"fmt"
	"strconv"

	"tierbench/internal/domain"
)

// Animals 生成 count 只名字互不相同的动物，顺序即名字被接受的顺序。
//
// 先抽完全部名字，再按顺序为每只动物依次抽 weight、size。
func (g *Generator) Animals(count int) ([]domain.Animal, error) {
	n, err := clampCount("animal", count)
	if err != nil {
		return nil, err
	}
	names, err := g.uniqueNames(n)
	if err != nil {
		return nil, err
	}
	animals := make([]domain.Animal, 0, n)
	for _, name := range names {
		weight := g.decimal()
		size := g.decimal()
		animals = append(animals, domain.Animal{Name: name, Size: size, Weight: weight})
	}
	return animals, nil
}

func (g *Generator) uniqueNames(n int) ([]string, error) {
	seen := make(map[string]struct{}, n)
	names := make([]string, 0, n)
	budget := n * attemptsPerItem
	for attempts := 0; len(names) < n; attempts++ {
		if attempts >= budget {
			return nil, fmt.Errorf("%w: found %d of %d unique names after %d candidates", ErrExhaustedSource, len(names), n, attempts)
		}
		name := g.words()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// DocAnimals 生成嵌入式动物，名字为 word + (shift+i)，shift 不重叠时名字跨分店不重复。
func (g *Generator) DocAnimals(count, shift int) ([]domain.DocAnimal, error) {
	n, err := clampCount("animals per branch", count)
	if err != nil {
		return nil, err
	}
	if shift < 0 {
		return nil, fmt.Errorf("%w: shift must not be negative, got %d", ErrInvalidCount, shift)
	}
	animals := make([]domain.DocAnimal, 0, n)
	for i := 0; i < n; i++ {
		name := g.words() + strconv.Itoa(shift+i)
		weight := g.decimal()
		size := g.decimal()
		animals = append(animals, domain.DocAnimal{
			Name:   name,
			Size:   size,
			Weight: weight,
			Count:  1 + g.src.Intn(DefaultMaxCount),
		})
	}
	return animals, nil
}
