package document

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tierbench/internal/domain"
)

func (s *Store) aggregateAnimals(ctx context.Context, pipeline mongo.Pipeline) ([]domain.DocAnimal, error) {
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("聚合内嵌动物失败: %w", err)
	}
	docs := make([]animalDoc, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("读取内嵌动物失败: %w", err)
	}
	out := make([]domain.DocAnimal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func unwindAnimals(match bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$unwind", Value: "$animals"}}}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline, bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$animals"}}}})
}

// Animals 返回所有分店内嵌动物的扁平列表。
func (s *Store) Animals(ctx context.Context) ([]domain.DocAnimal, error) {
	return s.aggregateAnimals(ctx, unwindAnimals(nil))
}

// AnimalsByName 返回各分店中名为 name 的内嵌动物。
func (s *Store) AnimalsByName(ctx context.Context, name string) ([]domain.DocAnimal, error) {
	return s.aggregateAnimals(ctx, unwindAnimals(bson.D{{Key: "animals.name", Value: name}}))
}

// AnimalsByBranch 返回某分店的内嵌动物。
func (s *Store) AnimalsByBranch(ctx context.Context, id string) ([]domain.DocAnimal, error) {
	doc, err := s.findBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain().Animals, nil
}

// AnimalNamesByBranch 返回某分店的内嵌动物名。
func (s *Store) AnimalNamesByBranch(ctx context.Context, id string, ordered bool) ([]string, error) {
	animals, err := s.AnimalsByBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(animals))
	for _, a := range animals {
		names = append(names, a.Name)
	}
	if ordered {
		sort.Strings(names)
	}
	return names, nil
}

// AddAnimal 向分店追加一只动物，同名动物已存在时返回 domain.ErrConflict。
func (s *Store) AddAnimal(ctx context.Context, branchID string, a domain.DocAnimal) (domain.DocAnimal, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.DocAnimal{}, fmt.Errorf("%w: animal name is required", domain.ErrInvalid)
	}
	if err := domain.CheckMeasures(a.Name, a.Size, a.Weight); err != nil {
		return domain.DocAnimal{}, err
	}
	oid, err := ParseID(branchID)
	if err != nil {
		return domain.DocAnimal{}, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "animals.name", Value: bson.D{{Key: "$ne", Value: a.Name}}}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "animals", Value: toAnimalDoc(a)}}}})
	if err != nil {
		return domain.DocAnimal{}, fmt.Errorf("追加内嵌动物失败: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := s.findBranch(ctx, branchID); err != nil {
			return domain.DocAnimal{}, err
		}
		return domain.DocAnimal{}, fmt.Errorf("%w: animal %q in branch %s", domain.ErrConflict, a.Name, branchID)
	}
	return a, nil
}

// UpdateAnimal 更新分店内某只动物的尺寸、体重和数量。
func (s *Store) UpdateAnimal(ctx context.Context, branchID string, a domain.DocAnimal) (domain.DocAnimal, error) {
	if err := domain.CheckMeasures(a.Name, a.Size, a.Weight); err != nil {
		return domain.DocAnimal{}, err
	}
	oid, err := ParseID(branchID)
	if err != nil {
		return domain.DocAnimal{}, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "animals.name", Value: a.Name}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "animals.$.size", Value: a.Size},
			{Key: "animals.$.weight", Value: a.Weight},
			{Key: "animals.$.count", Value: a.Count},
		}}})
	if err != nil {
		return domain.DocAnimal{}, fmt.Errorf("更新内嵌动物失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.DocAnimal{}, fmt.Errorf("%w: animal %q in branch %s", domain.ErrNotFound, a.Name, branchID)
	}
	return a, nil
}

// RemoveAnimal 从分店移除一只动物。
func (s *Store) RemoveAnimal(ctx context.Context, branchID, name string) error {
	oid, err := ParseID(branchID)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "animals.name", Value: name}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "animals", Value: bson.D{{Key: "name", Value: name}}}}}})
	if err != nil {
		return fmt.Errorf("移除内嵌动物失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: animal %q in branch %s", domain.ErrNotFound, name, branchID)
	}
	return nil
}
