package document

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tierbench/internal/domain"
)

func (s *Store) findBranches(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]branchDoc, error) {
	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("查询分店文档失败: %w", err)
	}
	docs := make([]branchDoc, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("读取分店文档失败: %w", err)
	}
	return docs, nil
}

func (s *Store) findBranch(ctx context.Context, id string) (branchDoc, error) {
	oid, err := ParseID(id)
	if err != nil {
		return branchDoc{}, err
	}
	var doc branchDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return branchDoc{}, fmt.Errorf("查询分店 %s: %w", id, translate(err))
	}
	return doc, nil
}

// Branches 返回全部分店文档。
func (s *Store) Branches(ctx context.Context) ([]domain.DocBranch, error) {
	docs, err := s.findBranches(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return branchesToDomain(docs), nil
}

// Branch 按 id 返回分店文档。
func (s *Store) Branch(ctx context.Context, id string) (domain.DocBranch, error) {
	doc, err := s.findBranch(ctx, id)
	if err != nil {
		return domain.DocBranch{}, err
	}
	return doc.toDomain(), nil
}

// BranchesByAnimal 返回内嵌了指定动物的分店。
func (s *Store) BranchesByAnimal(ctx context.Context, name string) ([]domain.DocBranch, error) {
	docs, err := s.findBranches(ctx, bson.D{{Key: "animals.name", Value: name}})
	if err != nil {
		return nil, err
	}
	return branchesToDomain(docs), nil
}

// BranchNamesByAnimal 返回内嵌了指定动物的分店名。
func (s *Store) BranchNamesByAnimal(ctx context.Context, name string, ordered bool) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}})
	docs, err := s.findBranches(ctx, bson.D{{Key: "animals.name", Value: name}}, opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	if ordered {
		sort.Strings(names)
	}
	return names, nil
}

// CreateBranch 新增分店文档，ID 为空时生成新的 ObjectID。
func (s *Store) CreateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error) {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	if b.Animals == nil {
		b.Animals = []domain.DocAnimal{}
	}
	if err := uniqueAnimalNames(b.Animals); err != nil {
		return domain.DocBranch{}, err
	}
	doc, err := toBranchDoc(b)
	if err != nil {
		return domain.DocBranch{}, err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.DocBranch{}, fmt.Errorf("新增分店 %s: %w", b.ID, translate(err))
	}
	return b, nil
}

// UpdateBranch 更新分店名字与地址，内嵌动物保持不变。
func (s *Store) UpdateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error) {
	oid, err := ParseID(b.ID)
	if err != nil {
		return domain.DocBranch{}, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: b.Name}, {Key: "address", Value: b.Address}}}})
	if err != nil {
		return domain.DocBranch{}, fmt.Errorf("更新分店文档失败: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.DocBranch{}, fmt.Errorf("%w: branch %s", domain.ErrNotFound, b.ID)
	}
	return s.Branch(ctx, b.ID)
}

// DeleteBranch 删除分店文档及其内嵌动物。
func (s *Store) DeleteBranch(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("删除分店文档失败: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: branch %s", domain.ErrNotFound, id)
	}
	return nil
}

func uniqueAnimalNames(animals []domain.DocAnimal) error {
	seen := make(map[string]struct{}, len(animals))
	for _, a := range animals {
		if a.Name == "" {
			return fmt.Errorf("%w: animal name is required", domain.ErrInvalid)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: animal %q appears twice in branch", domain.ErrConflict, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}
