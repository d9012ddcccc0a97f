package document

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tierbench/internal/domain"
)

type animalDoc struct {
	Name   string  `bson:"name"`
	Size   float64 `bson:"size"`
	Weight float64 `bson:"weight"`
	Count  int     `bson:"count"`
}

type branchDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Address string             `bson:"address"`
	Animals []animalDoc        `bson:"animals"`
}

// ParseID 把 24 位十六进制串转换为 ObjectID。
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: branch id %q is not a 24 character hex string", domain.ErrInvalid, id)
	}
	return oid, nil
}

func toAnimalDoc(a domain.DocAnimal) animalDoc {
	return animalDoc{Name: a.Name, Size: a.Size, Weight: a.Weight, Count: a.Count}
}

func (d animalDoc) toDomain() domain.DocAnimal {
	return domain.DocAnimal{Name: d.Name, Size: d.Size, Weight: d.Weight, Count: d.Count}
}

func toBranchDoc(b domain.DocBranch) (branchDoc, error) {
	oid, err := ParseID(b.ID)
	if err != nil {
		return branchDoc{}, err
	}
	animals := make([]animalDoc, 0, len(b.Animals))
	for _, a := range b.Animals {
		animals = append(animals, toAnimalDoc(a))
	}
	return branchDoc{ID: oid, Name: b.Name, Address: b.Address, Animals: animals}, nil
}

func (d branchDoc) toDomain() domain.DocBranch {
	animals := make([]domain.DocAnimal, 0, len(d.Animals))
	for _, a := range d.Animals {
		animals = append(animals, a.toDomain())
	}
	return domain.DocBranch{ID: d.ID.Hex(), Name: d.Name, Address: d.Address, Animals: animals}
}

func branchesToDomain(docs []branchDoc) []domain.DocBranch {
	out := make([]domain.DocBranch, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}
