package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound 表示目标记录不存在。
	ErrNotFound = errors.New("record not found")
	// ErrConflict 表示主键或名字冲突。
	ErrConflict = errors.New("record already exists")
	// ErrInvalid 表示写入的实体字段不合法。
	ErrInvalid = errors.New("invalid entity")
)

// Animal 是关系模型中的动物，名字即主键。
type Animal struct {
	Name   string  `json:"name" gorm:"primaryKey"`
	Size   float64 `json:"size"`
	Weight float64 `json:"weight"`
}

// CheckMeasures 校验动物的尺寸和体重不为负。
func CheckMeasures(name string, size, weight float64) error {
	if size < 0 || weight < 0 {
		return fmt.Errorf("%w: animal %q has negative size %g or weight %g", ErrInvalid, name, size, weight)
	}
	return nil
}

// Branch 是关系模型中的分店。
type Branch struct {
	ID      int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Relation 表示某分店持有某动物的数量，(BranchID, AnimalName) 唯一。
type Relation struct {
	BranchID   int    `json:"branch_id" gorm:"primaryKey;autoIncrement:false"`
	AnimalName string `json:"animal_name" gorm:"primaryKey"`
	Count      int    `json:"count"`
}

// Key 返回关系的复合主键。
func (r Relation) Key() RelationKey {
	return RelationKey{BranchID: r.BranchID, AnimalName: r.AnimalName}
}

// RelationKey 是 Relation 的复合主键。
type RelationKey struct {
	BranchID   int
	AnimalName string
}

// DocAnimal 是嵌入在分店文档中的动物。
type DocAnimal struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
}

// DocBranch 是文档模型中的分店，ID 为 24 位小写十六进制。
type DocBranch struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
	Animals []DocAnimal `json:"animals"`
}

// BatchSet 是一次关系型造数的完整结果。
type BatchSet struct {
	Branches  []Branch   `json:"branches"`
	Animals   []Animal   `json:"animals"`
	Relations []Relation `json:"relations"`
}

// DocBatchSet 是一次文档型造数的完整结果。
type DocBatchSet struct {
	Branches []DocBranch `json:"branches"`
}

// AnimalCount 返回所有分店嵌入动物的总数。
func (b DocBatchSet) AnimalCount() int {
	total := 0
	for _, branch := range b.Branches {
		total += len(branch.Animals)
	}
	return total
}

// NodeRow 是批量写图的统一 DTO。
type NodeRow struct {
	Key        string         `json:"key"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	RunID      string         `json:"run_id"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// RelRow 代表一条关系需要的信息。
type RelRow struct {
	StartKey   string         `json:"start_key"`
	EndKey     string         `json:"end_key"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	RunID      string         `json:"run_id"`
}
