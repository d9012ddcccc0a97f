package bench

import (
	"context"
	"fmt"
	"strconv"

	"tierbench/internal/domain"
)

// Target 是一个可被压测的存储，每轮依次执行读、写、改、删。
type Target interface {
	Name() string
	ReadAll(ctx context.Context) (int, error)
	CreateProbe(ctx context.Context, iteration int) (string, error)
	UpdateProbe(ctx context.Context, id string, iteration int) error
	DeleteProbe(ctx context.Context, id string) error
}

// BranchStore 是关系库压测用到的分店操作。
type BranchStore interface {
	Branches(ctx context.Context) ([]domain.Branch, error)
	CreateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error)
	UpdateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error)
	DeleteBranch(ctx context.Context, id int) error
}

// DocBranchStore 是文档库压测用到的分店操作。
type DocBranchStore interface {
	Branches(ctx context.Context) ([]domain.DocBranch, error)
	CreateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error)
	UpdateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error)
	DeleteBranch(ctx context.Context, id string) error
}

func probeName(iteration int) string {
	return fmt.Sprintf("bench-probe-%d", iteration)
}

// RelationalTarget 用探针分店压测关系库。
type RelationalTarget struct {
	Store BranchStore
}

func (t RelationalTarget) Name() string { return "sql" }

func (t RelationalTarget) ReadAll(ctx context.Context) (int, error) {
	branches, err := t.Store.Branches(ctx)
	return len(branches), err
}

func (t RelationalTarget) CreateProbe(ctx context.Context, iteration int) (string, error) {
	b, err := t.Store.CreateBranch(ctx, domain.Branch{Name: probeName(iteration), Address: "bench"})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(b.ID), nil
}

func (t RelationalTarget) UpdateProbe(ctx context.Context, id string, iteration int) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("非法探针 id %q: %w", id, err)
	}
	_, err = t.Store.UpdateBranch(ctx, domain.Branch{ID: n, Name: probeName(iteration) + "-updated", Address: "bench"})
	return err
}

func (t RelationalTarget) DeleteProbe(ctx context.Context, id string) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("非法探针 id %q: %w", id, err)
	}
	return t.Store.DeleteBranch(ctx, n)
}

// DocumentTarget 用探针分店文档压测文档库。
type DocumentTarget struct {
	Store DocBranchStore
}

func (t DocumentTarget) Name() string { return "mongo" }

func (t DocumentTarget) ReadAll(ctx context.Context) (int, error) {
	branches, err := t.Store.Branches(ctx)
	return len(branches), err
}

func (t DocumentTarget) CreateProbe(ctx context.Context, iteration int) (string, error) {
	b, err := t.Store.CreateBranch(ctx, domain.DocBranch{Name: probeName(iteration), Address: "bench"})
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

func (t DocumentTarget) UpdateProbe(ctx context.Context, id string, iteration int) error {
	_, err := t.Store.UpdateBranch(ctx, domain.DocBranch{ID: id, Name: probeName(iteration) + "-updated", Address: "bench"})
	return err
}

func (t DocumentTarget) DeleteProbe(ctx context.Context, id string) error {
	return t.Store.DeleteBranch(ctx, id)
}
