package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/domain"
)

// DocumentStore 是文档库的查询与 CRUD。
type DocumentStore interface {
	Animals(ctx context.Context) ([]domain.DocAnimal, error)
	AnimalsByName(ctx context.Context, name string) ([]domain.DocAnimal, error)
	AnimalsByBranch(ctx context.Context, id string) ([]domain.DocAnimal, error)
	AnimalNamesByBranch(ctx context.Context, id string, ordered bool) ([]string, error)
	AddAnimal(ctx context.Context, branchID string, a domain.DocAnimal) (domain.DocAnimal, error)
	UpdateAnimal(ctx context.Context, branchID string, a domain.DocAnimal) (domain.DocAnimal, error)
	RemoveAnimal(ctx context.Context, branchID, name string) error

	Branches(ctx context.Context) ([]domain.DocBranch, error)
	Branch(ctx context.Context, id string) (domain.DocBranch, error)
	BranchesByAnimal(ctx context.Context, name string) ([]domain.DocBranch, error)
	BranchNamesByAnimal(ctx context.Context, name string, ordered bool) ([]string, error)
	CreateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error)
	UpdateBranch(ctx context.Context, b domain.DocBranch) (domain.DocBranch, error)
	DeleteBranch(ctx context.Context, id string) error
}

// DocumentHandler 暴露 /mongo 下的文档库接口。
type DocumentHandler struct {
	store  DocumentStore
	logger *zap.Logger
}

func NewDocumentHandler(store DocumentStore, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{store: store, logger: logger}
}

// RegisterRoutes 注册文档库路由。
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/mongo")

	g.GET("/animals", h.handle(func(ctx context.Context, _ *gin.Context) (any, error) {
		return h.store.Animals(ctx)
	}))
	g.GET("/animals/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.AnimalsByBranch(ctx, c.Param("id"))
	}))
	g.GET("/animals/names/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.AnimalNamesByBranch(ctx, c.Param("id"), false)
	}))
	g.GET("/animals/names/ordered/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.AnimalNamesByBranch(ctx, c.Param("id"), true)
	}))
	g.GET("/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.AnimalsByName(ctx, c.Param("name"))
	}))
	g.POST("/animal/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var a domain.DocAnimal
		if err := bindJSON(c, &a); err != nil {
			return nil, err
		}
		return h.store.AddAnimal(ctx, c.Param("id"), a)
	}))
	g.PUT("/animal/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var a domain.DocAnimal
		if err := bindJSON(c, &a); err != nil {
			return nil, err
		}
		return h.store.UpdateAnimal(ctx, c.Param("id"), a)
	}))
	g.DELETE("/animal/branch/:id/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, name := c.Param("id"), c.Param("name")
		if err := h.store.RemoveAnimal(ctx, id, name); err != nil {
			return nil, err
		}
		return gin.H{"branch_id": id, "deleted": name}, nil
	}))

	g.GET("/branches", h.handle(func(ctx context.Context, _ *gin.Context) (any, error) {
		return h.store.Branches(ctx)
	}))
	g.GET("/branches/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.BranchesByAnimal(ctx, c.Param("name"))
	}))
	g.GET("/branches/names/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.BranchNamesByAnimal(ctx, c.Param("name"), false)
	}))
	g.GET("/branches/names/ordered/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.BranchNamesByAnimal(ctx, c.Param("name"), true)
	}))
	g.GET("/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.Branch(ctx, c.Param("id"))
	}))
	g.POST("/branch", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var b domain.DocBranch
		if err := bindJSON(c, &b); err != nil {
			return nil, err
		}
		return h.store.CreateBranch(ctx, b)
	}))
	g.PUT("/branch", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var b domain.DocBranch
		if err := bindJSON(c, &b); err != nil {
			return nil, err
		}
		return h.store.UpdateBranch(ctx, b)
	}))
	g.DELETE("/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id := c.Param("id")
		if err := h.store.DeleteBranch(ctx, id); err != nil {
			return nil, err
		}
		return gin.H{"deleted": id}, nil
	}))
}

func (h *DocumentHandler) handle(fn func(ctx context.Context, c *gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.store == nil {
			writeError(c, h.logger, disabled(app.BackendMongo))
			return
		}
		timed(c, h.logger, func(ctx context.Context) (any, error) {
			return fn(ctx, c)
		})
	}
}
