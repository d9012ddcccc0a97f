package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/domain"
)

// RelationalStore 是关系库的查询与 CRUD。
type RelationalStore interface {
	Animals(ctx context.Context) ([]domain.Animal, error)
	Animal(ctx context.Context, name string) (domain.Animal, error)
	AnimalsByBranch(ctx context.Context, branchID int) ([]domain.Animal, error)
	AnimalNamesByBranch(ctx context.Context, branchID int, ordered bool) ([]string, error)
	CreateAnimal(ctx context.Context, a domain.Animal) (domain.Animal, error)
	UpdateAnimal(ctx context.Context, a domain.Animal) (domain.Animal, error)
	DeleteAnimal(ctx context.Context, name string) error

	Branches(ctx context.Context) ([]domain.Branch, error)
	Branch(ctx context.Context, id int) (domain.Branch, error)
	BranchesByAnimal(ctx context.Context, name string) ([]domain.Branch, error)
	BranchNamesByAnimal(ctx context.Context, name string, ordered bool) ([]string, error)
	CreateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error)
	UpdateBranch(ctx context.Context, b domain.Branch) (domain.Branch, error)
	DeleteBranch(ctx context.Context, id int) error

	Relations(ctx context.Context) ([]domain.Relation, error)
	RelationsByAnimal(ctx context.Context, name string) ([]domain.Relation, error)
	RelationsByBranch(ctx context.Context, branchID int) ([]domain.Relation, error)
	CreateRelation(ctx context.Context, r domain.Relation) (domain.Relation, error)
	UpdateRelation(ctx context.Context, r domain.Relation) (domain.Relation, error)
	DeleteRelation(ctx context.Context, branchID int, name string) error
}

// RelationalHandler 暴露关系库的读写接口；store 为 nil 时全部返回 503。
type RelationalHandler struct {
	store  RelationalStore
	logger *zap.Logger
}

func NewRelationalHandler(store RelationalStore, logger *zap.Logger) *RelationalHandler {
	return &RelationalHandler{store: store, logger: logger}
}

// RegisterRoutes 注册关系库路由。
func (h *RelationalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/animals", h.handle(func(ctx context.Context, _ *gin.Context) (any, error) {
		return h.store.Animals(ctx)
	}))
	rg.GET("/animals/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		return h.store.AnimalsByBranch(ctx, id)
	}))
	rg.GET("/animals/names/branch/:id", h.animalNames(false))
	rg.GET("/animals/names/ordered/branch/:id", h.animalNames(true))
	rg.GET("/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.Animal(ctx, c.Param("name"))
	}))
	rg.POST("/animal", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var a domain.Animal
		if err := bindJSON(c, &a); err != nil {
			return nil, err
		}
		return h.store.CreateAnimal(ctx, a)
	}))
	rg.PUT("/animal", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var a domain.Animal
		if err := bindJSON(c, &a); err != nil {
			return nil, err
		}
		return h.store.UpdateAnimal(ctx, a)
	}))
	rg.DELETE("/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		name := c.Param("name")
		if err := h.store.DeleteAnimal(ctx, name); err != nil {
			return nil, err
		}
		return gin.H{"deleted": name}, nil
	}))

	rg.GET("/branches", h.handle(func(ctx context.Context, _ *gin.Context) (any, error) {
		return h.store.Branches(ctx)
	}))
	rg.GET("/branches/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.BranchesByAnimal(ctx, c.Param("name"))
	}))
	rg.GET("/branches/names/animal/:name", h.branchNames(false))
	rg.GET("/branches/names/ordered/animal/:name", h.branchNames(true))
	rg.GET("/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		return h.store.Branch(ctx, id)
	}))
	rg.POST("/branch", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var b domain.Branch
		if err := bindJSON(c, &b); err != nil {
			return nil, err
		}
		return h.store.CreateBranch(ctx, b)
	}))
	rg.PUT("/branch", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var b domain.Branch
		if err := bindJSON(c, &b); err != nil {
			return nil, err
		}
		return h.store.UpdateBranch(ctx, b)
	}))
	rg.DELETE("/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		if err := h.store.DeleteBranch(ctx, id); err != nil {
			return nil, err
		}
		return gin.H{"deleted": id}, nil
	}))

	rg.GET("/relations", h.handle(func(ctx context.Context, _ *gin.Context) (any, error) {
		return h.store.Relations(ctx)
	}))
	rg.GET("/relations/animal/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.RelationsByAnimal(ctx, c.Param("name"))
	}))
	rg.GET("/relations/branch/:id", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		return h.store.RelationsByBranch(ctx, id)
	}))
	rg.POST("/relation", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var r domain.Relation
		if err := bindJSON(c, &r); err != nil {
			return nil, err
		}
		return h.store.CreateRelation(ctx, r)
	}))
	rg.PUT("/relation", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		var r domain.Relation
		if err := bindJSON(c, &r); err != nil {
			return nil, err
		}
		return h.store.UpdateRelation(ctx, r)
	}))
	rg.DELETE("/relation/:id/:name", h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		name := c.Param("name")
		if err := h.store.DeleteRelation(ctx, id, name); err != nil {
			return nil, err
		}
		return domain.RelationKey{BranchID: id, AnimalName: name}, nil
	}))
}

func (h *RelationalHandler) animalNames(ordered bool) gin.HandlerFunc {
	return h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		return h.store.AnimalNamesByBranch(ctx, id, ordered)
	})
}

func (h *RelationalHandler) branchNames(ordered bool) gin.HandlerFunc {
	return h.handle(func(ctx context.Context, c *gin.Context) (any, error) {
		return h.store.BranchNamesByAnimal(ctx, c.Param("name"), ordered)
	})
}

func (h *RelationalHandler) handle(fn func(ctx context.Context, c *gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.store == nil {
			writeError(c, h.logger, disabled(app.BackendSQL))
			return
		}
		timed(c, h.logger, func(ctx context.Context) (any, error) {
			return fn(ctx, c)
		})
	}
}
