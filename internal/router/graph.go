package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/graph"
)

// GraphQueries 是图库遍历查询。
type GraphQueries interface {
	AnimalsByBranch(ctx context.Context, branchID int) ([]graph.HeldAnimal, error)
	BranchesByAnimal(ctx context.Context, name string) ([]graph.Holder, error)
}

// GraphHandler 暴露 /graph 下的只读查询。
type GraphHandler struct {
	queries GraphQueries
	logger  *zap.Logger
}

func NewGraphHandler(queries GraphQueries, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{queries: queries, logger: logger}
}

// RegisterRoutes 注册图库路由。
func (h *GraphHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/graph")
	g.GET("/animals/branch/:id", h.animalsByBranch)
	g.GET("/branches/animal/:name", h.branchesByAnimal)
}

func (h *GraphHandler) animalsByBranch(c *gin.Context) {
	if h.queries == nil {
		writeError(c, h.logger, disabled(app.BackendGraph))
		return
	}
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		id, err := intParam(c, "id")
		if err != nil {
			return nil, err
		}
		return h.queries.AnimalsByBranch(ctx, id)
	})
}

func (h *GraphHandler) branchesByAnimal(c *gin.Context) {
	if h.queries == nil {
		writeError(c, h.logger, disabled(app.BackendGraph))
		return
	}
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		return h.queries.BranchesByAnimal(ctx, c.Param("name"))
	})
}
