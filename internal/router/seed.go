package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/domain"
	"tierbench/internal/seed"
)

// Seeder 是造数接口依赖的服务。
type Seeder interface {
	Seed(ctx context.Context, req seed.Request) (app.SeedResult, error)
	SeedGraph(ctx context.Context, req seed.Request) (app.SeedResult, error)
	SeedDocuments(ctx context.Context, req seed.DocRequest) (app.SeedResult, error)
	Preview(req seed.Request) (domain.BatchSet, error)
	PreviewDocuments(req seed.DocRequest) (domain.DocBatchSet, error)
	Clear(ctx context.Context) (app.ClearResult, error)
}

// SeedHandler 处理造数、预览与清库请求。
type SeedHandler struct {
	svc    Seeder
	logger *zap.Logger
}

func NewSeedHandler(svc Seeder, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{svc: svc, logger: logger}
}

// RegisterRoutes 注册造数路由。
func (h *SeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/startseed", h.seedRelational)
	rg.POST("/graph/startseed", h.seedGraph)
	rg.POST("/mongo/startseed", h.seedDocuments)
	rg.POST("/seed/preview", h.preview)
	rg.POST("/mongo/seed/preview", h.previewDocuments)
	rg.DELETE("/seed", h.clear)
}

func (h *SeedHandler) seedRelational(c *gin.Context) {
	h.runRequest(c, h.svc.Seed)
}

func (h *SeedHandler) seedGraph(c *gin.Context) {
	h.runRequest(c, h.svc.SeedGraph)
}

func (h *SeedHandler) runRequest(c *gin.Context, run func(context.Context, seed.Request) (app.SeedResult, error)) {
	var req seed.Request
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		return run(ctx, req)
	})
}

func (h *SeedHandler) seedDocuments(c *gin.Context) {
	var req seed.DocRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		return h.svc.SeedDocuments(ctx, req)
	})
}

func (h *SeedHandler) preview(c *gin.Context) {
	var req seed.Request
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	timed(c, h.logger, func(context.Context) (any, error) {
		return h.svc.Preview(req)
	})
}

func (h *SeedHandler) previewDocuments(c *gin.Context) {
	var req seed.DocRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	timed(c, h.logger, func(context.Context) (any, error) {
		return h.svc.PreviewDocuments(req)
	})
}

func (h *SeedHandler) clear(c *gin.Context) {
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		return h.svc.Clear(ctx)
	})
}
