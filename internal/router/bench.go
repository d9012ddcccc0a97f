package router

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/bench"
)

// BenchRunner 执行一次多存储压测。
type BenchRunner interface {
	Run(ctx context.Context, iterations int) (bench.Report, error)
}

// BenchHandler 处理压测请求。
type BenchHandler struct {
	runner BenchRunner
	logger *zap.Logger
}

func NewBenchHandler(runner BenchRunner, logger *zap.Logger) *BenchHandler {
	return &BenchHandler{runner: runner, logger: logger}
}

// RegisterRoutes 注册压测路由。
func (h *BenchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bench", h.run)
}

func (h *BenchHandler) run(c *gin.Context) {
	var req bench.Request
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			writeError(c, h.logger, err)
			return
		}
	}
	iterations, err := req.ResolveIterations()
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if h.runner == nil {
		writeError(c, h.logger, bench.ErrNoTargets)
		return
	}
	timed(c, h.logger, func(ctx context.Context) (any, error) {
		return h.runner.Run(ctx, iterations)
	})
}
