package ioc

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/bench"
	"tierbench/internal/document"
	"tierbench/internal/graph"
	"tierbench/internal/job"
	"tierbench/internal/relational"
	"tierbench/internal/router"
)

// InitSeedHandler 构建造数 HTTP 处理器。
func InitSeedHandler(svc *app.Service, logger *zap.Logger) *router.SeedHandler {
	return router.NewSeedHandler(svc, logger)
}

// InitRelationalHandler 构建关系库 HTTP 处理器。
func InitRelationalHandler(store *relational.Store, logger *zap.Logger) *router.RelationalHandler {
	// nil 指针要转成 nil 接口，处理器才会按未启用返回 503。
	if store == nil {
		return router.NewRelationalHandler(nil, logger)
	}
	return router.NewRelationalHandler(store, logger)
}

// InitDocumentHandler 构建文档库 HTTP 处理器。
func InitDocumentHandler(store *document.Store, logger *zap.Logger) *router.DocumentHandler {
	// nil 指针要转成 nil 接口，处理器才会按未启用返回 503。
	if store == nil {
		return router.NewDocumentHandler(nil, logger)
	}
	return router.NewDocumentHandler(store, logger)
}

// InitGraphHandler 构建图库 HTTP 处理器。
func InitGraphHandler(queries *graph.Queries, logger *zap.Logger) *router.GraphHandler {
	// nil 指针要转成 nil 接口，处理器才会按未启用返回 503。
	if queries == nil {
		return router.NewGraphHandler(nil, logger)
	}
	return router.NewGraphHandler(queries, logger)
}

// InitBenchHandler 构建压测 HTTP 处理器。
func InitBenchHandler(runner *bench.Runner, logger *zap.Logger) *router.BenchHandler {
	return router.NewBenchHandler(runner, logger)
}

// InitGinEngine 构建 gin 引擎。
func InitGinEngine(cfg app.Config, heartbeat *job.Heartbeat, seedHandler *router.SeedHandler, relHandler *router.RelationalHandler,
	docHandler *router.DocumentHandler, graphHandler *router.GraphHandler, benchHandler *router.BenchHandler) *gin.Engine {
	return router.NewEngine(cfg.HTTP.CORSOrigins, heartbeat, seedHandler, relHandler, docHandler, graphHandler, benchHandler)
}
