package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tierbench/internal/job"
)

// Module 是可以挂到 /api/v1 下的一组路由。
type Module interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// HealthChecker 返回各存储的连通性。
type HealthChecker interface {
	Check(ctx context.Context) []job.Status
}

// NewEngine 构建 gin 引擎并注册所有模块路由。
// origins 为空时不启用 CORS；health 为 nil 时 /healthz 只返回进程存活。
func NewEngine(origins []string, health HealthChecker, modules ...Module) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if len(origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		statuses := health.Check(c.Request.Context())
		code := http.StatusOK
		for _, st := range statuses {
			if !st.OK {
				code = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, gin.H{"ok": code == http.StatusOK, "stores": statuses})
	})

	api := engine.Group("/api/v1")
	for _, m := range modules {
		if m != nil {
			m.RegisterRoutes(api)
		}
	}
	return engine
}
