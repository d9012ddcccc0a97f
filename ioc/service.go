package ioc

import (
	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/document"
	"tierbench/internal/loader"
	"tierbench/internal/relational"
)

// InitAppService 构建造数服务。nil 指针必须转成 nil 接口，否则会被当作已启用。
func InitAppService(cfg app.Config, rel *relational.Store, doc *document.Store, writer *loader.Client, logger *zap.Logger) (*app.Service, error) {
	var (
		relSeeder app.RelationalSeeder
		docSeeder app.DocumentSeeder
		graphW    loader.Writer
	)
	if rel != nil {
		relSeeder = rel
	}
	if doc != nil {
		docSeeder = doc
	}
	if writer != nil {
		graphW = writer
	}
	return app.NewService(cfg, relSeeder, docSeeder, graphW, logger)
}
