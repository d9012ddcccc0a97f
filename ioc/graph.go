package ioc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/graph"
	"tierbench/internal/loader"
)

// InitGraphClient 构建 Neo4j 客户端，写图和遍历查询共用；未配置 uri 时返回 nil。
func InitGraphClient(ctx context.Context, cfg app.Config, logger *zap.Logger) (*loader.Client, func(), error) {
	if !cfg.Neo4jEnabled() {
		logger.Info("graph store disabled: neo4j.uri is empty")
		return nil, func() {}, nil
	}
	client, err := loader.NewClient(ctx, loader.Config{
		URI:                  cfg.Neo4j.URI,
		Username:             cfg.Neo4j.Username,
		Password:             cfg.Neo4j.Password,
		Database:             cfg.Neo4j.Database,
		MaxConnectionPool:    cfg.Neo4j.MaxConnectionPool,
		ConnectionTimeoutSec: cfg.Neo4j.ConnectTimeoutSecond,
		RetryAttempts:        cfg.Neo4j.Retry.Attempts,
		RetryBackoff:         time.Duration(cfg.Neo4j.Retry.BackoffSeconds) * time.Second,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("close graph client failed", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// InitGraphQueries 构建图遍历查询，图库未启用时返回 nil。
func InitGraphQueries(client *loader.Client) *graph.Queries {
	if client == nil {
		return nil
	}
	return graph.NewQueries(client)
}
