package ioc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/document"
	"tierbench/internal/relational"
)

// InitRelationalStore 打开关系库并建表；未配置 dsn 时返回 nil。
func InitRelationalStore(ctx context.Context, cfg app.Config, logger *zap.Logger) (*relational.Store, func(), error) {
	if !cfg.SQLEnabled() {
		logger.Info("relational store disabled: sql.dsn is empty")
		return nil, func() {}, nil
	}
	store, err := relational.Open(relational.Config{
		Driver:          cfg.SQL.Driver,
		DSN:             cfg.SQL.DSN,
		MaxOpenConns:    cfg.SQL.MaxOpenConns,
		MaxIdleConns:    cfg.SQL.MaxIdleConns,
		BatchSize:       cfg.SQL.BatchSize,
		SlowThresholdMs: cfg.SQL.SlowThresholdMs,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.SQL.ResetOnStart {
		err = store.Recreate(ctx)
	} else {
		err = store.Migrate(ctx)
	}
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close relational store failed", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

// InitDocumentStore 连接 MongoDB；未配置 uri 时返回 nil。
func InitDocumentStore(ctx context.Context, cfg app.Config, logger *zap.Logger) (*document.Store, func(), error) {
	if !cfg.MongoEnabled() {
		logger.Info("document store disabled: mongo.uri is empty")
		return nil, func() {}, nil
	}
	store, err := document.Connect(ctx, document.Config{
		URI:               cfg.Mongo.URI,
		Database:          cfg.Mongo.Database,
		Collection:        cfg.Mongo.Collection,
		ConnectTimeoutSec: cfg.Mongo.ConnectTimeoutSecond,
		BatchSize:         cfg.Mongo.BatchSize,
		RetryAttempts:     cfg.Mongo.Retry.Attempts,
		RetryBackoff:      time.Duration(cfg.Mongo.Retry.BackoffSeconds) * time.Second,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("close document store failed", zap.Error(err))
		}
	}
	return store, cleanup, nil
}
