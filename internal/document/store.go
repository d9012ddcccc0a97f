package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"tierbench/internal/domain"
	"tierbench/internal/util"
)

const (
	defaultCollection = "branches"
	defaultBatchSize  = 100
)

// Config 描述 MongoDB 连接参数。
type Config struct {
	URI               string
	Database          string
	Collection        string
	ConnectTimeoutSec int
	BatchSize         int
	RetryAttempts     int
	RetryBackoff      time.Duration
}

// Store 把分店存成内嵌动物数组的文档。
type Store struct {
	client    *mongo.Client
	coll      *mongo.Collection
	batchSize int
	logger    *zap.Logger
}

// Connect 建立连接并带重试地 ping 主节点。
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("mongo uri 不能为空")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo database 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeoutSec > 0 {
		timeout := time.Duration(cfg.ConnectTimeoutSec) * time.Second
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("创建 mongo 客户端失败: %w", err)
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	err = util.Retry(ctx, cfg.RetryAttempts, backoff, func(attempt int) error {
		pingErr := client.Ping(ctx, readpref.Primary())
		if pingErr != nil {
			logger.Warn("mongo ping failed", zap.Int("attempt", attempt), zap.Error(pingErr))
		}
		return pingErr
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo 无法连通: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Store{
		client:    client,
		coll:      client.Database(cfg.Database).Collection(collection),
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// Ping 检查主节点是否可达。
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close 断开连接。
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrConflict
	default:
		return err
	}
}
