package relational

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tierbench/internal/domain"
	"tierbench/internal/logging"
)

const defaultBatchSize = 100

// Config 描述关系库连接参数。
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	BatchSize       int
	SlowThresholdMs int
}

// Store 基于 GORM 访问分店、动物与关系三张表。
type Store struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
}

// Open 按驱动名打开数据库，支持 sqlite 与 postgres。
func Open(cfg Config, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sql dsn 不能为空")
	}
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的 sql 驱动: %s", cfg.Driver)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(logger, time.Duration(cfg.SlowThresholdMs)*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Store{db: db, batchSize: batchSize, logger: logger}, nil
}

// Migrate 创建或更新表结构。
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&domain.Branch{}, &domain.Animal{}, &domain.Relation{}); err != nil {
		return fmt.Errorf("迁移表结构失败: %w", err)
	}
	return nil
}

// Recreate 删表后重新建表，用于启动时重置数据库。
func (s *Store) Recreate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(&domain.Relation{}, &domain.Animal{}, &domain.Branch{}); err != nil {
		return fmt.Errorf("删除表失败: %w", err)
	}
	s.logger.Info("relational tables dropped")
	return s.Migrate(ctx)
}

// Ping 检查连接是否可用。
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭连接池。
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Counts 返回三张表的行数。
func (s *Store) Counts(ctx context.Context) (branches, animals, relations int64, err error) {
	db := s.db.WithContext(ctx)
	if err = db.Model(&domain.Branch{}).Count(&branches).Error; err != nil {
		return
	}
	if err = db.Model(&domain.Animal{}).Count(&animals).Error; err != nil {
		return
	}
	err = db.Model(&domain.Relation{}).Count(&relations).Error
	return
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	default:
		return err
	}
}
