package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tierbench/internal/domain"
	"tierbench/internal/loader"
	"tierbench/internal/metrics"
	"tierbench/internal/seed"
	"tierbench/pkg/util"
)

// ErrBackendDisabled 表示对应存储未配置。
var ErrBackendDisabled = errors.New("backend disabled")

const (
	BackendSQL   = "sql"
	BackendMongo = "mongo"
	BackendGraph = "graph"
)

// SeedResult 描述一次造数的结果。
type SeedResult struct {
	RunID       string        `json:"run_id"`
	Backend     string        `json:"backend"`
	Seed        int64         `json:"seed"`
	Policy      string        `json:"policy,omitempty"`
	Branches    int           `json:"branches"`
	Animals     int           `json:"animals"`
	Relations   int           `json:"relations"`
	Cleared     bool          `json:"cleared"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMs   float64       `json:"elapsed_ms"`
	Fingerprint string        `json:"fingerprint"`
}

// ClearResult 列出被清空的存储。
type ClearResult struct {
	Backends []string `json:"backends"`
}

// Service 持有进程唯一的随机源，串行化所有造数请求。
type Service struct {
	mu         sync.Mutex
	seedValue  int64
	gen        *seed.Generator
	policy     seed.Policy
	maxPerItem int

	Relational *RelationalSeedFlow
	Document   *DocumentSeedFlow
	Graph      *GraphSeedFlow

	logger   *zap.Logger
	newRunID func() string
}

// NewService 根据配置构建 Service，传入 nil 的存储视为未启用。
func NewService(cfg Config, rel RelationalSeeder, doc DocumentSeeder, graphWriter loader.Writer, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy, err := seed.ParsePolicy(cfg.Seed.Policy)
	if err != nil {
		return nil, err
	}
	seedValue := cfg.Seed.Seed
	if seedValue == 0 {
		seedValue = seed.DefaultSeed
	}
	svc := &Service{
		seedValue:  seedValue,
		gen:        seed.NewGenerator(seed.NewSource(seedValue)),
		policy:     policy,
		maxPerItem: cfg.Seed.RelationMaxPerItem,
		logger:     logger,
		newRunID:   uuid.NewString,
	}
	if rel != nil {
		svc.Relational = &RelationalSeedFlow{Store: rel, Logger: logger}
	}
	if doc != nil {
		svc.Document = &DocumentSeedFlow{Store: doc, Logger: logger}
	}
	if graphWriter != nil {
		svc.Graph = NewGraphSeedFlow(graphWriter, cfg.Neo4j.BatchSize, logger)
	}
	return svc, nil
}

// SeedValue 返回随机源使用的种子。
func (s *Service) SeedValue() int64 {
	return s.seedValue
}

func (s *Service) resolvePolicy(raw string) (seed.Policy, error) {
	if raw == "" {
		return s.policy, nil
	}
	return seed.ParsePolicy(raw)
}

func (s *Service) withMaxPerItem(req seed.Request) seed.Request {
	if req.RelationMaxPerItem <= 0 {
		req.RelationMaxPerItem = s.maxPerItem
	}
	return req
}

// 调用方必须持有 s.mu。
func (s *Service) generate(req seed.Request) (domain.BatchSet, seed.Policy, error) {
	policy, err := s.resolvePolicy(req.Policy)
	if err != nil {
		return domain.BatchSet{}, 0, err
	}
	if req.ResetSource {
		s.gen.Source().Reset()
	}
	batch, err := s.gen.Batch(s.withMaxPerItem(req), policy)
	return batch, policy, err
}

// Seed 生成一个关系型批次并写入关系库。
func (s *Service) Seed(ctx context.Context, req seed.Request) (SeedResult, error) {
	if s.Relational == nil {
		return SeedResult{}, fmt.Errorf("%w: %s", ErrBackendDisabled, BackendSQL)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, policy, err := s.generate(req)
	if err != nil {
		return SeedResult{}, s.fail(BackendSQL, "", err)
	}
	result, err := s.newResult(BackendSQL, batch, req.Clear)
	if err != nil {
		return SeedResult{}, s.fail(BackendSQL, "", err)
	}
	result.Policy = policy.String()
	elapsed, err := s.Relational.Run(ctx, batch, req.Clear)
	return s.finish(result, elapsed, err)
}

// SeedGraph 生成一个关系型批次并写入图库。
func (s *Service) SeedGraph(ctx context.Context, req seed.Request) (SeedResult, error) {
	if s.Graph == nil {
		return SeedResult{}, fmt.Errorf("%w: %s", ErrBackendDisabled, BackendGraph)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, policy, err := s.generate(req)
	if err != nil {
		return SeedResult{}, s.fail(BackendGraph, "", err)
	}
	result, err := s.newResult(BackendGraph, batch, req.Clear)
	if err != nil {
		return SeedResult{}, s.fail(BackendGraph, "", err)
	}
	result.Policy = policy.String()
	elapsed, err := s.Graph.Run(ctx, batch, result.RunID, req.Clear)
	return s.finish(result, elapsed, err)
}

// SeedDocuments 生成文档批次并写入文档库。
func (s *Service) SeedDocuments(ctx context.Context, req seed.DocRequest) (SeedResult, error) {
	if s.Document == nil {
		return SeedResult{}, fmt.Errorf("%w: %s", ErrBackendDisabled, BackendMongo)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ResetSource {
		s.gen.Source().Reset()
	}
	batch, err := s.gen.DocBatch(req)
	if err != nil {
		return SeedResult{}, s.fail(BackendMongo, "", err)
	}
	result, err := s.newResult(BackendMongo, batch, req.Clear)
	if err != nil {
		return SeedResult{}, s.fail(BackendMongo, "", err)
	}
	result.Branches = len(batch.Branches)
	result.Animals = batch.AnimalCount()
	elapsed, err := s.Document.Run(ctx, batch, req.Clear)
	return s.finish(result, elapsed, err)
}

// Preview 用全新的随机源生成批次，不写库也不推进共享随机源。
func (s *Service) Preview(req seed.Request) (domain.BatchSet, error) {
	policy, err := s.resolvePolicy(req.Policy)
	if err != nil {
		return domain.BatchSet{}, err
	}
	gen := seed.NewGenerator(seed.NewSource(s.seedValue))
	return gen.Batch(s.withMaxPerItem(req), policy)
}

// PreviewDocuments 与 Preview 相同，生成文档批次。
func (s *Service) PreviewDocuments(req seed.DocRequest) (domain.DocBatchSet, error) {
	gen := seed.NewGenerator(seed.NewSource(s.seedValue))
	return gen.DocBatch(req)
}

// Clear 清空所有已启用的存储。
func (s *Service) Clear(ctx context.Context) (ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := ClearResult{Backends: make([]string, 0, 3)}
	if s.Relational != nil {
		if err := s.Relational.Store.ClearAll(ctx); err != nil {
			return result, fmt.Errorf("清空关系库失败: %w", err)
		}
		result.Backends = append(result.Backends, BackendSQL)
	}
	if s.Document != nil {
		if err := s.Document.Store.ClearAll(ctx); err != nil {
			return result, fmt.Errorf("清空文档库失败: %w", err)
		}
		result.Backends = append(result.Backends, BackendMongo)
	}
	if s.Graph != nil {
		if err := s.Graph.Cleaner.ClearAll(ctx); err != nil {
			return result, err
		}
		result.Backends = append(result.Backends, BackendGraph)
	}
	if len(result.Backends) == 0 {
		return result, fmt.Errorf("%w: no store configured", ErrBackendDisabled)
	}
	s.logger.Info("stores cleared", zap.Strings("backends", result.Backends))
	return result, nil
}

// Close 等待进行中的造数结束。存储由创建方关闭。
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("seed service closed")
	return ctx.Err()
}

func (s *Service) newResult(backend string, batch any, cleared bool) (SeedResult, error) {
	fp, err := util.Fingerprint(batch)
	if err != nil {
		return SeedResult{}, err
	}
	result := SeedResult{
		RunID:       s.newRunID(),
		Backend:     backend,
		Seed:        s.seedValue,
		Cleared:     cleared,
		Fingerprint: fp,
	}
	if b, ok := batch.(domain.BatchSet); ok {
		result.Branches = len(b.Branches)
		result.Animals = len(b.Animals)
		result.Relations = len(b.Relations)
	}
	return result, nil
}

// fail 记录一次造数失败，生成阶段的失败没有 runID。
func (s *Service) fail(backend, runID string, err error) error {
	metrics.SeedErrors.WithLabelValues(backend).Inc()
	s.logger.Error("seed failed", zap.String("backend", backend), zap.String("run_id", runID), zap.Error(err))
	return err
}

func (s *Service) finish(result SeedResult, elapsed time.Duration, err error) (SeedResult, error) {
	if err != nil {
		return SeedResult{}, s.fail(result.Backend, result.RunID, err)
	}
	metrics.SeedDuration.WithLabelValues(result.Backend).Observe(elapsed.Seconds())
	result.Elapsed = elapsed
	result.ElapsedMs = float64(elapsed.Microseconds()) / 1000
	s.logger.Info("seed completed",
		zap.String("backend", result.Backend),
		zap.String("run_id", result.RunID),
		zap.String("fingerprint", result.Fingerprint),
		zap.Duration("elapsed", elapsed))
	return result, nil
}
