package job

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultCronSpec = "0 7 * * *"

// Scheduler 按 cron 表达式执行后台任务，上一次未结束时跳过本次。
type Scheduler struct {
	name    string
	spec    string
	run     func(context.Context) error
	logger  *zap.Logger
	cron    *cron.Cron
	parent  context.Context
	running atomic.Bool
}

// NewScheduler 构建调度器，spec 为空时每天 07:00 执行。
func NewScheduler(name, spec string, run func(context.Context) error, logger *zap.Logger) *Scheduler {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = defaultCronSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{name: name, spec: spec, run: run, logger: logger}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil {
		return func() {}
	}
	s.parent = parent
	c, stop := startCron(parent, s.name, s.spec, func() { s.trigger() }, s.logger)
	s.cron = c
	return stop
}

// trigger 执行一次任务，返回是否真正执行。
func (s *Scheduler) trigger() bool {
	if s.run == nil {
		s.logger.Warn("job function not configured", zap.String("job", s.name))
		return false
	}
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous run still in progress, skip current schedule", zap.String("job", s.name))
		return false
	}
	defer s.running.Store(false)

	ctx := s.parent
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		s.logger.Info("scheduler context cancelled, skip run", zap.String("job", s.name))
		return false
	}

	start := time.Now()
	err := s.run(ctx)
	fields := []zap.Field{zap.String("job", s.name), zap.Duration("duration", time.Since(start))}
	if err != nil {
		s.logger.Error("scheduled run failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("scheduled run completed", fields...)
	}
	return true
}
