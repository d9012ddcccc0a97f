package ioc

import (
	"context"

	"go.uber.org/zap"

	"tierbench/internal/app"
	"tierbench/internal/bench"
	"tierbench/internal/document"
	"tierbench/internal/job"
	"tierbench/internal/loader"
	"tierbench/internal/relational"
)

// InitBenchRunner 用已启用的存储构建压测器。
func InitBenchRunner(rel *relational.Store, doc *document.Store, logger *zap.Logger) *bench.Runner {
	var targets []bench.Target
	if rel != nil {
		targets = append(targets, bench.RelationalTarget{Store: rel})
	}
	if doc != nil {
		targets = append(targets, bench.DocumentTarget{Store: doc})
	}
	return bench.NewRunner(logger, targets...)
}

// InitScheduler 构建定时压测任务，未启用时返回 nil。
func InitScheduler(cfg app.Config, runner *bench.Runner, logger *zap.Logger) *job.Scheduler {
	if !cfg.Bench.Enabled {
		return nil
	}
	iterations := cfg.Bench.Iterations
	return job.NewScheduler("bench", cfg.Bench.Cron, func(ctx context.Context) error {
		_, err := runner.Run(ctx, iterations)
		return err
	}, logger)
}

// InitHeartbeat 构建存储心跳检查，/healthz 也复用它。
func InitHeartbeat(cfg app.Config, rel *relational.Store, doc *document.Store, writer *loader.Client, logger *zap.Logger) *job.Heartbeat {
	checks := map[string]job.Pinger{}
	if rel != nil {
		checks[app.BackendSQL] = rel
	}
	if doc != nil {
		checks[app.BackendMongo] = doc
	}
	if writer != nil {
		checks[app.BackendGraph] = writer
	}
	return job.NewHeartbeat(cfg.Heartbeat.Cron, checks, logger)
}
