package job

import (
	"context"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger 是可以做连通性检查的存储。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 把函数适配为 Pinger。
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Status 是一次检查的结果。
type Status struct {
	Name      string  `json:"name"`
	OK        bool    `json:"ok"`
	LatencyMs float64 `json:"latency_ms"`
	Error     string  `json:"error,omitempty"`
}

// Heartbeat 定期 ping 已启用的存储并记录延迟。
type Heartbeat struct {
	spec    string
	timeout time.Duration
	checks  map[string]Pinger
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewHeartbeat 创建心跳任务，spec 为空时每小时一次；nil 检查项会被忽略。
func NewHeartbeat(spec string, checks map[string]Pinger, logger *zap.Logger) *Heartbeat {
	if spec == "" {
		spec = "@hourly"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	filtered := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			filtered[name] = p
		}
	}
	return &Heartbeat{spec: spec, timeout: 5 * time.Second, checks: filtered, logger: logger}
}

// Check 依次检查所有存储，结果按名字排序。
func (h *Heartbeat) Check(ctx context.Context) []Status {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Status, 0, len(names))
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
		start := time.Now()
		err := h.checks[name].Ping(pingCtx)
		cancel()
		st := Status{Name: name, OK: err == nil, LatencyMs: float64(time.Since(start).Microseconds()) / 1000}
		if err != nil {
			st.Error = err.Error()
			h.logger.Warn("store heartbeat failed", zap.String("store", name), zap.Error(err))
		} else {
			h.logger.Info("store heartbeat", zap.String("store", name), zap.Float64("latency_ms", st.LatencyMs))
		}
		out = append(out, st)
	}
	return out
}

// Start 启动心跳任务，返回停止函数。
func (h *Heartbeat) Start(parent context.Context) context.CancelFunc {
	if h == nil {
		return func() {}
	}
	c, stop := startCron(parent, "heartbeat", h.spec, func() { h.Check(parent) }, h.logger)
	h.cron = c
	return stop
}
