package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"tierbench/internal/metrics"
)

const (
	DefaultIterations = 5
	MaxIterations     = 50
)

const (
	OpRead   = "read"
	OpWrite  = "write"
	OpUpdate = "update"
	OpDelete = "delete"
)

var ops = []string{OpRead, OpWrite, OpUpdate, OpDelete}

// ErrNoTargets 表示没有任何已启用的存储可以压测。
var ErrNoTargets = errors.New("no benchmark targets configured")

var presets = map[string]int{"small": 5, "medium": 10, "large": 15}

// Request 是一次压测请求，Size 与 Iterations 二选一，Iterations 优先。
type Request struct {
	Iterations int    `json:"iterations"`
	Size       string `json:"size"`
}

// ResolveIterations 把请求换算为轮数，超过 MaxIterations 截断。
func (r Request) ResolveIterations() (int, error) {
	n := r.Iterations
	if n <= 0 && r.Size != "" {
		preset, ok := presets[strings.ToLower(r.Size)]
		if !ok {
			return 0, fmt.Errorf("未知压测规模: %s", r.Size)
		}
		n = preset
	}
	if n <= 0 {
		n = DefaultIterations
	}
	if n > MaxIterations {
		n = MaxIterations
	}
	return n, nil
}

// Sample 是单次操作的耗时。
type Sample struct {
	Target    string        `json:"target"`
	Op        string        `json:"op"`
	Iteration int           `json:"iteration"`
	Elapsed   time.Duration `json:"-"`
	ElapsedMs float64       `json:"elapsed_ms"`
}

// Stat 汇总某存储某操作的耗时。
type Stat struct {
	Target string  `json:"target"`
	Op     string  `json:"op"`
	Count  int     `json:"count"`
	AvgMs  float64 `json:"avg_ms"`
	MinMs  float64 `json:"min_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// Report 是一次压测的结果。
type Report struct {
	Iterations int       `json:"iterations"`
	StartedAt  time.Time `json:"started_at"`
	Samples    []Sample  `json:"samples"`
	Stats      []Stat    `json:"stats"`
}

// Runner 依次压测所有目标。
type Runner struct {
	targets []Target
	logger  *zap.Logger
}

// NewRunner 创建压测器，nil 目标会被忽略。
func NewRunner(logger *zap.Logger, targets ...Target) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{logger: logger}
	for _, t := range targets {
		if t != nil {
			r.targets = append(r.targets, t)
		}
	}
	return r
}

// Targets 返回参与压测的目标名。
func (r *Runner) Targets() []string {
	names := make([]string, 0, len(r.targets))
	for _, t := range r.targets {
		names = append(names, t.Name())
	}
	return names
}

// Run 执行 iterations 轮，每轮对每个目标依次做读、写、改、删。
func (r *Runner) Run(ctx context.Context, iterations int) (Report, error) {
	if len(r.targets) == 0 {
		return Report{}, ErrNoTargets
	}
	iterations, _ = Request{Iterations: iterations}.ResolveIterations()
	report := Report{Iterations: iterations, StartedAt: time.Now().UTC()}

	for i := 1; i <= iterations; i++ {
		for _, target := range r.targets {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
			samples, err := r.iterate(ctx, target, i)
			if err != nil {
				return Report{}, fmt.Errorf("压测 %s 第 %d 轮失败: %w", target.Name(), i, err)
			}
			report.Samples = append(report.Samples, samples...)
		}
	}
	report.Stats = Summarize(report.Samples)
	r.logger.Info("benchmark finished",
		zap.Int("iterations", iterations),
		zap.Strings("targets", r.Targets()),
		zap.Int("samples", len(report.Samples)))
	return report, nil
}

func (r *Runner) iterate(ctx context.Context, target Target, iteration int) ([]Sample, error) {
	samples := make([]Sample, 0, len(ops))
	record := func(op string, start time.Time) {
		elapsed := time.Since(start)
		metrics.BenchDuration.WithLabelValues(target.Name(), op).Observe(elapsed.Seconds())
		samples = append(samples, Sample{
			Target:    target.Name(),
			Op:        op,
			Iteration: iteration,
			Elapsed:   elapsed,
			ElapsedMs: toMs(elapsed),
		})
	}

	start := time.Now()
	if _, err := target.ReadAll(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", OpRead, err)
	}
	record(OpRead, start)

	start = time.Now()
	id, err := target.CreateProbe(ctx, iteration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpWrite, err)
	}
	record(OpWrite, start)

	start = time.Now()
	if err := target.UpdateProbe(ctx, id, iteration); err != nil {
		if delErr := target.DeleteProbe(ctx, id); delErr != nil {
			r.logger.Warn("failed to remove benchmark probe", zap.String("target", target.Name()), zap.String("id", id), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%s: %w", OpUpdate, err)
	}
	record(OpUpdate, start)

	start = time.Now()
	if err := target.DeleteProbe(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", OpDelete, err)
	}
	record(OpDelete, start)
	return samples, nil
}

// Summarize 按 (目标, 操作) 汇总样本，顺序与首次出现一致。
func Summarize(samples []Sample) []Stat {
	type key struct{ target, op string }
	index := make(map[key]int)
	stats := make([]Stat, 0)
	sums := make([]float64, 0)
	for _, s := range samples {
		k := key{s.Target, s.Op}
		i, ok := index[k]
		if !ok {
			i = len(stats)
			index[k] = i
			stats = append(stats, Stat{Target: s.Target, Op: s.Op, MinMs: math.Inf(1)})
			sums = append(sums, 0)
		}
		ms := toMs(s.Elapsed)
		st := &stats[i]
		st.Count++
		sums[i] += ms
		st.MinMs = math.Min(st.MinMs, ms)
		st.MaxMs = math.Max(st.MaxMs, ms)
	}
	for i := range stats {
		stats[i].AvgMs = sums[i] / float64(stats[i].Count)
	}
	return stats
}

func toMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
