package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SeedDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tierbench_seed_persist_duration_seconds",
		Help:    "单次造数写入耗时，只统计持久化部分",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	SeedErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tierbench_seed_errors_total",
		Help: "造数失败次数",
	}, []string{"backend"})

	BenchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tierbench_bench_op_duration_seconds",
		Help:    "压测单次操作耗时",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"target", "op"})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(SeedDuration, SeedErrors, BenchDuration)
}
