package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)

	SeedErrors.WithLabelValues("test").Inc()
	SeedDuration.WithLabelValues("test").Observe(0.25)
	BenchDuration.WithLabelValues("sql", "read").Observe(0.001)

	assert.Equal(t, 1.0, testutil.ToFloat64(SeedErrors.WithLabelValues("test")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"tierbench_seed_persist_duration_seconds",
		"tierbench_seed_errors_total",
		"tierbench_bench_op_duration_seconds",
	}, names)

	assert.Panics(t, func() { MustRegister(reg) })
}
