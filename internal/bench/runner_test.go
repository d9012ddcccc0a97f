package bench

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierbench/internal/domain"
	"tierbench/internal/relational"
)

type fakeTarget struct {
	name      string
	calls     []string
	updateErr error
}

func (f *fakeTarget) Name() string { return f.name }

func (f *fakeTarget) ReadAll(context.Context) (int, error) {
	f.calls = append(f.calls, OpRead)
	return 0, nil
}

func (f *fakeTarget) CreateProbe(_ context.Context, iteration int) (string, error) {
	f.calls = append(f.calls, OpWrite)
	return probeName(iteration), nil
}

func (f *fakeTarget) UpdateProbe(context.Context, string, int) error {
	f.calls = append(f.calls, OpUpdate)
	return f.updateErr
}

func (f *fakeTarget) DeleteProbe(context.Context, string) error {
	f.calls = append(f.calls, OpDelete)
	return nil
}

func TestRunnerRunsEveryOpPerIteration(t *testing.T) {
	a := &fakeTarget{name: "a"}
	b := &fakeTarget{name: "b"}
	report, err := NewRunner(nil, a, nil, b).Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Iterations)
	assert.Len(t, report.Samples, 3*2*4)
	assert.Equal(t, []string{OpRead, OpWrite, OpUpdate, OpDelete}, a.calls[:4])
	assert.Len(t, b.calls, 12)

	require.Len(t, report.Stats, 8)
	for _, st := range report.Stats {
		assert.Equal(t, 3, st.Count)
		assert.LessOrEqual(t, st.MinMs, st.AvgMs)
		assert.LessOrEqual(t, st.AvgMs, st.MaxMs)
	}
	assert.Equal(t, "a", report.Stats[0].Target)
	assert.Equal(t, OpRead, report.Stats[0].Op)
}

func TestRunnerRemovesProbeWhenUpdateFails(t *testing.T) {
	boom := errors.New("boom")
	target := &fakeTarget{name: "a", updateErr: boom}
	_, err := NewRunner(nil, target).Run(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{OpRead, OpWrite, OpUpdate, OpDelete}, target.calls)
}

func TestRunnerWithoutTargets(t *testing.T) {
	_, err := NewRunner(nil).Run(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestRunnerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, &fakeTarget{name: "a"}).Run(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveIterations(t *testing.T) {
	cases := []struct {
		req  Request
		want int
	}{
		{Request{}, DefaultIterations},
		{Request{Iterations: 7}, 7},
		{Request{Iterations: 500}, MaxIterations},
		{Request{Size: "medium"}, 10},
		{Request{Size: "LARGE"}, 15},
		{Request{Iterations: 2, Size: "large"}, 2},
	}
	for _, c := range cases {
		got, err := c.req.ResolveIterations()
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%+v", c.req)
	}
	_, err := Request{Size: "huge"}.ResolveIterations()
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]Sample{
		{Target: "sql", Op: OpRead, Elapsed: 2 * time.Millisecond},
		{Target: "sql", Op: OpRead, Elapsed: 4 * time.Millisecond},
		{Target: "mongo", Op: OpRead, Elapsed: time.Millisecond},
	})
	require.Len(t, stats, 2)
	assert.Equal(t, Stat{Target: "sql", Op: OpRead, Count: 2, AvgMs: 3, MinMs: 2, MaxMs: 4}, stats[0])
	assert.Equal(t, "mongo", stats[1].Target)
	assert.Empty(t, Summarize(nil))
}

func TestRelationalTargetAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := relational.Open(relational.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "bench.db")}, nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.InsertBatch(ctx, domain.BatchSet{Branches: []domain.Branch{{ID: 1, Name: "Zoo", Address: "A"}}}))

	report, err := NewRunner(nil, RelationalTarget{Store: store}).Run(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, report.Samples, 8)

	branches, err := store.Branches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 1)
}
