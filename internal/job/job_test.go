package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	runs := 0
	s := NewScheduler("bench", "", func(context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		close(started)
		<-release
		return nil
	}, nil)

	done := make(chan bool)
	go func() { done <- s.trigger() }()
	<-started

	assert.False(t, s.trigger())
	close(release)
	assert.True(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, runs)
}

func TestSchedulerSkipsAfterParentCancelled(t *testing.T) {
	called := false
	s := NewScheduler("bench", "", func(context.Context) error {
		called = true
		return nil
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	s.parent = ctx
	cancel()

	assert.False(t, s.trigger())
	assert.False(t, called)
}

func TestSchedulerWithoutFunction(t *testing.T) {
	assert.False(t, NewScheduler("bench", "", nil, nil).trigger())
}

func TestSchedulerStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler("bench", "not a cron", func(context.Context) error { return nil }, nil)
	stop := s.Start(context.Background())
	stop()
	assert.Nil(t, s.cron)
}

func TestSchedulerStartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewScheduler("bench", "@every 1h", func(context.Context) error { return nil }, nil)
	stop := s.Start(ctx)
	require.NotNil(t, s.cron)
	assert.Len(t, s.cron.Entries(), 1)
	stop()
	stop()
}

func TestHeartbeatCheck(t *testing.T) {
	boom := errors.New("down")
	h := NewHeartbeat("", map[string]Pinger{
		"sql":   PingFunc(func(context.Context) error { return nil }),
		"mongo": PingFunc(func(context.Context) error { return boom }),
		"graph": nil,
	}, nil)

	statuses := h.Check(context.Background())
	require.Len(t, statuses, 2)
	assert.Equal(t, "mongo", statuses[0].Name)
	assert.False(t, statuses[0].OK)
	assert.Equal(t, "down", statuses[0].Error)
	assert.Equal(t, "sql", statuses[1].Name)
	assert.True(t, statuses[1].OK)
}

func TestHeartbeatPingTimeout(t *testing.T) {
	h := NewHeartbeat("", map[string]Pinger{
		"slow": PingFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	}, nil)
	h.timeout = 10 * time.Millisecond

	statuses := h.Check(context.Background())
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].OK)
}

func TestHeartbeatStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHeartbeat("@every 1h", nil, nil)
	stop := h.Start(ctx)
	require.NotNil(t, h.cron)
	cancel()
	stop()
}
