package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiler struct {
	mu      sync.Mutex
	seen    []string
	active  atomic.Int32
	maxSeen atomic.Int32
	delay   time.Duration
}

func (s *stubProfiler) Profile(ctx context.Context, req managers.ProfileRequest) (*managers.ProfileResult, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	s.mu.Lock()
	s.seen = append(s.seen, req.ID)
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if req.ID == "0" {
		return nil, fmt.Errorf("manager profile 0: %w", extraction.ErrNotFound)
	}
	if req.ID == "boom" {
		return nil, fmt.Errorf("fetch failed")
	}
	return &managers.ProfileResult{Profile: extraction.Record{"id": req.ID}}, nil
}

func TestRun_PreservesOrderAndIsolatesFailures(t *testing.T) {
	svc := &stubProfiler{}
	cfg := &config.WorkerConfig{Count: 3}
	ids := []string{"1", "0", "2", "boom", "3"}

	results := Run(context.Background(), cfg, svc, ids)
	require.Len(t, results, len(ids))

	for i, r := range results {
		assert.Equal(t, ids[i], r.ID)
	}

	assert.False(t, results[0].Failed())
	assert.Equal(t, "1", results[0].Profile.Profile["id"])

	assert.True(t, results[1].Failed())
	assert.True(t, results[1].NotFound)
	assert.Nil(t, results[1].Profile)

	assert.True(t, results[3].Failed())
	assert.False(t, results[3].NotFound)

	assert.False(t, results[4].Failed())
	assert.ElementsMatch(t, ids, svc.seen)
}

func TestRun_DuplicateIDs(t *testing.T) {
	results := Run(context.Background(), &config.WorkerConfig{Count: 2}, &stubProfiler{}, []string{"7", "7"})
	require.Len(t, results, 2)
	assert.Equal(t, "7", results[0].ID)
	assert.Equal(t, "7", results[1].ID)
	assert.False(t, results[1].Failed())
}

func TestPool_BoundedConcurrency(t *testing.T) {
	svc := &stubProfiler{delay: 20 * time.Millisecond}
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}

	results := Run(context.Background(), &config.WorkerConfig{Count: 2}, svc, ids)
	require.Len(t, results, len(ids))
	assert.LessOrEqual(t, svc.maxSeen.Load(), int32(2))
}

func TestPool_RateLimit(t *testing.T) {
	svc := &stubProfiler{}
	cfg := &config.WorkerConfig{Count: 3, RateLimit: 20 * time.Millisecond}

	start := time.Now()
	results := Run(context.Background(), cfg, svc, []string{"1", "2", "3", "4"})
	require.Len(t, results, 4)

	// Four jobs need four ticks.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.WorkerConfig{Count: 1, RateLimit: time.Hour}
	results := Run(ctx, cfg, &stubProfiler{}, []string{"1", "2"})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Failed())
		assert.Contains(t, r.Err, "context canceled")
	}
}
