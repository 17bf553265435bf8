package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sweepRecorder struct {
	calls chan time.Time
}

func (r *sweepRecorder) SweepIdle(_ context.Context, now time.Time) int {
	select {
	case r.calls <- now:
	default:
	}
	return 1
}

func TestSweeperService_InvalidSchedule(t *testing.T) {
	s := NewSweeperService(&sweepRecorder{calls: make(chan time.Time, 1)}, "not a schedule", zap.NewNop())

	err := s.Start(context.Background())
	require.Error(t, err)
}

func TestSweeperService_RunsUntilCancelled(t *testing.T) {
	rec := &sweepRecorder{calls: make(chan time.Time, 1)}
	s := NewSweeperService(rec, "@every 1s", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case <-rec.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("sweep did not run")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
