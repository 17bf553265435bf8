package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Loop executes posted functions one at a time on a single goroutine.
// It drives one Engine and doubles as its Scheduler, so timer callbacks and
// player input never run concurrently.
type Loop struct {
	inbox     chan func()
	done      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewLoop creates a loop with an inbox of the given size.
func NewLoop(logger *zap.Logger, buffer int) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		inbox:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes the inbox until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.inbox:
			l.exec(fn)
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// Post queues fn for execution. It returns false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case <-l.done:
		return false
	case l.inbox <- fn:
		return true
	}
}

// Do runs fn on the loop and waits for it to finish.
// It must not be called from a function already running on the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	ok := l.Post(func() {
		defer close(finished)
		fn()
	})
	if !ok {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc schedules fn to be posted to the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Task {
	t := &loopTask{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.cancelled.Load() {
				return
			}
			fn()
		})
	})
	return t
}

// Close stops the loop. Functions still queued are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

type loopTask struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (t *loopTask) Cancel() {
	t.cancelled.Store(true)
	t.timer.Stop()
}
