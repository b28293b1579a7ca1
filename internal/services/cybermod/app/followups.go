package app

import (
	"context"
	"sync"

	"github.com/louisbranch/pound-of-flesh/internal/platform/logging"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"go.uber.org/zap"
)

// FollowUps runs deferred consequence tasks one at a time, in order, on a
// single goroutine. Tasks run after the primary outcome is committed and
// must re-fetch any document they read. Schedule never blocks, so a task
// may schedule another.
type FollowUps struct {
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
	queue  []followUp
	wg     sync.WaitGroup
	wake   chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

type followUp struct {
	name string
	run  func(ctx context.Context) error
}

// NewFollowUps starts the runner goroutine.
func NewFollowUps(logger *zap.Logger) *FollowUps {
	f := &FollowUps{
		logger: logging.OrNop(logger),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go f.loop()
	return f
}

// Schedule enqueues a task. It reports false once the runner is closed.
func (f *FollowUps) Schedule(name string, run func(ctx context.Context) error) bool {
	if f == nil || run == nil {
		return false
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return false
	}
	f.wg.Add(1)
	f.queue = append(f.queue, followUp{name: name, run: run})
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush blocks until every scheduled task has finished.
func (f *FollowUps) Flush() {
	if f == nil {
		return
	}
	f.wg.Wait()
}

// Close drains the queue and stops the runner. It is safe to call twice.
func (f *FollowUps) Close() {
	if f == nil {
		return
	}
	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.stop)
	}
	f.mu.Unlock()
	<-f.done
}

func (f *FollowUps) loop() {
	defer close(f.done)
	for {
		f.drain()
		select {
		case <-f.wake:
		case <-f.stop:
			f.drain()
			return
		}
	}
}

// drain runs queued tasks until the queue is empty.
func (f *FollowUps) drain() {
	for {
		f.mu.Lock()
		if len(f.queue) == 0 {
			f.mu.Unlock()
			return
		}
		task := f.queue[0]
		f.queue[0] = followUp{}
		f.queue = f.queue[1:]
		f.mu.Unlock()
		f.runOne(task)
	}
}

func (f *FollowUps) runOne(task followUp) {
	defer f.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("follow-up panicked", zap.String("task", task.name), zap.Any("panic", r))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 2*timeouts.DocumentCall)
	defer cancel()
	if err := task.run(ctx); err != nil {
		f.logger.Warn("follow-up failed", zap.String("task", task.name), zap.Error(err))
	}
}
