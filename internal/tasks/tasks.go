// Package tasks runs fire-and-forget background jobs on a bounded queue.
// Submitters hand over work and move on; job failures are logged, never
// propagated.
package tasks

import (
	"context"
	"log/slog"
	"time"
)

type task struct {
	name string
	fn   func(context.Context) error
}

// Runner executes submitted jobs sequentially on its own goroutine. Jobs
// still queued at shutdown are drained with a short grace period.
type Runner struct {
	queue  chan task
	logger *slog.Logger
}

// NewRunner creates a runner with the given queue capacity.
func NewRunner(queueSize int, logger *slog.Logger) *Runner {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Runner{
		queue:  make(chan task, queueSize),
		logger: logger,
	}
}

// Submit enqueues a job without blocking. It returns false when the queue is
// full and the job was dropped.
func (r *Runner) Submit(name string, fn func(context.Context) error) bool {
	select {
	case r.queue <- task{name: name, fn: fn}:
		return true
	default:
		r.logger.Warn("task queue full, job dropped", slog.String("task", name))
		return false
	}
}

// Run processes jobs until ctx is cancelled, then drains whatever is still
// queued. Always returns nil so it can sit in an errgroup without taking the
// process down.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return nil
		case t := <-r.queue:
			r.exec(ctx, t)
		}
	}
}

// drain executes remaining jobs with a fresh bounded context, since the run
// context is already cancelled.
func (r *Runner) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case t := <-r.queue:
			r.exec(ctx, t)
		default:
			return
		}
	}
}

func (r *Runner) exec(ctx context.Context, t task) {
	if err := t.fn(ctx); err != nil {
		r.logger.Warn("background task failed",
			slog.String("task", t.name),
			slog.String("error", err.Error()))
	}
}
