// Package async runs best-effort work that must not hold up or fail the
// request that triggered it.
package async

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Observer is told how each task ended. *metrics.Metrics satisfies it.
type Observer interface {
	RecordBackgroundTask(task, result string)
}

// Runner starts detached tasks. Every task gets its own timeout and a
// context that survives cancellation of the caller's request. Panics are
// recovered and logged.
type Runner struct {
	log     *slog.Logger
	timeout time.Duration
	obs     Observer
	wg      sync.WaitGroup
}

// NewRunner returns a Runner. obs may be nil.
func NewRunner(log *slog.Logger, timeout time.Duration, obs Observer) *Runner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Runner{log: log, timeout: timeout, obs: obs}
}

// Go runs fn in the background. ctx only contributes its values (trace
// span, request ID); its cancellation is ignored.
func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		err := r.run(ctx, fn)
		result := "ok"
		if err != nil {
			result = "error"
			r.log.Warn("background task failed", slog.String("task", name), slog.Any("error", err))
		}
		if r.obs != nil {
			r.obs.RecordBackgroundTask(name, result)
		}
	}()
}

func (r *Runner) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// Wait blocks until all started tasks finished or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
