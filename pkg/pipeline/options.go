package pipeline

import (
	"log/slog"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
)

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
// Hooks passed in several calls are merged in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ExecutorOption {
	return func(e *Executor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) ExecutorOption {
	return func(e *Executor) {
		e.runID = id
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}
