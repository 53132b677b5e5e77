package ports

import (
	"context"
	"time"
)

// Result is what a Host returns for a successful invocation.
// Warnings are informational and never abort a run.
type Result struct {
	Output   string
	Warnings []string
	Duration time.Duration
}

// Host is the environment that owns the processing context all steps operate on.
type Host interface {
	// Invoke runs the named command with its argument string and blocks until it returns.
	// A non-nil error is a fatal failure of the step.
	Invoke(ctx context.Context, command, args string) (Result, error)

	// FullySelected reports whether the processing context is entirely in scope
	// given the selection arguments left over from option parsing.
	FullySelected(ctx context.Context, selection []string) (bool, error)
}

// Preparer is implemented by hosts that keep state between runs.
// Prepare is called once per run, after the precondition and the range are resolved
// and before the first step. fresh is true when the run starts at the first stage.
type Preparer interface {
	Prepare(ctx context.Context, fresh bool) error
}
