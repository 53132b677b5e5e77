package testutils

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/synthmc/pkg/ports"
)

// ErrInjected is the failure returned by RecordingHost for FailOn commands.
var ErrInjected = errors.New("injected failure")

// RecordingHost is an in-memory ports.Host that records every call.
type RecordingHost struct {
	mu sync.Mutex

	// Calls holds each invoked command line, in order.
	Calls []string
	// SelectionChecks counts FullySelected calls.
	SelectionChecks int

	// FailOn makes the listed command lines fail with ErrInjected.
	FailOn map[string]bool
	// Warn attaches warnings to the listed command lines.
	Warn map[string][]string
	// Partial makes FullySelected answer false.
	Partial bool
	// SelectionErr is returned by FullySelected when set.
	SelectionErr error
	// Delay is the duration reported for every step.
	Delay time.Duration

	// Prepared records the fresh flag of every Prepare call.
	Prepared []bool
	// PrepareErr is returned by Prepare when set.
	PrepareErr error
}

// NewRecordingHost returns a host that succeeds on every command.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{
		FailOn: make(map[string]bool),
		Warn:   make(map[string][]string),
	}
}

// Invoke implements ports.Host.
func (h *RecordingHost) Invoke(_ context.Context, command, args string) (ports.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := strings.TrimSpace(command + " " + args)
	h.Calls = append(h.Calls, line)

	res := ports.Result{Duration: h.Delay, Warnings: h.Warn[line]}
	if h.FailOn[line] {
		return res, ErrInjected
	}
	return res, nil
}

// FullySelected implements ports.Host.
func (h *RecordingHost) FullySelected(_ context.Context, _ []string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.SelectionChecks++
	if h.SelectionErr != nil {
		return false, h.SelectionErr
	}
	return !h.Partial, nil
}

// Prepare implements ports.Preparer.
func (h *RecordingHost) Prepare(_ context.Context, fresh bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Prepared = append(h.Prepared, fresh)
	return h.PrepareErr
}

// Commands returns a copy of the recorded call log.
func (h *RecordingHost) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.Calls...)
}
