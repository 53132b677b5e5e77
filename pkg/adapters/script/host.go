// Package script provides a host that writes the steps of a run to a yosys script
// instead of executing them.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
)

// Host appends one line per invoked step to w.
// The result can be replayed with `yosys -s file.ys`.
type Host struct {
	mu    sync.Mutex
	w     io.Writer
	lines int
}

var _ ports.Host = (*Host)(nil)

// NewHost creates a script host writing to w.
// When header is not empty it is written first as a comment.
func NewHost(w io.Writer, header string) (*Host, error) {
	h := &Host{w: w}
	if header != "" {
		for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
			if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
				return nil, fmt.Errorf("failed to write script header: %w", err)
			}
		}
	}
	return h, nil
}

// Invoke writes the command line. It never fails unless the writer does.
func (h *Host) Invoke(_ context.Context, command, args string) (ports.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := domain.Step{Command: command, Args: args}.Line()
	if _, err := fmt.Fprintln(h.w, line); err != nil {
		return ports.Result{}, fmt.Errorf("failed to write script: %w", err)
	}
	h.lines++
	return ports.Result{}, nil
}

// FullySelected accepts only an empty or wildcard selection: a script has no design to narrow.
func (h *Host) FullySelected(_ context.Context, selection []string) (bool, error) {
	return domain.FullSelection(selection), nil
}

// Lines returns how many steps were written.
func (h *Host) Lines() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lines
}
