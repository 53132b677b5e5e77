package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/synthmc/internal/logging"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/options"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout progress output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// resolveTokens prepends the defaults of a profile file to the command-line tokens.
func resolveTokens(profile string, tokens []string) ([]string, error) {
	if profile == "" {
		return tokens, nil
	}
	p, err := options.LoadProfile(profile)
	if err != nil {
		return nil, err
	}
	return options.WithProfile(p, tokens), nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// lastStage returns the stage a report stopped in, or "" when nothing ran.
func lastStage(r *domain.Report) string {
	if r == nil || len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[len(r.Steps)-1].Stage
}

func logCompletion(w io.Writer, report *domain.Report, err error, sig os.Signal) {
	if report == nil {
		return
	}
	if err == nil {
		printSystemMessage(w, "Run %s finished: %d steps.", report.ID, len(report.Steps))
		return
	}

	stage := lastStage(report)
	switch {
	case isInterrupted(err) && sig == os.Interrupt:
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "Interrupted at '%s' stage.", stage)
	case isInterrupted(err) && sig != nil:
		fmt.Fprintf(w, "\n")
		printSystemMessage(w, "Terminated at '%s' stage.", stage)
	case stage != "":
		printSystemMessage(w, "Run %s aborted at '%s' stage.", report.ID, stage)
	default:
		printSystemMessage(w, "Run %s aborted.", report.ID)
	}
}
