package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/synthmc/internal/presentation/tui"
	"github.com/aretw0/synthmc/pkg/domain"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	EngineOptions
	Tokens      []string
	Profile     string
	MetricsFile string
	JSON        bool
	Quiet       bool
	Stdout      io.Writer
}

// Execute runs synth_mc with the given options.
// The report is printed (or summarized) before the run error is returned.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	tokens, err := resolveTokens(opts.Profile, opts.Tokens)
	if err != nil {
		return err
	}

	var hooks []domain.LifecycleHooks
	if !opts.Quiet && !opts.JSON {
		hooks = append(hooks, tui.NewProgress(opts.Stdout).Hooks())
	}

	session, err := NewSession(opts.EngineOptions, scriptHeader(tokens), hooks...)
	if err != nil {
		return err
	}
	defer session.Close()

	report, runErr := session.Engine.Synthesize(ctx, tokens)
	session.Metrics.ObserveReport(report)

	if opts.MetricsFile != "" {
		if err := session.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			session.Logger.Warn("failed to write metrics", "path", opts.MetricsFile, "error", err)
		}
	}

	if opts.JSON {
		if report != nil {
			enc := json.NewEncoder(opts.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
		}
		return runErr
	}

	if !opts.Quiet {
		var sig os.Signal
		if sc, ok := ctx.(*SignalContext); ok {
			sig = sc.Signal()
		}
		logCompletion(opts.Stdout, report, runErr, sig)
	}
	return runErr
}
