package synthmc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/synthmc/pkg/adapters/process"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/options"
	"github.com/aretw0/synthmc/pkg/pipeline"
	"github.com/aretw0/synthmc/pkg/ports"
	"github.com/aretw0/synthmc/pkg/synth"
)

// Version is set at build time with -ldflags "-X github.com/aretw0/synthmc.Version=...".
var Version = "dev"

// Engine is the high-level entry point for the synthmc library.
// It turns option tokens into a pipeline and hands it to the executor or the describer.
type Engine struct {
	template *pipeline.Template
	host     ports.Host
	store    ports.ReportStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

var _ ports.Engine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTemplate replaces the synth_mc template.
func WithTemplate(t *pipeline.Template) Option {
	return func(e *Engine) {
		e.template = t
	}
}

// WithHost sets the environment that executes steps.
func WithHost(h ports.Host) Option {
	return func(e *Engine) {
		e.host = h
	}
}

// WithReportStore persists a report after every run.
func WithReportStore(s ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
// Multiple calls are merged in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. Without WithHost it runs steps through a local yosys.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.template == nil {
		eng.template = synth.Template
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("pass", eng.template.Name())
	if eng.host == nil {
		eng.host = process.NewRunner(process.WithLogger(eng.logger))
	}
	return eng
}

// Template returns the template the engine builds pipelines from.
func (e *Engine) Template() *pipeline.Template {
	return e.template
}

// Store returns the configured report store, or nil.
func (e *Engine) Store() ports.ReportStore {
	return e.store
}

// Build resolves tokens and builds the pipeline.
func (e *Engine) Build(tokens []string) (*pipeline.Pipeline, error) {
	cfg, err := options.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return e.template.Build(cfg), nil
}

// Inspect returns every stage and step, ignoring the range.
func (e *Engine) Inspect(tokens []string) ([]domain.Stage, error) {
	p, err := e.Build(tokens)
	if err != nil {
		return nil, err
	}
	return p.Stages, nil
}

// Plan returns the stages a run would execute without executing them.
func (e *Engine) Plan(tokens []string) ([]domain.Stage, error) {
	p, err := e.Build(tokens)
	if err != nil {
		return nil, err
	}
	return p.Plan()
}

// Describe writes the describe-mode listing for tokens. It never touches the host.
func (e *Engine) Describe(w io.Writer, tokens []string) error {
	p, err := e.Build(tokens)
	if err != nil {
		return err
	}
	return pipeline.Describe(w, p)
}

// Synthesize runs the pipeline for tokens.
// When a report store is configured the report is saved whatever the outcome.
func (e *Engine) Synthesize(ctx context.Context, tokens []string) (*domain.Report, error) {
	p, err := e.Build(tokens)
	if err != nil {
		return nil, err
	}

	exec := pipeline.NewExecutor(e.host,
		pipeline.WithLogger(e.logger),
		pipeline.WithLifecycleHooks(e.hooks),
	)
	report, runErr := exec.Run(ctx, p)

	if e.store != nil && report != nil {
		if err := e.store.Save(ctx, report); err != nil {
			e.logger.Warn("failed to save report", "run_id", report.ID, "error", err)
			if runErr == nil {
				return report, fmt.Errorf("failed to save report %s: %w", report.ID, err)
			}
		}
	}
	return report, runErr
}
