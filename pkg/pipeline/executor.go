package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
)

// Executor walks the selected stages of a Pipeline through a Host.
// It is strictly sequential and stops at the first failing step.
type Executor struct {
	host   ports.Host
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	runID  string
	now    func() time.Time
}

// NewExecutor creates an Executor bound to host.
func NewExecutor(host ports.Host, opts ...ExecutorOption) *Executor {
	e := &Executor{
		host:   host,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes p and returns the report of what happened.
// The report is returned even when err is non-nil.
func (e *Executor) Run(ctx context.Context, p *Pipeline) (*domain.Report, error) {
	report := &domain.Report{
		ID:        e.runID,
		StartedAt: e.now().UTC(),
		Config:    p.Config.Clone(),
		Phase:     domain.PhaseConfigurationResolved,
		Steps:     []domain.StepRecord{},
	}
	if report.ID == "" {
		report.ID = NewRunID(report.StartedAt)
	}
	logger := e.logger.With("run_id", report.ID)
	logger.Info(fmt.Sprintf("Executing %s pass.", strings.ToUpper(p.Name)))

	if err := e.checkPrecondition(ctx, p.Config); err != nil {
		return e.abort(report, logger, err)
	}

	e.enter(report, logger, domain.PhasePipelineBuilt)
	e.enter(report, logger, domain.PhaseExecuting)
	stages, err := p.Select(p.Config.Range)
	if err != nil {
		return e.abort(report, logger, err)
	}
	for _, stage := range stages {
		report.Stages = append(report.Stages, stage.Label)
	}

	if prep, ok := e.host.(ports.Preparer); ok && len(stages) > 0 {
		fresh := stages[0].Label == p.Stages[0].Label
		if err := prep.Prepare(ctx, fresh); err != nil {
			return e.abort(report, logger, fmt.Errorf("failed to prepare host: %w", err))
		}
	}

	for i, stage := range stages {
		if err := ctx.Err(); err != nil {
			return e.abort(report, logger, err)
		}
		if err := e.runStage(ctx, report, logger, i, stage); err != nil {
			return e.abort(report, logger, err)
		}
	}

	e.enter(report, logger, domain.PhaseDone)
	report.Status = domain.StatusSucceeded
	report.FinishedAt = e.now().UTC()
	logger.Debug("run finished", "stages", len(stages), "steps", len(report.Steps))
	return report, nil
}

func (e *Executor) checkPrecondition(ctx context.Context, cfg domain.Config) error {
	ok, err := e.host.FullySelected(ctx, cfg.Selection)
	if err != nil {
		return &domain.PreconditionError{Reason: "cannot determine selection", Err: err}
	}
	if !ok {
		return &domain.PreconditionError{Reason: "this command only operates on fully selected designs"}
	}
	return nil
}

func (e *Executor) runStage(ctx context.Context, report *domain.Report, logger *slog.Logger, index int, stage domain.Stage) error {
	enter := &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStageEnter, RunID: report.ID},
		Label:     stage.Label,
		Index:     index,
	}
	if e.hooks.OnStageEnter != nil {
		e.hooks.OnStageEnter(ctx, enter)
	}
	logger.Debug("stage_enter", "stage", stage.Label)

	for _, step := range stage.Included() {
		if err := e.runStep(ctx, report, logger, stage.Label, step); err != nil {
			return err
		}
	}

	leave := &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStageLeave, RunID: report.ID},
		Label:     stage.Label,
		Index:     index,
	}
	if e.hooks.OnStageLeave != nil {
		e.hooks.OnStageLeave(ctx, leave)
	}
	logger.Debug("stage_leave", "stage", stage.Label)
	return nil
}

func (e *Executor) runStep(ctx context.Context, report *domain.Report, logger *slog.Logger, label string, step domain.Step) error {
	call := &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStepCall, RunID: report.ID},
		Stage:     label,
		Command:   step.Command,
		Args:      step.Args,
	}
	if e.hooks.OnStepCall != nil {
		e.hooks.OnStepCall(ctx, call)
	}
	logger.Debug("step_call", "stage", label, "command", step.Line())

	start := e.now()
	res, err := e.host.Invoke(ctx, step.Command, step.Args)
	elapsed := res.Duration
	if elapsed == 0 {
		elapsed = e.now().Sub(start)
	}

	for _, w := range res.Warnings {
		logger.Warn("step warning", "stage", label, "command", step.Command, "warning", w)
	}

	record := domain.StepRecord{
		Stage:          label,
		Command:        step.Command,
		Args:           step.Args,
		DurationMillis: elapsed.Milliseconds(),
		Warnings:       res.Warnings,
	}
	if err != nil {
		record.Error = err.Error()
	}
	report.Steps = append(report.Steps, record)

	ret := &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStepReturn, RunID: report.ID},
		Stage:     label,
		Command:   step.Command,
		Args:      step.Args,
		Duration:  elapsed,
		Warnings:  res.Warnings,
		Err:       err,
	}
	if e.hooks.OnStepReturn != nil {
		e.hooks.OnStepReturn(ctx, ret)
	}

	if err != nil {
		return &domain.StepFailure{Stage: label, Command: step.Command, Args: step.Args, Err: err}
	}
	return nil
}

func (e *Executor) enter(report *domain.Report, logger *slog.Logger, phase domain.RunPhase) {
	logger.Debug("phase", "from", report.Phase, "to", phase)
	report.Phase = phase
}

func (e *Executor) abort(report *domain.Report, logger *slog.Logger, err error) (*domain.Report, error) {
	report.AbortedFrom = report.Phase
	report.Phase = domain.PhaseAborted
	report.Status = domain.StatusAborted
	report.Error = err.Error()
	report.FinishedAt = e.now().UTC()
	logger.Error("run aborted", "error", err)
	return report, err
}

// NewRunID returns a sortable run identifier such as 20260102T150405Z-1a2b3c4d.
func NewRunID(t time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return t.UTC().Format("20060102T150405Z")
	}
	return fmt.Sprintf("%s-%s", t.UTC().Format("20060102T150405Z"), hex.EncodeToString(buf[:]))
}
