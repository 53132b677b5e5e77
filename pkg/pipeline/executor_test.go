package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/synthmc/internal/testutils"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_SkipAndRange(t *testing.T) {
	// 1. skipC=true, run=coarse:fine
	cfg := domain.NewConfig()
	cfg.NoShare = true
	cfg.Range = domain.Range{From: "coarse", To: "fine"}

	host := testutils.NewRecordingHost()
	report, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(cfg))

	// 2. Only stepB and stepD run
	require.NoError(t, err)
	assert.Equal(t, []string{"stepB", "stepD"}, host.Commands())
	assert.Equal(t, []string{"stepB", "stepD"}, report.Commands())
	assert.Equal(t, []string{"coarse", "fine"}, report.Stages)
	assert.Equal(t, domain.PhaseDone, report.Phase)
	assert.Equal(t, domain.StatusSucceeded, report.Status)
}

func TestExecutor_FullRun(t *testing.T) {
	host := testutils.NewRecordingHost()
	_, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(domain.NewConfig()))

	require.NoError(t, err)
	assert.Equal(t, []string{"stepA", "stepB", "stepC", "stepD", "stepE"}, host.Commands())
}

func TestExecutor_FailFast(t *testing.T) {
	host := testutils.NewRecordingHost()
	host.FailOn["stepC"] = true

	report, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(domain.NewConfig()))

	require.Error(t, err)
	assert.Equal(t, []string{"stepA", "stepB", "stepC"}, host.Commands())

	var failure *domain.StepFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "coarse", failure.Stage)
	assert.Equal(t, "stepC", failure.Command)
	assert.ErrorIs(t, err, domain.ErrStepFailed)
	assert.ErrorIs(t, err, testutils.ErrInjected)

	require.NotNil(t, report)
	assert.Equal(t, domain.PhaseAborted, report.Phase)
	assert.Equal(t, domain.StatusAborted, report.Status)
	require.Len(t, report.Steps, 3)
	assert.NotEmpty(t, report.Steps[2].Error)
	assert.Equal(t, err.Error(), report.Error)
	assert.Equal(t, domain.PhaseExecuting, report.AbortedFrom)
}

func TestExecutor_UnknownLabelRunsNothing(t *testing.T) {
	cfg := domain.NewConfig()
	cfg.Range = domain.Range{From: "nope", To: "nope"}

	host := testutils.NewRecordingHost()
	_, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(cfg))

	var unknown *domain.UnknownLabelError
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, host.Commands())
	assert.Empty(t, host.Prepared)
}

func TestExecutor_Precondition(t *testing.T) {
	t.Run("Partial Selection", func(t *testing.T) {
		host := testutils.NewRecordingHost()
		host.Partial = true

		report, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(domain.NewConfig()))

		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.Empty(t, host.Commands())
		assert.Equal(t, domain.PhaseAborted, report.Phase)
		assert.Equal(t, domain.PhaseConfigurationResolved, report.AbortedFrom)
		assert.Empty(t, host.Prepared)
	})

	t.Run("Host Error", func(t *testing.T) {
		boom := errors.New("no design")
		host := testutils.NewRecordingHost()
		host.SelectionErr = boom

		_, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(domain.NewConfig()))

		assert.ErrorIs(t, err, domain.ErrPrecondition)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, host.Commands())
	})
}

func TestExecutor_CancelledBetweenStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host := testutils.NewRecordingHost()
	hooks := domain.LifecycleHooks{
		OnStageLeave: func(_ context.Context, e *domain.StageEvent) {
			if e.Label == "begin" {
				cancel()
			}
		},
	}

	_, err := pipeline.NewExecutor(host, pipeline.WithLifecycleHooks(hooks)).
		Run(ctx, scenarioTemplate(t).Build(domain.NewConfig()))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"stepA"}, host.Commands())
}

func TestExecutor_HooksAndWarnings(t *testing.T) {
	host := testutils.NewRecordingHost()
	host.Warn["stepB"] = []string{"Warning: something odd"}
	host.Delay = 5 * time.Millisecond

	var events []string
	hooks := domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) { events = append(events, "enter:"+e.Label) },
		OnStageLeave: func(_ context.Context, e *domain.StageEvent) { events = append(events, "leave:"+e.Label) },
		OnStepCall:   func(_ context.Context, e *domain.StepEvent) { events = append(events, "call:"+e.Command) },
		OnStepReturn: func(_ context.Context, e *domain.StepEvent) { events = append(events, "return:"+e.Command) },
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	cfg := domain.NewConfig()
	cfg.Range = domain.Range{From: "coarse", To: "coarse"}

	report, err := pipeline.NewExecutor(host,
		pipeline.WithLifecycleHooks(hooks),
		pipeline.WithLogger(logger),
		pipeline.WithRunID("run-1"),
	).Run(context.Background(), scenarioTemplate(t).Build(cfg))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"enter:coarse",
		"call:stepB", "return:stepB",
		"call:stepC", "return:stepC",
		"leave:coarse",
	}, events)

	assert.Equal(t, "run-1", report.ID)
	assert.Equal(t, []string{"Warning: something odd"}, report.Steps[0].Warnings)
	assert.Equal(t, int64(5), report.Steps[0].DurationMillis)
	assert.Contains(t, logs.String(), "Executing SCENARIO pass.")
	assert.Contains(t, logs.String(), "something odd")
}

func TestExecutor_MergedHooks(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{OnStepCall: func(context.Context, *domain.StepEvent) { order = append(order, "first") }}
	second := domain.LifecycleHooks{OnStepCall: func(context.Context, *domain.StepEvent) { order = append(order, "second") }}

	cfg := domain.NewConfig()
	cfg.Range = domain.Range{From: "begin", To: "begin"}

	_, err := pipeline.NewExecutor(testutils.NewRecordingHost(),
		pipeline.WithLifecycleHooks(first),
		pipeline.WithLifecycleHooks(second),
	).Run(context.Background(), scenarioTemplate(t).Build(cfg))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestNewRunID(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	id := pipeline.NewRunID(ts)
	assert.Regexp(t, `^20260102T150405Z-[0-9a-f]{8}$`, id)
}

func TestExecutor_PrepareHost(t *testing.T) {
	tests := []struct {
		name  string
		rng   domain.Range
		fresh bool
	}{
		{"Full Run", domain.Range{}, true},
		{"From First Stage", domain.Range{From: "begin", To: "coarse"}, true},
		{"Resume", domain.Range{From: "coarse"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.NewConfig()
			cfg.Range = tt.rng

			host := testutils.NewRecordingHost()
			_, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(cfg))

			require.NoError(t, err)
			assert.Equal(t, []bool{tt.fresh}, host.Prepared)
		})
	}

	t.Run("Failure Aborts Before First Step", func(t *testing.T) {
		host := testutils.NewRecordingHost()
		host.PrepareErr = errors.New("checkpoint is read-only")

		report, err := pipeline.NewExecutor(host).Run(context.Background(), scenarioTemplate(t).Build(domain.NewConfig()))

		assert.ErrorIs(t, err, host.PrepareErr)
		assert.Empty(t, host.Commands())
		assert.Equal(t, domain.StatusAborted, report.Status)
	})
}
