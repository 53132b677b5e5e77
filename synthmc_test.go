package synthmc_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aretw0/synthmc"
	"github.com/aretw0/synthmc/internal/testutils"
	"github.com/aretw0/synthmc/pkg/adapters/memory"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Synthesize(t *testing.T) {
	host := testutils.NewRecordingHost()
	store := memory.NewStore()
	eng := synthmc.New(synthmc.WithHost(host), synthmc.WithReportStore(store))

	report, err := eng.Synthesize(context.Background(), []string{"-top", "cpu", "-run", "begin"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"read_verilog -lib techlib/cells_sim.v",
		"hierarchy -check -top cpu",
	}, host.Commands())

	saved, err := store.Load(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, saved.Status)
	assert.Equal(t, "cpu", saved.Config.Top)
}

func TestEngine_FailureIsStored(t *testing.T) {
	host := testutils.NewRecordingHost()
	host.FailOn["abc -liberty techlib/minecraft.lib"] = true
	store := memory.NewStore()
	eng := synthmc.New(synthmc.WithHost(host), synthmc.WithReportStore(store))

	report, err := eng.Synthesize(context.Background(), []string{"-run", "fine:check"})

	var failure *domain.StepFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "fine", failure.Stage)
	assert.NotContains(t, host.Commands(), "stat")

	saved, loadErr := store.Load(context.Background(), report.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, domain.StatusAborted, saved.Status)
}

func TestEngine_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		target error
	}{
		{"Missing Value", []string{"-top"}, domain.ErrConfiguration},
		{"Unknown Option", []string{"-bogus"}, domain.ErrConfiguration},
		{"Unknown Label", []string{"-run", "middle"}, domain.ErrRange},
		{"Reversed Range", []string{"-run", "check:begin"}, domain.ErrRange},
		{"Partial Selection", []string{"cpu/alu"}, domain.ErrPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := testutils.NewRecordingHost()
			host.Partial = len(tt.tokens) == 1 && tt.tokens[0] == "cpu/alu"

			_, err := synthmc.New(synthmc.WithHost(host)).Synthesize(context.Background(), tt.tokens)
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, host.Commands())
		})
	}
}

func TestEngine_InspectAndPlan(t *testing.T) {
	host := testutils.NewRecordingHost()
	eng := synthmc.New(synthmc.WithHost(host))

	all, err := eng.Inspect([]string{"-run", "fine"})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	planned, err := eng.Plan([]string{"-run", "coarse:fine"})
	require.NoError(t, err)
	require.Len(t, planned, 2)
	assert.Equal(t, "coarse", planned[0].Label)
	assert.Equal(t, "fine", planned[1].Label)

	_, err = eng.Plan([]string{"-run", "nope"})
	assert.ErrorIs(t, err, domain.ErrRange)

	assert.Empty(t, host.Commands())
	assert.Zero(t, host.SelectionChecks)
}

func TestEngine_Describe(t *testing.T) {
	host := testutils.NewRecordingHost()
	eng := synthmc.New(synthmc.WithHost(host))

	var buf bytes.Buffer
	require.NoError(t, eng.Describe(&buf, []string{"-noshare"}))

	assert.Contains(t, buf.String(), "share     (unless -noshare) [skipped]")
	assert.Empty(t, host.Commands())
}

func TestEngine_CustomTemplateAndHooks(t *testing.T) {
	b := dsl.New("tiny")
	b.Stage("only").Run("echo", "hi")

	var calls []string
	hooks := domain.LifecycleHooks{
		OnStepCall: func(_ context.Context, e *domain.StepEvent) { calls = append(calls, e.Command) },
	}

	host := testutils.NewRecordingHost()
	eng := synthmc.New(
		synthmc.WithTemplate(b.MustBuild()),
		synthmc.WithHost(host),
		synthmc.WithLifecycleHooks(hooks),
	)

	_, err := eng.Synthesize(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo hi"}, host.Commands())
	assert.Equal(t, []string{"echo"}, calls)
	assert.Equal(t, "tiny", eng.Template().Name())
}
