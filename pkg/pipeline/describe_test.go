package pipeline_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/synthmc/internal/testutils"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_ShowsEveryStep(t *testing.T) {
	cfg := domain.NewConfig()
	cfg.NoShare = true
	cfg.Range = domain.Range{From: "fine", To: "fine"}
	p := scenarioTemplate(t).Build(cfg)

	var buf bytes.Buffer
	require.NoError(t, pipeline.Describe(&buf, p))

	want := "\n    begin:\n        stepA\n" +
		"\n    coarse:\n        stepB\n        stepC     (unless -noshare) [skipped]\n" +
		"\n    fine:\n        stepD\n" +
		"\n    check:\n        stepE\n\n"
	assert.Equal(t, want, buf.String())
}

func TestDescribe_NeverInvokesHost(t *testing.T) {
	host := testutils.NewRecordingHost()
	p := scenarioTemplate(t).Build(domain.NewConfig())

	var buf bytes.Buffer
	require.NoError(t, pipeline.Describe(&buf, p))
	require.NoError(t, pipeline.DescribeJSON(&buf, p))

	assert.Empty(t, host.Commands())
	assert.Zero(t, host.SelectionChecks)
}

func TestDescribeStep(t *testing.T) {
	tests := []struct {
		name string
		step domain.Step
		want string
	}{
		{"Plain", domain.Step{Command: "opt", Args: "-fast", Included: true}, "opt -fast"},
		{"Synopsis", domain.Step{Command: "hierarchy", Args: "-check", Synopsis: "-check [-top <top>]", Included: true}, "hierarchy -check [-top <top>]"},
		{"Conditional Included", domain.Step{Command: "flatten", Included: true, Annotation: "(if -flatten)"}, "flatten   (if -flatten)"},
		{"Long Conditional", domain.Step{Command: "fsm", Args: "-encfile enc.txt", Included: true, Annotation: "(unless -nofsm)"}, "fsm -encfile enc.txt (unless -nofsm)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pipeline.DescribeStep(tt.step))
		})
	}
}

func TestDescribeJSON(t *testing.T) {
	p := scenarioTemplate(t).Build(domain.NewConfig())

	var buf bytes.Buffer
	require.NoError(t, pipeline.DescribeJSON(&buf, p))

	var doc struct {
		Name   string         `json:"name"`
		Stages []domain.Stage `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "scenario", doc.Name)
	assert.Equal(t, p.Stages, doc.Stages)
}
