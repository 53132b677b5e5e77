package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/synthmc/internal/presentation/graph"
	"github.com/aretw0/synthmc/pkg/domain"
)

func sampleStages() []domain.Stage {
	return []domain.Stage{
		{Label: "begin", Steps: []domain.Step{
			{Command: "hierarchy", Args: "-check", Synopsis: "-check [-top <top> | -auto-top]", Included: true},
		}},
		{Label: "coarse", Steps: []domain.Step{
			{Command: "proc", Included: true},
			{Command: "flatten", Included: false, Annotation: "(if -flatten)"},
			{Command: "opt_expr", Included: true},
		}},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		absent   []string
	}{
		{
			name: "Stages As Subgraphs",
			contains: []string{
				"graph TD\n",
				"subgraph stage_begin[\"begin\"]",
				"subgraph stage_coarse[\"coarse\"]",
				"stage_begin --> stage_coarse",
			},
			absent: []string{"Overlay Styles"},
		},
		{
			name: "Synopsis Is Escaped",
			contains: []string{
				"s0_0[\"hierarchy -check [-top &lt;top&gt; &#124; -auto-top]\"]",
			},
		},
		{
			name: "Excluded Step Is Dashed",
			contains: []string{
				"s1_1[\"flatten <br/> (if -flatten)\"]",
				"s1_0 -.-> s1_1",
				"s1_1 --> s1_2",
				"class s1_1 skipped;",
				"classDef skipped",
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				SelectedStages: []string{"coarse", "coarse"},
				FailedStage:    "coarse",
			},
			contains: []string{
				"classDef selected",
				"class stage_coarse selected;",
				"class stage_coarse failed;",
			},
			absent: []string{"class stage_begin selected;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sampleStages(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %q\nGot:\n%s", unwanted, got)
				}
			}
			if n := strings.Count(got, "class stage_coarse selected;"); n > 1 {
				t.Errorf("selected class applied %d times", n)
			}
		})
	}
}
