package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthmc/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	// SelectedStages are the labels the range selected.
	SelectedStages []string
	// FailedStage marks the stage that aborted a run.
	FailedStage string
}

// GenerateMermaid produces a Mermaid flowchart with one subgraph per stage.
// Steps are chained in execution order; excluded steps keep their place
// with a dashed border so the flow reads the same as describe output.
func GenerateMermaid(stages []domain.Stage, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var prevStage string
	for si, stage := range stages {
		stageID := "stage_" + sanitizeMermaidID(stage.Label)
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", stageID, escape(stage.Label))

		var excluded []string
		prev := ""
		for i, step := range stage.Steps {
			id := fmt.Sprintf("s%d_%d", si, i)
			label := escape(step.HelpLine())
			if step.Conditional() {
				label += " <br/> " + escape(step.Annotation)
			}
			fmt.Fprintf(&sb, "        %s[\"%s\"]\n", id, label)
			if !step.Included {
				excluded = append(excluded, id)
			}
			if prev != "" {
				arrow := "-->"
				if !step.Included {
					arrow = "-.->"
				}
				fmt.Fprintf(&sb, "        %s %s %s\n", prev, arrow, id)
			}
			prev = id
		}
		sb.WriteString("    end\n")

		for _, id := range excluded {
			fmt.Fprintf(&sb, "    class %s skipped;\n", id)
		}
		if prevStage != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", prevStage, stageID)
		}
		prevStage = stageID
	}

	sb.WriteString("    classDef skipped stroke-dasharray: 5 5,color:#888;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, label := range overlay.SelectedStages {
			id := "stage_" + sanitizeMermaidID(label)
			if !seen[id] && label != "" {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s selected;\n", id)
			}
		}
		if overlay.FailedStage != "" {
			fmt.Fprintf(&sb, "    class stage_%s failed;\n", sanitizeMermaidID(overlay.FailedStage))
		}
	}

	return sb.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<top>", "&lt;top&gt;")
	return strings.ReplaceAll(s, "|", "&#124;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
