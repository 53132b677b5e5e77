package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/synthmc/pkg/domain"
)

const (
	labelIndent = "    "
	stepIndent  = "        "
	// annotationColumn is the width the command is padded to before its annotation.
	annotationColumn = 9
	skippedSuffix    = "[skipped]"
)

// Describe writes every stage and every step of p to w, ignoring the range.
// It never touches a Host.
func Describe(w io.Writer, p *Pipeline) error {
	var sb strings.Builder
	for _, stage := range p.Stages {
		fmt.Fprintf(&sb, "\n%s%s:\n", labelIndent, stage.Label)
		for _, step := range stage.Steps {
			sb.WriteString(stepIndent)
			sb.WriteString(DescribeStep(step))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// DescribeStep renders a single step line without indentation.
func DescribeStep(step domain.Step) string {
	line := step.HelpLine()
	if step.Conditional() {
		line = fmt.Sprintf("%-*s %s", annotationColumn, line, step.Annotation)
	}
	if !step.Included {
		line += " " + skippedSuffix
	}
	return line
}

type describeDoc struct {
	Name   string         `json:"name"`
	Config domain.Config  `json:"config"`
	Stages []domain.Stage `json:"stages"`
}

// DescribeJSON writes the full pipeline as indented JSON.
func DescribeJSON(w io.Writer, p *Pipeline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(describeDoc{Name: p.Name, Config: p.Config, Stages: p.Stages})
}
