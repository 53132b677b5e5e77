package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/options"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Markdown describes the options and the stages as a markdown document.
// Excluded steps are struck through and keep their annotation.
func Markdown(title string, opts []options.Option, stages []domain.Stage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)
	if len(opts) > 0 {
		sb.WriteString("\n## Options\n\n")
		for _, o := range opts {
			fmt.Fprintf(&sb, "- `%s`: %s\n", o.Usage(), strings.ReplaceAll(o.Help, "\n", " "))
		}
	}
	for _, stage := range stages {
		fmt.Fprintf(&sb, "\n## %s\n\n", stage.Label)
		for _, step := range stage.Steps {
			line := "`" + step.HelpLine() + "`"
			if !step.Included {
				line = "~~" + line + "~~"
			}
			if step.Conditional() {
				line += " _" + step.Annotation + "_"
			}
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}
	return sb.String()
}
