package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/synthmc"
	"github.com/aretw0/synthmc/internal/presentation/graph"
	"github.com/aretw0/synthmc/internal/presentation/tui"
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/options"
	"github.com/aretw0/synthmc/pkg/pipeline"
	"github.com/aretw0/synthmc/pkg/synth"
	"golang.org/x/term"
)

// Describe output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMermaid  = "mermaid"
	FormatMarkdown = "markdown"
)

// DescribeOptions configures the describe command.
type DescribeOptions struct {
	Tokens  []string
	Profile string
	Format  string
	Stdout  io.Writer
}

// Describe prints the pipeline for the given tokens. Nothing is executed.
func Describe(opts DescribeOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	tokens, err := resolveTokens(opts.Profile, opts.Tokens)
	if err != nil {
		return err
	}

	engine := synthmc.New()
	p, err := engine.Build(tokens)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "", FormatText:
		return writeHelp(opts.Stdout, p)
	case FormatJSON:
		return pipeline.DescribeJSON(opts.Stdout, p)
	case FormatMermaid:
		// A bad -run range only leaves the overlay empty; describe has no range errors.
		selected, _ := p.Plan()
		_, err = fmt.Fprint(opts.Stdout, graph.GenerateMermaid(p.Stages, &graph.GraphOverlay{SelectedStages: labels(selected)}))
		return err
	case FormatMarkdown:
		return writeMarkdown(opts.Stdout, tui.Markdown(p.Name, options.All(), p.Stages))
	default:
		return fmt.Errorf("unknown format %q (supported: text, json, mermaid, markdown)", opts.Format)
	}
}

// writeHelp writes the option reference followed by every stage.
func writeHelp(w io.Writer, p *pipeline.Pipeline) error {
	if err := options.WriteHelp(w, p.Name, synth.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", synth.ScriptIntro); err != nil {
		return err
	}
	return pipeline.Describe(w, p)
}

// writeMarkdown renders through glamour when w is a terminal.
func writeMarkdown(w io.Writer, md string) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		md = out
	}
	_, err := io.WriteString(w, md)
	return err
}

func labels(stages []domain.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, s.Label)
	}
	return out
}

// Plan prints the command lines a run would execute, stage by stage.
// Excluded steps are printed as comments.
func Plan(opts DescribeOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	tokens, err := resolveTokens(opts.Profile, opts.Tokens)
	if err != nil {
		return err
	}
	stages, err := synthmc.New().Plan(tokens)
	if err != nil {
		return err
	}

	for _, stage := range stages {
		fmt.Fprintf(opts.Stdout, "%s:\n", stage.Label)
		for _, step := range stage.Steps {
			if step.Included {
				fmt.Fprintf(opts.Stdout, "    %s\n", step.Line())
			} else {
				fmt.Fprintf(opts.Stdout, "    # %s\n", pipeline.DescribeStep(step))
			}
		}
	}
	return nil
}
