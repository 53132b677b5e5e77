package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/muesli/termenv"
)

// Progress prints one line per stage and step as a run advances.
type Progress struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewProgress writes to w. Colors are used only when w is a terminal.
func NewProgress(w io.Writer) *Progress {
	return &Progress{out: termenv.NewOutput(w)}
}

// Hooks returns lifecycle hooks that drive the progress output.
func (p *Progress) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) {
			p.printf("%s %s\n", p.color("▶", "#818cf8"), p.out.String(e.Label+":").Bold())
		},
		OnStepReturn: func(_ context.Context, e *domain.StepEvent) {
			line := domain.Step{Command: e.Command, Args: e.Args}.Line()
			elapsed := e.Duration.Round(time.Millisecond)
			if e.Err != nil {
				p.printf("    %s %s %s\n", p.color("✗", "#f87171"), line, p.out.String(e.Err.Error()).Faint())
				return
			}
			p.printf("    %s %s %s\n", p.color("✓", "#34d399"), line, p.out.String(elapsed.String()).Faint())
			for _, w := range e.Warnings {
				p.printf("      %s\n", p.color(w, "#fbbf24"))
			}
		},
	}
}

func (p *Progress) color(s, hex string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color(hex))
}

func (p *Progress) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}
