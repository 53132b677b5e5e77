package pipeline

import "github.com/aretw0/synthmc/pkg/domain"

// Pipeline is a Template resolved against one Config.
type Pipeline struct {
	Name   string
	Config domain.Config
	Stages []domain.Stage
}

// Index returns the position of the stage labelled label.
func (p *Pipeline) Index(label string) (int, bool) {
	for i, stage := range p.Stages {
		if stage.Label == label {
			return i, true
		}
	}
	return -1, false
}

// Select resolves r into the contiguous, ordered stages it names.
// An empty pipeline with an empty range selects nothing and is not an error.
func (p *Pipeline) Select(r domain.Range) ([]domain.Stage, error) {
	from := 0
	if r.From != "" {
		idx, ok := p.Index(r.From)
		if !ok {
			return nil, &domain.UnknownLabelError{Label: r.From}
		}
		from = idx
	}

	to := len(p.Stages) - 1
	if r.To != "" {
		idx, ok := p.Index(r.To)
		if !ok {
			return nil, &domain.UnknownLabelError{Label: r.To}
		}
		to = idx
	}

	if from > to {
		if len(p.Stages) == 0 {
			return nil, nil
		}
		return nil, &domain.InvalidRangeError{From: r.From, To: r.To}
	}

	return append([]domain.Stage(nil), p.Stages[from:to+1]...), nil
}

// Plan returns the selected stages for the pipeline's own range.
func (p *Pipeline) Plan() ([]domain.Stage, error) {
	return p.Select(p.Config.Range)
}
