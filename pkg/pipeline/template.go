package pipeline

import (
	"fmt"

	"github.com/aretw0/synthmc/pkg/domain"
)

// StepSpec is a template step. Its arguments and inclusion depend on the Config.
type StepSpec struct {
	Command string
	// Args resolves the argument string. Nil means no arguments.
	Args func(domain.Config) string
	// Synopsis replaces the resolved arguments in describe mode.
	Synopsis string
	// When gates the step. Nil means always.
	When domain.Predicate
	// Annotation explains the condition, e.g. "(unless -nofsm)".
	Annotation string
}

// StageSpec is a labelled group of template steps.
type StageSpec struct {
	Label string
	Steps []StepSpec
}

// Template is an immutable, validated pipeline declaration.
type Template struct {
	name   string
	stages []StageSpec
}

// NewTemplate validates the stages and returns a Template.
// Labels must be non-empty and unique; every step needs a command.
func NewTemplate(name string, stages ...StageSpec) (*Template, error) {
	seen := make(map[string]struct{}, len(stages))
	for _, stage := range stages {
		if stage.Label == "" {
			return nil, fmt.Errorf("%w: stage label is required", domain.ErrTemplate)
		}
		if _, ok := seen[stage.Label]; ok {
			return nil, &domain.DuplicateLabelError{Label: stage.Label}
		}
		seen[stage.Label] = struct{}{}

		for i, step := range stage.Steps {
			if step.Command == "" {
				return nil, fmt.Errorf("%w: stage %s step %d has no command", domain.ErrTemplate, stage.Label, i)
			}
		}
	}

	copied := make([]StageSpec, len(stages))
	for i, stage := range stages {
		copied[i] = StageSpec{Label: stage.Label, Steps: append([]StepSpec(nil), stage.Steps...)}
	}
	return &Template{name: name, stages: copied}, nil
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Labels returns the stage labels in declaration order.
func (t *Template) Labels() []string {
	labels := make([]string, len(t.stages))
	for i, stage := range t.stages {
		labels[i] = stage.Label
	}
	return labels
}

// Build resolves every step against cfg.
// Each predicate is evaluated exactly once. Building never fails.
func (t *Template) Build(cfg domain.Config) *Pipeline {
	cfg = cfg.Clone()
	stages := make([]domain.Stage, len(t.stages))
	for i, spec := range t.stages {
		steps := make([]domain.Step, len(spec.Steps))
		for j, s := range spec.Steps {
			steps[j] = resolveStep(s, cfg)
		}
		stages[i] = domain.Stage{Label: spec.Label, Steps: steps}
	}
	return &Pipeline{Name: t.name, Config: cfg, Stages: stages}
}

func resolveStep(spec StepSpec, cfg domain.Config) domain.Step {
	when := spec.When
	if when == nil {
		when = domain.Always
	}
	var args string
	if spec.Args != nil {
		args = spec.Args(cfg)
	}
	return domain.Step{
		Command:    spec.Command,
		Args:       args,
		Synopsis:   spec.Synopsis,
		Included:   when(cfg),
		Annotation: spec.Annotation,
	}
}
