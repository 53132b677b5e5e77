package dsl

import (
	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/pipeline"
)

// Builder collects stages in declaration order.
type Builder struct {
	name   string
	stages []*StageBuilder
}

// New creates a new template builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Stage appends a stage labelled label.
// Declaring the same label twice is reported by Build.
func (b *Builder) Stage(label string) *StageBuilder {
	sb := &StageBuilder{spec: pipeline.StageSpec{Label: label}}
	b.stages = append(b.stages, sb)
	return sb
}

// Build validates the declared stages and returns the template.
func (b *Builder) Build() (*pipeline.Template, error) {
	specs := make([]pipeline.StageSpec, 0, len(b.stages))
	for _, sb := range b.stages {
		specs = append(specs, sb.Build())
	}
	return pipeline.NewTemplate(b.name, specs...)
}

// MustBuild is like Build but panics on an invalid template.
// It is meant for package-level template variables.
func (b *Builder) MustBuild() *pipeline.Template {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// StageBuilder provides a fluent API for configuring the steps of a stage.
// Modifiers such as Synopsis and When apply to the most recently added step.
type StageBuilder struct {
	spec pipeline.StageSpec
}

// Run adds a step with fixed arguments.
func (s *StageBuilder) Run(command, args string) *StageBuilder {
	step := pipeline.StepSpec{Command: command}
	if args != "" {
		step.Args = func(domain.Config) string { return args }
	}
	s.spec.Steps = append(s.spec.Steps, step)
	return s
}

// RunFunc adds a step whose arguments are computed from the Config.
func (s *StageBuilder) RunFunc(command string, args func(domain.Config) string) *StageBuilder {
	s.spec.Steps = append(s.spec.Steps, pipeline.StepSpec{Command: command, Args: args})
	return s
}

// RunIf adds a conditional step with fixed arguments.
func (s *StageBuilder) RunIf(when domain.Predicate, annotation, command, args string) *StageBuilder {
	return s.Run(command, args).When(when, annotation)
}

// When gates the last step on a predicate and sets its annotation.
func (s *StageBuilder) When(when domain.Predicate, annotation string) *StageBuilder {
	if last := s.last(); last != nil {
		last.When = when
		last.Annotation = annotation
	}
	return s
}

// Synopsis sets the argument text shown in describe mode for the last step.
func (s *StageBuilder) Synopsis(text string) *StageBuilder {
	if last := s.last(); last != nil {
		last.Synopsis = text
	}
	return s
}

// Build returns the underlying stage specification.
func (s *StageBuilder) Build() pipeline.StageSpec {
	return pipeline.StageSpec{Label: s.spec.Label, Steps: append([]pipeline.StepSpec(nil), s.spec.Steps...)}
}

func (s *StageBuilder) last() *pipeline.StepSpec {
	if len(s.spec.Steps) == 0 {
		return nil
	}
	return &s.spec.Steps[len(s.spec.Steps)-1]
}
