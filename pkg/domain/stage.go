package domain

import "strings"

// Step is one external invocation as resolved against a Config.
// Excluded steps are kept so that describe mode can explain them.
type Step struct {
	Command    string `json:"command"`
	Args       string `json:"args,omitempty"`
	Synopsis   string `json:"synopsis,omitempty"`
	Included   bool   `json:"included"`
	Annotation string `json:"annotation,omitempty"`
}

// Line returns the command line the host receives.
func (s Step) Line() string {
	return strings.TrimSpace(s.Command + " " + s.Args)
}

// HelpLine returns the command line shown in describe mode.
func (s Step) HelpLine() string {
	if s.Synopsis != "" {
		return strings.TrimSpace(s.Command + " " + s.Synopsis)
	}
	return s.Line()
}

// Conditional reports whether the step carries a trigger annotation.
func (s Step) Conditional() bool {
	return s.Annotation != ""
}

// Stage is a labelled, ordered sequence of steps.
type Stage struct {
	Label string `json:"label"`
	Steps []Step `json:"steps"`
}

// Included returns the steps that execute, in declaration order.
func (s Stage) Included() []Step {
	out := make([]Step, 0, len(s.Steps))
	for _, step := range s.Steps {
		if step.Included {
			out = append(out, step)
		}
	}
	return out
}
