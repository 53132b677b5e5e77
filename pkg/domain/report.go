package domain

import "time"

// RunPhase tracks where a run is in its lifecycle.
type RunPhase string

const (
	PhaseConfigurationResolved RunPhase = "configuration_resolved"
	PhasePipelineBuilt         RunPhase = "pipeline_built"
	PhaseExecuting             RunPhase = "executing"
	PhaseDone                  RunPhase = "done"
	PhaseAborted               RunPhase = "aborted"
)

// RunStatus is the final outcome recorded on a Report.
type RunStatus string

const (
	StatusSucceeded RunStatus = "succeeded"
	StatusAborted   RunStatus = "aborted"
)

// StepRecord captures one invoked step.
type StepRecord struct {
	Stage          string   `json:"stage"`
	Command        string   `json:"command"`
	Args           string   `json:"args,omitempty"`
	DurationMillis int64    `json:"duration_ms"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Report is the evidence of one execution request.
// The engine writes reports but never reads them back.
type Report struct {
	ID         string       `json:"id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Config     Config       `json:"config"`
	Stages     []string     `json:"stages"`
	Steps      []StepRecord `json:"steps"`
	Phase      RunPhase     `json:"phase"`
	Status     RunStatus    `json:"status"`
	Error      string       `json:"error,omitempty"`

	// AbortedFrom is the phase the run was in when it aborted.
	AbortedFrom RunPhase `json:"aborted_from,omitempty"`
}

// Commands returns the command lines that were invoked, in order.
func (r *Report) Commands() []string {
	out := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		out = append(out, Step{Command: s.Command, Args: s.Args}.Line())
	}
	return out
}
