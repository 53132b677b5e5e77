package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every typed error below matches exactly one of them with errors.Is.
var (
	// ErrConfiguration is returned when an option is malformed or missing its value.
	ErrConfiguration = errors.New("configuration error")

	// ErrPrecondition is returned when the processing context is not fully in scope.
	ErrPrecondition = errors.New("precondition failed")

	// ErrRange is returned when a -run range cannot be resolved against the pipeline.
	ErrRange = errors.New("invalid run range")

	// ErrStepFailed is returned when an external command reports a fatal failure.
	ErrStepFailed = errors.New("step failed")

	// ErrTemplate is returned when a pipeline template violates its invariants.
	ErrTemplate = errors.New("invalid pipeline template")

	// ErrReportNotFound is returned when a report ID cannot be found in the store.
	ErrReportNotFound = errors.New("report not found")
)

// ConfigurationError reports a bad or missing option value.
type ConfigurationError struct {
	Option string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason
	if e.Option != "" {
		msg = fmt.Sprintf("%s: %s", e.Option, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
func (e *ConfigurationError) Unwrap() error        { return e.Err }

// PreconditionError reports a failed full-selection check.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }
func (e *PreconditionError) Unwrap() error        { return e.Err }

// UnknownLabelError reports a -run label that names no stage.
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown stage label %q", e.Label)
}

func (e *UnknownLabelError) Is(target error) bool { return target == ErrRange }

// InvalidRangeError reports a range whose start comes after its end.
type InvalidRangeError struct {
	From string
	To   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("stage %q comes after stage %q", e.From, e.To)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrRange }

// StepFailure reports the step whose external command failed.
type StepFailure struct {
	Stage   string
	Command string
	Args    string
	Err     error
}

func (e *StepFailure) Error() string {
	line := Step{Command: e.Command, Args: e.Args}.Line()
	return fmt.Sprintf("stage %s: %q failed: %v", e.Stage, line, e.Err)
}

func (e *StepFailure) Is(target error) bool { return target == ErrStepFailed }
func (e *StepFailure) Unwrap() error        { return e.Err }

// DuplicateLabelError reports two stages declared with the same label.
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate stage label %q", e.Label)
}

func (e *DuplicateLabelError) Is(target error) bool { return target == ErrTemplate }
