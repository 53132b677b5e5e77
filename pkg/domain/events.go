package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
	EventStepCall   EventType = "step_call"
	EventStepReturn EventType = "step_return"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StageEvent represents entry or exit from a stage.
type StageEvent struct {
	EventBase
	Label string `json:"label"`
	Index int    `json:"index"`
}

// StepEvent represents one external invocation.
type StepEvent struct {
	EventBase
	Stage    string        `json:"stage"`
	Command  string        `json:"command"`
	Args     string        `json:"args,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for executor observability.
type LifecycleHooks struct {
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnStepCall   func(context.Context, *StepEvent)
	OnStepReturn func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStageEnter: chainStage(h.OnStageEnter, other.OnStageEnter),
		OnStageLeave: chainStage(h.OnStageLeave, other.OnStageLeave),
		OnStepCall:   chainStep(h.OnStepCall, other.OnStepCall),
		OnStepReturn: chainStep(h.OnStepReturn, other.OnStepReturn),
	}
}

func chainStage(a, b func(context.Context, *StageEvent)) func(context.Context, *StageEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StageEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
