package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/synthmc/pkg/domain"
)

// LoggingHooks logs every stage and step transition.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.InfoContext(ctx, "stage_enter", "run_id", e.RunID, "stage", e.Label)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_leave", "run_id", e.RunID, "stage", e.Label)
		},
		OnStepCall: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_call", "run_id", e.RunID, "stage", e.Stage, "command", e.Command, "args", e.Args)
		},
		OnStepReturn: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "step_return",
					"run_id", e.RunID,
					"stage", e.Stage,
					"command", e.Command,
					"duration", e.Duration,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "step_return",
				"run_id", e.RunID,
				"stage", e.Stage,
				"command", e.Command,
				"duration", e.Duration,
				"warnings", len(e.Warnings),
			)
		},
	}
}
