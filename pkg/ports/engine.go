package ports

import (
	"context"

	"github.com/aretw0/synthmc/pkg/domain"
)

// Engine is the surface exposed to remote adapters (HTTP, MCP).
// Every method takes raw option tokens and builds a fresh pipeline.
type Engine interface {
	// Inspect builds the pipeline for tokens and returns every stage and step.
	Inspect(tokens []string) ([]domain.Stage, error)

	// Plan returns the stages a run with tokens would execute.
	Plan(tokens []string) ([]domain.Stage, error)

	// Synthesize executes the pipeline for tokens.
	Synthesize(ctx context.Context, tokens []string) (*domain.Report, error)
}
