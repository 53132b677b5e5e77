package ports

import (
	"context"

	"github.com/aretw0/synthmc/pkg/domain"
)

// ReportStore defines the interface for persisting run reports.
// Reports are evidence for the caller; the engine only ever writes them.
type ReportStore interface {
	// Save persists the report under report.ID.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report by ID.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored reports.
	List(ctx context.Context) ([]string, error)
}
