package report

import (
	"context"

	"github.com/google/uuid"
)

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	FindByReporterID(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	Save(ctx context.Context, report *Report) error
	// Update persists the report only if the stored version still equals Version(),
	// then bumps the version.
	Update(ctx context.Context, report *Report) error
}
