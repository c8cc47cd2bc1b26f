package printing

import (
	"context"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PrintJobRepository defines the persistence interface for print jobs
type PrintJobRepository interface {
	shared.Repository[PrintJob]
	// FindDue returns up to limit pending jobs ordered by priority
	// ascending, then creation time ascending.
	FindDue(ctx context.Context, limit int) ([]PrintJob, error)
	FindByStatus(ctx context.Context, propertyID uuid.UUID, status JobStatus, filter shared.Filter) ([]PrintJob, error)
	FindByPrinter(ctx context.Context, printerID uuid.UUID, filter shared.Filter) ([]PrintJob, error)
	CountByStatus(ctx context.Context, propertyID uuid.UUID) (map[JobStatus]int64, error)
}
