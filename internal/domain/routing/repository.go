package routing

import (
	"context"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PrintClassRepository defines the persistence interface for print classes
type PrintClassRepository interface {
	shared.Repository[PrintClass]
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]PrintClass, error)
}

// PrintClassRouteRepository defines the persistence interface for routes
type PrintClassRouteRepository interface {
	shared.Repository[PrintClassRoute]
	FindByPrintClass(ctx context.Context, printClassID uuid.UUID) ([]PrintClassRoute, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]PrintClassRoute, error)
}
