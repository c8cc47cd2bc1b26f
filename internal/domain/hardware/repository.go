package hardware

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PrinterRepository defines the persistence interface for printers
type PrinterRepository interface {
	shared.Repository[Printer]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Printer, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Printer, error)
}

// KitchenDisplayRepository defines the persistence interface for displays
type KitchenDisplayRepository interface {
	shared.Repository[KitchenDisplay]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]KitchenDisplay, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]KitchenDisplay, error)
	// FindStaleOnline returns online displays whose last heartbeat is
	// older than the cutoff (or missing entirely).
	FindStaleOnline(ctx context.Context, seenBefore time.Time) ([]KitchenDisplay, error)
}

// OrderDeviceRepository defines the persistence interface for order devices
type OrderDeviceRepository interface {
	shared.Repository[OrderDevice]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]OrderDevice, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]OrderDevice, error)
}
