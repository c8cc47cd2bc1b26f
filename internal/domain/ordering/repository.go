package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PropertyRepository defines the persistence interface for properties
type PropertyRepository interface {
	shared.Repository[Property]
	FindByCode(ctx context.Context, code string) (*Property, error)
}

// RevenueCenterRepository defines the persistence interface for revenue centers
type RevenueCenterRepository interface {
	shared.Repository[RevenueCenter]
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]RevenueCenter, error)
}

// MenuItemRepository defines the persistence interface for menu items
type MenuItemRepository interface {
	shared.Repository[MenuItem]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]MenuItem, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]MenuItem, error)
	FindByPrintClass(ctx context.Context, printClassID uuid.UUID) ([]MenuItem, error)
}

// CheckRepository defines the persistence interface for guest checks
type CheckRepository interface {
	shared.Repository[Check]
	FindOpenByRvc(ctx context.Context, rvcID uuid.UUID) ([]Check, error)
	FindByNumber(ctx context.Context, propertyID uuid.UUID, businessDate string, checkNumber int) (*Check, error)
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*Check, error)
}
