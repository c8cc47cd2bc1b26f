package routing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/ordering"
	domainrouting "github.com/possuite/backend/internal/domain/routing"
	"github.com/possuite/backend/internal/domain/shared"
)

// ConfigService owns the administrative routing surface: print classes,
// routing rows, and their assignment to menu items.
type ConfigService struct {
	printClasses domainrouting.PrintClassRepository
	routes       domainrouting.PrintClassRouteRepository
	menuItems    ordering.MenuItemRepository
	rvcs         ordering.RevenueCenterRepository
	logger       *zap.Logger
}

// NewConfigService creates the routing configuration service
func NewConfigService(
	printClasses domainrouting.PrintClassRepository,
	routes domainrouting.PrintClassRouteRepository,
	menuItems ordering.MenuItemRepository,
	rvcs ordering.RevenueCenterRepository,
	logger *zap.Logger,
) *ConfigService {
	return &ConfigService{
		printClasses: printClasses,
		routes:       routes,
		menuItems:    menuItems,
		rvcs:         rvcs,
		logger:       logger,
	}
}

// CreatePrintClass creates a routing tag within a property
func (s *ConfigService) CreatePrintClass(ctx context.Context, propertyID uuid.UUID, name, code string) (*domainrouting.PrintClass, error) {
	pc, err := domainrouting.NewPrintClass(propertyID, name, code)
	if err != nil {
		return nil, err
	}
	if err := s.printClasses.Save(ctx, pc); err != nil {
		return nil, err
	}
	s.logger.Info("print class created",
		zap.String("print_class_id", pc.ID.String()),
		zap.String("name", pc.Name))
	return pc, nil
}

// AssignPrintClass tags a menu item with a print class. Both must belong
// to the same property.
func (s *ConfigService) AssignPrintClass(ctx context.Context, menuItemID, printClassID uuid.UUID) error {
	item, err := s.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		return err
	}
	pc, err := s.printClasses.FindByID(ctx, printClassID)
	if err != nil {
		return err
	}
	if item.PropertyID != pc.PropertyID {
		return shared.ErrCrossProperty
	}
	item.AssignPrintClass(pc.ID)
	return s.menuItems.Save(ctx, item)
}

// ClearPrintClass removes the routing tag from a menu item
func (s *ConfigService) ClearPrintClass(ctx context.Context, menuItemID uuid.UUID) error {
	item, err := s.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		return err
	}
	item.ClearPrintClass()
	return s.menuItems.Save(ctx, item)
}

// CreateRvcRoute creates a routing row scoped to one revenue center
func (s *ConfigService) CreateRvcRoute(ctx context.Context, printClassID, orderDeviceID, rvcID uuid.UUID) (*domainrouting.PrintClassRoute, error) {
	rvc, err := s.rvcs.FindByID(ctx, rvcID)
	if err != nil {
		return nil, err
	}
	return s.createRoute(ctx, rvc.PropertyID, printClassID, orderDeviceID, domainrouting.RvcScoped(rvcID))
}

// CreatePropertyRoute creates a routing row scoped to a property
func (s *ConfigService) CreatePropertyRoute(ctx context.Context, propertyID, printClassID, orderDeviceID uuid.UUID) (*domainrouting.PrintClassRoute, error) {
	return s.createRoute(ctx, propertyID, printClassID, orderDeviceID, domainrouting.PropertyScoped(propertyID))
}

// CreateGlobalRoute creates the catch-all routing row
func (s *ConfigService) CreateGlobalRoute(ctx context.Context, propertyID, printClassID, orderDeviceID uuid.UUID) (*domainrouting.PrintClassRoute, error) {
	return s.createRoute(ctx, propertyID, printClassID, orderDeviceID, domainrouting.GlobalScope())
}

func (s *ConfigService) createRoute(ctx context.Context, propertyID, printClassID, orderDeviceID uuid.UUID, scope domainrouting.RouteScope) (*domainrouting.PrintClassRoute, error) {
	route, err := domainrouting.NewPrintClassRoute(propertyID, printClassID, orderDeviceID, scope)
	if err != nil {
		return nil, err
	}
	if err := s.routes.Save(ctx, route); err != nil {
		return nil, err
	}
	s.logger.Info("routing row created",
		zap.String("route_id", route.ID.String()),
		zap.String("scope", route.Scope.Kind.String()))
	return route, nil
}

// DeleteRoute removes a routing row; future resolutions fall through to
// the next tier.
func (s *ConfigService) DeleteRoute(ctx context.Context, routeID uuid.UUID) error {
	return s.routes.Delete(ctx, routeID)
}

// ListRoutes returns the routing rows of a property
func (s *ConfigService) ListRoutes(ctx context.Context, propertyID uuid.UUID) ([]domainrouting.PrintClassRoute, error) {
	return s.routes.FindByProperty(ctx, propertyID)
}

// ListPrintClasses returns the print classes of a property
func (s *ConfigService) ListPrintClasses(ctx context.Context, propertyID uuid.UUID) ([]domainrouting.PrintClass, error) {
	return s.printClasses.FindByProperty(ctx, propertyID)
}
