package routing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/hardware"
	"github.com/possuite/backend/internal/domain/ordering"
	domainrouting "github.com/possuite/backend/internal/domain/routing"
)

// ResolverService answers "which physical devices should this menu
// item's kitchen content reach, when ordered in this revenue center".
// It never mutates configuration and never treats a configuration gap
// as an error: gaps resolve to an empty set with a reason code.
type ResolverService struct {
	menuItems ordering.MenuItemRepository
	rvcs      ordering.RevenueCenterRepository
	routes    domainrouting.PrintClassRouteRepository
	devices   hardware.OrderDeviceRepository
	printers  hardware.PrinterRepository
	displays  hardware.KitchenDisplayRepository
	logger    *zap.Logger
}

// NewResolverService creates a resolver
func NewResolverService(
	menuItems ordering.MenuItemRepository,
	rvcs ordering.RevenueCenterRepository,
	routes domainrouting.PrintClassRouteRepository,
	devices hardware.OrderDeviceRepository,
	printers hardware.PrinterRepository,
	displays hardware.KitchenDisplayRepository,
	logger *zap.Logger,
) *ResolverService {
	return &ResolverService{
		menuItems: menuItems,
		rvcs:      rvcs,
		routes:    routes,
		devices:   devices,
		printers:  printers,
		displays:  displays,
		logger:    logger,
	}
}

// ResolveDevices walks the three-tier override hierarchy for one menu
// item in one revenue center. Returned device lists follow each link's
// configured display order.
func (s *ResolverService) ResolveDevices(ctx context.Context, menuItemID, rvcID uuid.UUID) (domainrouting.Resolution, error) {
	item, err := s.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		return domainrouting.Resolution{}, err
	}
	if item.PrintClassID == nil {
		s.logger.Debug("menu item has no print class, nothing to route",
			zap.String("menu_item_id", menuItemID.String()))
		return domainrouting.EmptyResolution(domainrouting.ReasonNoPrintClass), nil
	}

	rvc, err := s.rvcs.FindByID(ctx, rvcID)
	if err != nil {
		return domainrouting.Resolution{}, err
	}

	rows, err := s.routes.FindByPrintClass(ctx, *item.PrintClassID)
	if err != nil {
		return domainrouting.Resolution{}, err
	}
	selected := domainrouting.SelectRoutes(rows, rvcID, rvc.PropertyID)
	if len(selected) == 0 {
		s.logger.Debug("no routing row at any tier",
			zap.String("print_class_id", item.PrintClassID.String()),
			zap.String("rvc_id", rvcID.String()))
		return domainrouting.EmptyResolution(domainrouting.ReasonNoRoute), nil
	}

	printerIDs, displayIDs, err := s.collectTargets(ctx, selected)
	if err != nil {
		return domainrouting.Resolution{}, err
	}

	activePrinters, err := s.activePrinters(ctx, printerIDs)
	if err != nil {
		return domainrouting.Resolution{}, err
	}
	activeDisplays, err := s.activeDisplays(ctx, displayIDs)
	if err != nil {
		return domainrouting.Resolution{}, err
	}

	resolution := domainrouting.Resolution{
		Printers: activePrinters,
		Displays: activeDisplays,
		Reason:   domainrouting.ReasonRouted,
	}
	if resolution.Empty() {
		resolution.Reason = domainrouting.ReasonNoActiveDevices
		s.logger.Debug("routing matched but every linked device is inactive",
			zap.String("print_class_id", item.PrintClassID.String()))
	}
	return resolution, nil
}

// collectTargets gathers the linked device IDs of every selected route's
// order device, in route order then link order, deduplicated.
func (s *ResolverService) collectTargets(ctx context.Context, selected []domainrouting.PrintClassRoute) ([]uuid.UUID, []uuid.UUID, error) {
	deviceIDs := make([]uuid.UUID, 0, len(selected))
	for _, route := range selected {
		deviceIDs = append(deviceIDs, route.OrderDeviceID)
	}
	orderDevices, err := s.devices.FindByIDs(ctx, deviceIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*hardware.OrderDevice, len(orderDevices))
	for idx := range orderDevices {
		byID[orderDevices[idx].ID] = &orderDevices[idx]
	}

	var printerIDs, displayIDs []uuid.UUID
	seenPrinter := make(map[uuid.UUID]bool)
	seenDisplay := make(map[uuid.UUID]bool)
	for _, route := range selected {
		device, ok := byID[route.OrderDeviceID]
		if !ok {
			continue
		}
		for _, id := range device.OrderedPrinterIDs() {
			if !seenPrinter[id] {
				seenPrinter[id] = true
				printerIDs = append(printerIDs, id)
			}
		}
		for _, id := range device.OrderedDisplayIDs() {
			if !seenDisplay[id] {
				seenDisplay[id] = true
				displayIDs = append(displayIDs, id)
			}
		}
	}
	return printerIDs, displayIDs, nil
}

func (s *ResolverService) activePrinters(ctx context.Context, ids []uuid.UUID) ([]hardware.Printer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	printers, err := s.printers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]hardware.Printer, len(printers))
	for _, p := range printers {
		byID[p.ID] = p
	}
	ordered := make([]hardware.Printer, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.Active {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *ResolverService) activeDisplays(ctx context.Context, ids []uuid.UUID) ([]hardware.KitchenDisplay, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	displays, err := s.displays.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]hardware.KitchenDisplay, len(displays))
	for _, d := range displays {
		byID[d.ID] = d
	}
	ordered := make([]hardware.KitchenDisplay, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok && d.Active {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}
