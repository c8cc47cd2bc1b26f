package printing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	approuting "github.com/possuite/backend/internal/application/routing"
	"github.com/possuite/backend/internal/domain/kds"
	"github.com/possuite/backend/internal/domain/ordering"
	domainprinting "github.com/possuite/backend/internal/domain/printing"
	"github.com/possuite/backend/internal/domain/shared"
	infraprinting "github.com/possuite/backend/internal/infrastructure/printing"
)

// OrderFanoutService reacts to order activity: when check items are
// sent it resolves their targets, composes one kitchen ticket per
// printer, and lands the items on the resolved kitchen displays. Ticket
// visibility is independent of print delivery success.
type OrderFanoutService struct {
	checks     ordering.CheckRepository
	menuItems  ordering.MenuItemRepository
	rvcs       ordering.RevenueCenterRepository
	properties ordering.PropertyRepository
	tickets    kds.KdsTicketRepository
	resolver   *approuting.ResolverService
	printSvc   *PrintService
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewOrderFanoutService creates the fanout service
func NewOrderFanoutService(
	checks ordering.CheckRepository,
	menuItems ordering.MenuItemRepository,
	rvcs ordering.RevenueCenterRepository,
	properties ordering.PropertyRepository,
	tickets kds.KdsTicketRepository,
	resolver *approuting.ResolverService,
	printSvc *PrintService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderFanoutService {
	return &OrderFanoutService{
		checks:     checks,
		menuItems:  menuItems,
		rvcs:       rvcs,
		properties: properties,
		tickets:    tickets,
		resolver:   resolver,
		printSvc:   printSvc,
		publisher:  publisher,
		logger:     logger,
	}
}

// SendCheckItems marks the items sent and fans them out to every
// resolved printer and display. Items whose routing resolves empty are
// still marked sent; the gap is logged, not surfaced as an error.
func (s *OrderFanoutService) SendCheckItems(ctx context.Context, checkID uuid.UUID, itemIDs []uuid.UUID, employeeID uuid.UUID) error {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return err
	}
	property, err := s.properties.FindByID(ctx, check.PropertyID)
	if err != nil {
		return err
	}

	now := time.Now()
	sentIDs := check.MarkItemsSent(itemIDs, now)
	if len(sentIDs) == 0 {
		return nil
	}
	checkEvents := check.GetDomainEvents()
	if err := s.checks.Save(ctx, check); err != nil {
		return err
	}
	s.publish(ctx, checkEvents)
	check.ClearDomainEvents()

	// resolve once per menu item, then group lines per physical target
	printerLines := make(map[uuid.UUID][]infraprinting.TicketLine)
	printerWidths := make(map[uuid.UUID]int)
	displayItems := make(map[uuid.UUID][]*ordering.CheckItem)
	for _, itemID := range sentIDs {
		item := check.FindItem(itemID)
		if item == nil {
			continue
		}
		resolution, err := s.resolver.ResolveDevices(ctx, item.MenuItemID, check.RvcID)
		if err != nil {
			return err
		}
		if resolution.Empty() {
			s.logger.Info("check item has no kitchen targets",
				zap.String("check_item_id", itemID.String()),
				zap.String("reason", string(resolution.Reason)))
			continue
		}
		line := ticketLine(item)
		for _, printer := range resolution.Printers {
			printerLines[printer.ID] = append(printerLines[printer.ID], line)
			printerWidths[printer.ID] = printer.CharWidth
		}
		for _, display := range resolution.Displays {
			displayItems[display.ID] = append(displayItems[display.ID], item)
		}
	}

	for printerID, lines := range printerLines {
		if err := s.enqueueKitchenTicket(ctx, check, property, printerID, printerWidths[printerID], lines, employeeID, now); err != nil {
			// a queue failure must not block the remaining targets
			s.logger.Error("enqueue kitchen ticket failed",
				zap.String("printer_id", printerID.String()),
				zap.Error(err))
		}
	}
	for displayID, items := range displayItems {
		if err := s.appendToTicket(ctx, check, displayID, items); err != nil {
			s.logger.Error("append to kds ticket failed",
				zap.String("display_id", displayID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// PreviewCheckItems lands not-yet-sent items on their resolved displays
// as draft tickets (dynamic order mode). Drafts stay out of the live
// view until the items are actually sent; displays configured without
// draft visibility are skipped. No print jobs are queued.
func (s *OrderFanoutService) PreviewCheckItems(ctx context.Context, checkID uuid.UUID, itemIDs []uuid.UUID) error {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return err
	}

	displayItems := make(map[uuid.UUID][]*ordering.CheckItem)
	for _, itemID := range itemIDs {
		item := check.FindItem(itemID)
		if item == nil || item.Voided || item.SentAt != nil {
			continue
		}
		resolution, err := s.resolver.ResolveDevices(ctx, item.MenuItemID, check.RvcID)
		if err != nil {
			return err
		}
		for _, display := range resolution.Displays {
			if !display.ShowDrafts {
				continue
			}
			displayItems[display.ID] = append(displayItems[display.ID], item)
		}
	}

	for displayID, items := range displayItems {
		if err := s.appendToDraft(ctx, check, displayID, items); err != nil {
			s.logger.Error("append to draft ticket failed",
				zap.String("display_id", displayID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// PrintReceipt composes the check's receipt and queues it on the given
// printer at high priority.
func (s *OrderFanoutService) PrintReceipt(ctx context.Context, checkID, printerID, employeeID uuid.UUID, openDrawer bool) (*domainprinting.PrintJob, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, check.PropertyID)
	if err != nil {
		return nil, err
	}
	rvc, err := s.rvcs.FindByID(ctx, check.RvcID)
	if err != nil {
		return nil, err
	}
	printer, err := s.printSvc.printers.FindByID(ctx, printerID)
	if err != nil {
		return nil, err
	}

	doc := infraprinting.BuildReceipt(infraprinting.ReceiptInput{
		Check:           check,
		RvcName:         rvc.Name,
		OrderType:       check.OrderType.Label(),
		PropertyName:    property.Name,
		PropertyAddress: property.Address,
		HeaderLines:     property.ReceiptHeaderLines(),
		TrailerLines:    property.ReceiptTrailerLines(),
		Discount:        check.DiscountTotal,
		Location:        property.Location(),
		PrintedAt:       time.Now(),
		OpenDrawer:      openDrawer,
	}, printer.CharWidth)

	return s.printSvc.Enqueue(ctx, EnqueueInput{
		PropertyID:   check.PropertyID,
		PrinterID:    printerID,
		Type:         domainprinting.JobTypeReceipt,
		Payload:      doc.Bytes(),
		PlainText:    doc.PlainText(),
		Priority:     domainprinting.PriorityHigh,
		CheckID:      &check.ID,
		EmployeeID:   &employeeID,
		BusinessDate: check.BusinessDate,
	})
}

func (s *OrderFanoutService) enqueueKitchenTicket(
	ctx context.Context,
	check *ordering.Check,
	property *ordering.Property,
	printerID uuid.UUID,
	charWidth int,
	lines []infraprinting.TicketLine,
	employeeID uuid.UUID,
	at time.Time,
) error {
	doc := infraprinting.BuildKitchenTicket(infraprinting.KitchenTicketInput{
		OrderNumber: check.CheckNumber,
		OrderType:   check.OrderType.Label(),
		Table:       check.TableName,
		Items:       lines,
		PrintedAt:   at,
		Location:    property.Location(),
	}, charWidth)

	_, err := s.printSvc.Enqueue(ctx, EnqueueInput{
		PropertyID:   check.PropertyID,
		PrinterID:    printerID,
		Type:         domainprinting.JobTypeKitchenTicket,
		Payload:      doc.Bytes(),
		PlainText:    doc.PlainText(),
		Priority:     domainprinting.PriorityHigh,
		CheckID:      &check.ID,
		EmployeeID:   &employeeID,
		BusinessDate: check.BusinessDate,
	})
	return err
}

// appendToTicket lands sent items on the display's open ticket for this
// check, creating one when none exists.
func (s *OrderFanoutService) appendToTicket(ctx context.Context, check *ordering.Check, displayID uuid.UUID, items []*ordering.CheckItem) error {
	ticket, err := s.tickets.FindOpenByCheckAndDisplay(ctx, check.ID, displayID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if ticket == nil {
		ticket, err = kds.NewKdsTicket(check.PropertyID, displayID, check.ID, check.CheckNumber, ticketOrderType(check), check.TableName, false)
		if err != nil {
			return err
		}
	} else if ticket.Status == kds.TicketStatusDraft {
		// Sending promotes a dynamic-order preview to live kitchen work
		if err := ticket.Activate(); err != nil {
			return err
		}
	}
	for _, item := range items {
		ticket.AddItem(item.ID, item.DisplayName(), item.Quantity, modifierText(item), item.SeatNumber)
	}
	events := ticket.GetDomainEvents()
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return err
	}
	s.publish(ctx, events)
	ticket.ClearDomainEvents()
	return nil
}

// appendToDraft lands preview items on the display's draft ticket. An
// already-active ticket means the kitchen is working this check; the
// preview is skipped and the items arrive on send instead.
func (s *OrderFanoutService) appendToDraft(ctx context.Context, check *ordering.Check, displayID uuid.UUID, items []*ordering.CheckItem) error {
	ticket, err := s.tickets.FindOpenByCheckAndDisplay(ctx, check.ID, displayID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if ticket != nil && ticket.Status != kds.TicketStatusDraft {
		return nil
	}
	if ticket == nil {
		ticket, err = kds.NewKdsTicket(check.PropertyID, displayID, check.ID, check.CheckNumber, ticketOrderType(check), check.TableName, true)
		if err != nil {
			return err
		}
	}
	for _, item := range items {
		ticket.AddItem(item.ID, item.DisplayName(), item.Quantity, modifierText(item), item.SeatNumber)
	}
	events := ticket.GetDomainEvents()
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return err
	}
	s.publish(ctx, events)
	ticket.ClearDomainEvents()
	return nil
}

func (s *OrderFanoutService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("publish events failed", zap.Error(err))
	}
}

func ticketLine(item *ordering.CheckItem) infraprinting.TicketLine {
	mods := make([]string, 0, len(item.Modifiers))
	for _, m := range item.Modifiers {
		mods = append(mods, m.Name)
	}
	return infraprinting.TicketLine{
		Quantity:  item.Quantity,
		Name:      item.DisplayName(),
		Modifiers: mods,
		Seat:      item.SeatNumber,
	}
}

// ticketOrderType maps the check's order type onto the kitchen ticket.
// The enums share values; anything unrecognized falls back to dine-in.
func ticketOrderType(check *ordering.Check) kds.OrderType {
	orderType := kds.OrderType(check.OrderType)
	if !orderType.IsValid() {
		return kds.OrderDineIn
	}
	return orderType
}

func modifierText(item *ordering.CheckItem) string {
	text := ""
	for idx, m := range item.Modifiers {
		if idx > 0 {
			text += "\n"
		}
		text += m.Name
	}
	return text
}
