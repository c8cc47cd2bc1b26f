package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainordering "github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

// CheckService owns the guest check lifecycle: opening, ordering items,
// taking payment, and closing. Sending items to the kitchen is the
// fanout service's job.
type CheckService struct {
	checks     domainordering.CheckRepository
	menuItems  domainordering.MenuItemRepository
	properties domainordering.PropertyRepository
	rvcs       domainordering.RevenueCenterRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewCheckService creates the check service
func NewCheckService(
	checks domainordering.CheckRepository,
	menuItems domainordering.MenuItemRepository,
	properties domainordering.PropertyRepository,
	rvcs domainordering.RevenueCenterRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CheckService {
	return &CheckService{
		checks:     checks,
		menuItems:  menuItems,
		properties: properties,
		rvcs:       rvcs,
		publisher:  publisher,
		logger:     logger,
	}
}

// OpenCheckInput describes a new guest check. An empty OrderType opens
// the check as dine-in.
type OpenCheckInput struct {
	PropertyID   uuid.UUID
	RvcID        uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	CheckNumber  int
	OrderType    domainordering.OrderType
	TableName    string
	GuestCount   int
}

// OpenCheck opens a guest check. The business date is derived from the
// property's timezone, not the server's.
func (s *CheckService) OpenCheck(ctx context.Context, in OpenCheckInput) (*domainordering.Check, error) {
	property, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	rvc, err := s.rvcs.FindByID(ctx, in.RvcID)
	if err != nil {
		return nil, err
	}
	if rvc.PropertyID != property.ID {
		return nil, shared.ErrCrossProperty
	}

	businessDate := time.Now().In(property.Location()).Format("2006-01-02")
	check, err := domainordering.NewCheck(property.ID, rvc.ID, in.EmployeeID, in.CheckNumber, in.EmployeeName, businessDate)
	if err != nil {
		return nil, err
	}
	check.TableName = in.TableName
	check.GuestCount = in.GuestCount
	if in.OrderType != "" {
		if err := check.SetOrderType(in.OrderType); err != nil {
			return nil, err
		}
	}

	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	s.logger.Info("check opened",
		zap.String("check_id", check.ID.String()),
		zap.Int("check_number", check.CheckNumber),
		zap.String("business_date", check.BusinessDate))
	return check, nil
}

// AddItem orders one menu item onto an open check
func (s *CheckService) AddItem(ctx context.Context, checkID, menuItemID uuid.UUID, quantity, seat int, modifierNames []string) (*domainordering.CheckItem, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	menuItem, err := s.menuItems.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	modifiers := make([]domainordering.ItemModifier, 0, len(modifierNames))
	for _, name := range modifierNames {
		modifiers = append(modifiers, domainordering.ItemModifier{
			BaseEntity: shared.NewBaseEntity(),
			Name:       name,
			Price:      decimal.Zero,
		})
	}

	item, err := check.AddItem(menuItem, quantity, seat, modifiers)
	if err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	return item, nil
}

// SetTax sets the tax amount on an open check and recalculates the total
func (s *CheckService) SetTax(ctx context.Context, checkID uuid.UUID, tax decimal.Decimal) (*domainordering.Check, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if check.Status != domainordering.CheckStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "tax can only be set on an open check")
	}
	check.SetTax(tax)
	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// SetReceiptText configures the receipt header and trailer blocks for
// a property
func (s *CheckService) SetReceiptText(ctx context.Context, propertyID uuid.UUID, header, trailer string) (*domainordering.Property, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	property.SetReceiptText(header, trailer)
	if err := s.properties.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// ApplyDiscount sets the check-level discount on an open check
func (s *CheckService) ApplyDiscount(ctx context.Context, checkID uuid.UUID, amount decimal.Decimal) (*domainordering.Check, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if err := check.ApplyDiscount(amount); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// AddPayment applies a tender to an open check
func (s *CheckService) AddPayment(ctx context.Context, checkID uuid.UUID, tender domainordering.TenderKind, amount, tip decimal.Decimal, reference string) (*domainordering.Check, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if err := check.AddPayment(tender, amount, tip, reference); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// CloseCheck closes a fully paid check
func (s *CheckService) CloseCheck(ctx context.Context, checkID uuid.UUID) (*domainordering.Check, error) {
	check, err := s.checks.FindByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if err := check.Close(); err != nil {
		return nil, err
	}
	if err := s.saveAndPublish(ctx, check); err != nil {
		return nil, err
	}
	s.logger.Info("check closed",
		zap.String("check_id", check.ID.String()),
		zap.String("total", check.Total.StringFixed(2)))
	return check, nil
}

// GetCheck returns one check with its items and payments
func (s *CheckService) GetCheck(ctx context.Context, checkID uuid.UUID) (*domainordering.Check, error) {
	return s.checks.FindByID(ctx, checkID)
}

// ListOpenChecks returns the open checks in one revenue center
func (s *CheckService) ListOpenChecks(ctx context.Context, rvcID uuid.UUID) ([]domainordering.Check, error) {
	return s.checks.FindOpenByRvc(ctx, rvcID)
}

func (s *CheckService) saveAndPublish(ctx context.Context, check *domainordering.Check) error {
	events := check.GetDomainEvents()
	if err := s.checks.Save(ctx, check); err != nil {
		return err
	}
	if s.publisher != nil && len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("publish check events failed", zap.Error(err))
		}
	}
	check.ClearDomainEvents()
	return nil
}
