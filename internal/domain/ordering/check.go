package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/possuite/backend/internal/domain/shared"
)

// Check is a guest check: the set of items ordered at a table or counter
// position, together with payments taken against it. Checks are the
// source material for both customer receipts and kitchen output.
type Check struct {
	shared.PropertyAggregateRoot
	RvcID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckNumber   int       `gorm:"not null;index"`
	OrderType     OrderType `gorm:"not null;default:'dine_in'"`
	TableName     string
	GuestCount    int
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeName  string
	Status        CheckStatus     `gorm:"not null;default:'open'"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BusinessDate  string          `gorm:"not null;index"` // YYYY-MM-DD in the property timezone
	ClosedAt      *time.Time
	Items         []CheckItem `gorm:"foreignKey:CheckID"`
	Payments      []Payment   `gorm:"foreignKey:CheckID"`
}

// CheckItem is a single ordered line on a check
type CheckItem struct {
	shared.BaseEntity
	CheckID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	Name         string          `gorm:"not null"`
	KitchenName  string
	Quantity     int             `gorm:"not null;default:1"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Modifiers    []ItemModifier  `gorm:"foreignKey:CheckItemID"`
	SeatNumber   int
	CourseNumber int
	Voided       bool `gorm:"not null;default:false"`
	VoidReason   string
	SentAt       *time.Time // set when the item has been sent to the kitchen
}

// ItemModifier is a modifier attached to an ordered item ("no onions",
// "extra cheese"). Modifiers print indented beneath their item.
type ItemModifier struct {
	shared.BaseEntity
	CheckItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// Payment is a tender applied to a check
type Payment struct {
	shared.BaseEntity
	CheckID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tender    TenderKind      `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Reference string
}

// LineTotal returns the extended price of the item including modifiers
func (i *CheckItem) LineTotal() decimal.Decimal {
	total := i.UnitPrice
	for _, m := range i.Modifiers {
		total = total.Add(m.Price)
	}
	return total.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DisplayName returns the name to show on kitchen output
func (i *CheckItem) DisplayName() string {
	if i.KitchenName != "" {
		return i.KitchenName
	}
	return i.Name
}

// NewCheck opens a new guest check
func NewCheck(propertyID, rvcID, employeeID uuid.UUID, checkNumber int, employeeName, businessDate string) (*Check, error) {
	if checkNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_CHECK", "check number must be positive")
	}
	if businessDate == "" {
		return nil, shared.NewDomainError("INVALID_CHECK", "business date is required")
	}

	check := &Check{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		RvcID:                 rvcID,
		CheckNumber:           checkNumber,
		OrderType:             OrderDineIn,
		EmployeeID:            employeeID,
		EmployeeName:          employeeName,
		Status:                CheckStatusOpen,
		Subtotal:              decimal.Zero,
		DiscountTotal:         decimal.Zero,
		TaxTotal:              decimal.Zero,
		Total:                 decimal.Zero,
		BusinessDate:          businessDate,
	}
	check.AddDomainEvent(NewCheckOpenedEvent(check.ID, propertyID, rvcID, checkNumber))
	return check, nil
}

// SetOrderType records how the order reaches the guest. The type prints
// on receipts and carries onto kitchen tickets.
func (c *Check) SetOrderType(orderType OrderType) error {
	if !orderType.IsValid() {
		return shared.NewDomainError("INVALID_CHECK", "unknown order type: "+orderType.String())
	}
	c.OrderType = orderType
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// AddItem adds an ordered item to an open check
func (c *Check) AddItem(menuItem *MenuItem, quantity, seat int, modifiers []ItemModifier) (*CheckItem, error) {
	if c.Status != CheckStatusOpen {
		return nil, shared.NewDomainError("CHECK_NOT_OPEN", "items can only be added to an open check")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive")
	}

	item := CheckItem{
		BaseEntity:  shared.NewBaseEntity(),
		CheckID:     c.ID,
		MenuItemID:  menuItem.ID,
		Name:        menuItem.Name,
		KitchenName: menuItem.KitchenName,
		Quantity:    quantity,
		UnitPrice:   menuItem.Price,
		SeatNumber:  seat,
	}
	for _, m := range modifiers {
		m.CheckItemID = item.ID
		item.Modifiers = append(item.Modifiers, m)
	}
	c.Items = append(c.Items, item)
	c.recalculate()
	return &c.Items[len(c.Items)-1], nil
}

// VoidItem voids an item on the check. Voiding an already-sent item is
// allowed; the kitchen is notified through the fired event.
func (c *Check) VoidItem(itemID uuid.UUID, reason string) error {
	if c.Status.IsTerminal() {
		return shared.NewDomainError("CHECK_NOT_OPEN", "cannot void items on a closed check")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("VOID_REASON_REQUIRED", "a void reason is required")
	}
	for idx := range c.Items {
		if c.Items[idx].ID != itemID {
			continue
		}
		if c.Items[idx].Voided {
			return nil // already voided
		}
		c.Items[idx].Voided = true
		c.Items[idx].VoidReason = reason
		c.recalculate()
		c.AddDomainEvent(NewCheckItemVoidedEvent(c.ID, c.PropertyID, itemID, reason))
		return nil
	}
	return shared.ErrNotFound
}

// MarkItemsSent records that the given items were sent to the kitchen
func (c *Check) MarkItemsSent(itemIDs []uuid.UUID, at time.Time) []uuid.UUID {
	byID := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		byID[id] = true
	}
	var sent []uuid.UUID
	for idx := range c.Items {
		item := &c.Items[idx]
		if !byID[item.ID] || item.Voided || item.SentAt != nil {
			continue
		}
		t := at
		item.SentAt = &t
		sent = append(sent, item.ID)
	}
	if len(sent) > 0 {
		c.UpdatedAt = time.Now()
		c.IncrementVersion()
		c.AddDomainEvent(NewCheckItemsSentEvent(c.ID, c.PropertyID, c.RvcID, sent))
	}
	return sent
}

// UnsentItems returns the non-voided items that have not been sent yet
func (c *Check) UnsentItems() []CheckItem {
	var out []CheckItem
	for _, item := range c.Items {
		if !item.Voided && item.SentAt == nil {
			out = append(out, item)
		}
	}
	return out
}

// AddPayment applies a tender to an open check
func (c *Check) AddPayment(tender TenderKind, amount, tip decimal.Decimal, reference string) error {
	if c.Status != CheckStatusOpen {
		return shared.NewDomainError("CHECK_NOT_OPEN", "payments can only be applied to an open check")
	}
	if !tender.IsValid() {
		return shared.NewDomainError("INVALID_TENDER", "unknown tender kind: "+tender.String())
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "payment amount must be positive")
	}
	c.Payments = append(c.Payments, Payment{
		BaseEntity: shared.NewBaseEntity(),
		CheckID:    c.ID,
		Tender:     tender,
		Amount:     amount,
		TipAmount:  tip,
		Reference:  reference,
	})
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ApplyDiscount sets the check-level discount and refreshes the total.
// The discount cannot exceed the subtotal.
func (c *Check) ApplyDiscount(amount decimal.Decimal) error {
	if c.Status != CheckStatusOpen {
		return shared.NewDomainError("CHECK_NOT_OPEN", "discounts can only be applied to an open check")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "discount cannot be negative")
	}
	if amount.GreaterThan(c.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "discount cannot exceed the subtotal")
	}
	c.DiscountTotal = amount
	c.recalculate()
	return nil
}

// AmountPaid returns the sum of all payments excluding tips
func (c *Check) AmountPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Close closes the check. The check must be fully paid.
func (c *Check) Close() error {
	if c.Status != CheckStatusOpen {
		return shared.NewDomainError("CHECK_NOT_OPEN", "only open checks can be closed")
	}
	if c.AmountPaid().LessThan(c.Total) {
		return shared.NewDomainError("CHECK_UNPAID", "check is not fully paid")
	}
	now := time.Now()
	c.Status = CheckStatusClosed
	c.ClosedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()
	c.AddDomainEvent(NewCheckClosedEvent(c.ID, c.PropertyID, c.Total))
	return nil
}

// SetTax sets the computed tax total and refreshes the grand total
func (c *Check) SetTax(tax decimal.Decimal) {
	c.TaxTotal = tax
	c.Total = c.Subtotal.Sub(c.DiscountTotal).Add(c.TaxTotal)
	c.UpdatedAt = time.Now()
}

func (c *Check) recalculate() {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		if item.Voided {
			continue
		}
		subtotal = subtotal.Add(item.LineTotal())
	}
	c.Subtotal = subtotal
	// voids can shrink the subtotal below an earlier discount
	if c.DiscountTotal.GreaterThan(c.Subtotal) {
		c.DiscountTotal = c.Subtotal
	}
	c.Total = c.Subtotal.Sub(c.DiscountTotal).Add(c.TaxTotal)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// FindItem returns the check item with the given ID, or nil
func (c *Check) FindItem(itemID uuid.UUID) *CheckItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}
