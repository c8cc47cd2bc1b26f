package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/possuite/backend/internal/domain/shared"
)

// MenuItem is a sellable item. Its print class (if any) decides which
// kitchen printers and displays receive it when a check is sent.
type MenuItem struct {
	shared.PropertyAggregateRoot
	Name         string          `gorm:"not null"`
	KitchenName  string          // short name shown on kitchen tickets and displays
	PLU          string          `gorm:"index"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrintClassID *uuid.UUID      `gorm:"type:uuid;index"`
	Active       bool            `gorm:"not null;default:true"`
}

// NewMenuItem creates a new menu item
func NewMenuItem(propertyID uuid.UUID, name, plu string, price decimal.Decimal) (*MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "menu item name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MENU_ITEM", "menu item price cannot be negative")
	}
	return &MenuItem{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		PLU:                   strings.TrimSpace(plu),
		Price:                 price,
		Active:                true,
	}, nil
}

// AssignPrintClass links the item to a print class for routing
func (m *MenuItem) AssignPrintClass(printClassID uuid.UUID) {
	m.PrintClassID = &printClassID
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// ClearPrintClass removes the print class link. Items without a print
// class are never routed to kitchen devices.
func (m *MenuItem) ClearPrintClass() {
	m.PrintClassID = nil
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetKitchenName sets the abbreviated name used on tickets and displays
func (m *MenuItem) SetKitchenName(name string) {
	m.KitchenName = strings.TrimSpace(name)
	m.UpdatedAt = time.Now()
}

// TicketName returns the name to print on kitchen output, preferring
// the short kitchen name when one is configured.
func (m *MenuItem) TicketName() string {
	if m.KitchenName != "" {
		return m.KitchenName
	}
	return m.Name
}
