package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/possuite/backend/internal/domain/shared"
)

// Property represents a physical restaurant location. All configuration
// and operational data in the system is owned by exactly one property.
type Property struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"not null"`
	Code     string `gorm:"not null;uniqueIndex"`
	Timezone string `gorm:"not null;default:'UTC'"`
	Address  string
	Currency string `gorm:"not null;default:'USD'"`
	// ReceiptHeader and ReceiptTrailer are newline-separated lines
	// printed at the top and bottom of customer receipts. Empty text
	// falls back to the property name/address and a thank-you line.
	ReceiptHeader  string
	ReceiptTrailer string
	Active         bool `gorm:"not null;default:true"`
}

// NewProperty creates a new property
func NewProperty(name, code, timezone, currency string) (*Property, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "property name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "property code is required")
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "unknown timezone: "+timezone)
	}
	if currency == "" {
		currency = "USD"
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Timezone:          timezone,
		Currency:          currency,
		Active:            true,
	}, nil
}

// Location resolves the property timezone. Falls back to UTC when the
// stored zone name can no longer be resolved on the host.
func (p *Property) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SetReceiptText configures the receipt header and trailer blocks
func (p *Property) SetReceiptText(header, trailer string) {
	p.ReceiptHeader = strings.TrimSpace(header)
	p.ReceiptTrailer = strings.TrimSpace(trailer)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ReceiptHeaderLines returns the configured header split into lines
func (p *Property) ReceiptHeaderLines() []string {
	return receiptLines(p.ReceiptHeader)
}

// ReceiptTrailerLines returns the configured trailer split into lines
func (p *Property) ReceiptTrailerLines() []string {
	return receiptLines(p.ReceiptTrailer)
}

func receiptLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Deactivate marks the property as inactive
func (p *Property) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RevenueCenter is an ordering area within a property (dining room, bar,
// patio, drive-thru). Routing overrides can be scoped to a revenue center.
type RevenueCenter struct {
	shared.PropertyAggregateRoot
	Name   string `gorm:"not null"`
	Code   string `gorm:"not null"`
	Active bool   `gorm:"not null;default:true"`
}

// NewRevenueCenter creates a new revenue center within a property
func NewRevenueCenter(propertyID uuid.UUID, name, code string) (*RevenueCenter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_RVC", "revenue center name is required")
	}
	return &RevenueCenter{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		Code:                  strings.TrimSpace(code),
		Active:                true,
	}, nil
}
