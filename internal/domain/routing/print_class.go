package routing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// PrintClass is a routing tag attached to menu items ("Hot Food",
// "Cold Food", "Drinks"). It expresses where an item's kitchen content
// should go, independent of any particular revenue center.
type PrintClass struct {
	shared.PropertyAggregateRoot
	Name   string `gorm:"not null"`
	Code   string `gorm:"not null"`
	Active bool   `gorm:"not null;default:true"`
}

// NewPrintClass creates a new print class
func NewPrintClass(propertyID uuid.UUID, name, code string) (*PrintClass, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRINT_CLASS", "print class name is required")
	}
	return &PrintClass{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		Code:                  strings.TrimSpace(code),
		Active:                true,
	}, nil
}

// Rename updates the print class name
func (p *PrintClass) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRINT_CLASS", "print class name is required")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate removes the print class from routing without deleting it
func (p *PrintClass) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
