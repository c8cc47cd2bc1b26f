package hardware

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// OrderDevice is a named routing target aggregating printers and kitchen
// displays. Routing rows point at order devices, never at physical
// devices directly, so one routing change can retarget a whole station.
type OrderDevice struct {
	shared.PropertyAggregateRoot
	Name         string        `gorm:"not null"`
	PrinterLinks []PrinterLink `gorm:"foreignKey:OrderDeviceID"`
	DisplayLinks []DisplayLink `gorm:"foreignKey:OrderDeviceID"`
}

// PrinterLink binds a printer to an order device at a display position
type PrinterLink struct {
	shared.BaseEntity
	OrderDeviceID uuid.UUID `gorm:"type:uuid;not null;index"`
	PrinterID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position      int       `gorm:"not null;default:0"`
}

// DisplayLink binds a kitchen display to an order device at a position
type DisplayLink struct {
	shared.BaseEntity
	OrderDeviceID uuid.UUID `gorm:"type:uuid;not null;index"`
	DisplayID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position      int       `gorm:"not null;default:0"`
}

// NewOrderDevice creates a new order device
func NewOrderDevice(propertyID uuid.UUID, name string) (*OrderDevice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_DEVICE", "order device name is required")
	}
	return &OrderDevice{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
	}, nil
}

// AttachPrinter links a printer to this order device. The printer must
// belong to the same property; cross-property links are rejected here so
// they can never reach routing resolution.
func (d *OrderDevice) AttachPrinter(printer *Printer, position int) error {
	if printer.PropertyID != d.PropertyID {
		return shared.ErrCrossProperty
	}
	for _, link := range d.PrinterLinks {
		if link.PrinterID == printer.ID {
			return shared.ErrAlreadyExists
		}
	}
	d.PrinterLinks = append(d.PrinterLinks, PrinterLink{
		BaseEntity:    shared.NewBaseEntity(),
		OrderDeviceID: d.ID,
		PrinterID:     printer.ID,
		Position:      position,
	})
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// AttachDisplay links a kitchen display to this order device, with the
// same same-property rule as AttachPrinter.
func (d *OrderDevice) AttachDisplay(display *KitchenDisplay, position int) error {
	if display.PropertyID != d.PropertyID {
		return shared.ErrCrossProperty
	}
	for _, link := range d.DisplayLinks {
		if link.DisplayID == display.ID {
			return shared.ErrAlreadyExists
		}
	}
	d.DisplayLinks = append(d.DisplayLinks, DisplayLink{
		BaseEntity:    shared.NewBaseEntity(),
		OrderDeviceID: d.ID,
		DisplayID:     display.ID,
		Position:      position,
	})
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// DetachPrinter removes a printer link; unknown printers are a no-op
func (d *OrderDevice) DetachPrinter(printerID uuid.UUID) {
	for idx, link := range d.PrinterLinks {
		if link.PrinterID == printerID {
			d.PrinterLinks = append(d.PrinterLinks[:idx], d.PrinterLinks[idx+1:]...)
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return
		}
	}
}

// DetachDisplay removes a display link; unknown displays are a no-op
func (d *OrderDevice) DetachDisplay(displayID uuid.UUID) {
	for idx, link := range d.DisplayLinks {
		if link.DisplayID == displayID {
			d.DisplayLinks = append(d.DisplayLinks[:idx], d.DisplayLinks[idx+1:]...)
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return
		}
	}
}

// OrderedPrinterIDs returns linked printer IDs in display position order
func (d *OrderDevice) OrderedPrinterIDs() []uuid.UUID {
	links := make([]PrinterLink, len(d.PrinterLinks))
	copy(links, d.PrinterLinks)
	sort.SliceStable(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.PrinterID)
	}
	return ids
}

// OrderedDisplayIDs returns linked display IDs in display position order
func (d *OrderDevice) OrderedDisplayIDs() []uuid.UUID {
	links := make([]DisplayLink, len(d.DisplayLinks))
	copy(links, d.DisplayLinks)
	sort.SliceStable(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DisplayID)
	}
	return ids
}
