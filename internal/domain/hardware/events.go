package hardware

import (
	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// Event type constants
const (
	EventPrinterOnline  = "hardware.printer.online"
	EventPrinterOffline = "hardware.printer.offline"
	EventDisplayOnline  = "hardware.display.online"
	EventDisplayOffline = "hardware.display.offline"
)

// PrinterOnlineEvent is published when a printer transitions to online
type PrinterOnlineEvent struct {
	shared.BaseDomainEvent
	PrinterName string `json:"printer_name"`
}

// NewPrinterOnlineEvent creates a new printer online event
func NewPrinterOnlineEvent(printerID, propertyID uuid.UUID, name string) *PrinterOnlineEvent {
	return &PrinterOnlineEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrinterOnline, "Printer", printerID, propertyID),
		PrinterName:     name,
	}
}

// PrinterOfflineEvent is published when a printer transitions to offline.
// Operator status views subscribe to surface unreachable devices.
type PrinterOfflineEvent struct {
	shared.BaseDomainEvent
	PrinterName string `json:"printer_name"`
}

// NewPrinterOfflineEvent creates a new printer offline event
func NewPrinterOfflineEvent(printerID, propertyID uuid.UUID, name string) *PrinterOfflineEvent {
	return &PrinterOfflineEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrinterOffline, "Printer", printerID, propertyID),
		PrinterName:     name,
	}
}

// DisplayOnlineEvent is published when a display's heartbeats resume
type DisplayOnlineEvent struct {
	shared.BaseDomainEvent
	DisplayName string `json:"display_name"`
}

// NewDisplayOnlineEvent creates a new display online event
func NewDisplayOnlineEvent(displayID, propertyID uuid.UUID, name string) *DisplayOnlineEvent {
	return &DisplayOnlineEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDisplayOnline, "KitchenDisplay", displayID, propertyID),
		DisplayName:     name,
	}
}

// DisplayOfflineEvent is published when a display's heartbeats lapse
type DisplayOfflineEvent struct {
	shared.BaseDomainEvent
	DisplayName string `json:"display_name"`
}

// NewDisplayOfflineEvent creates a new display offline event
func NewDisplayOfflineEvent(displayID, propertyID uuid.UUID, name string) *DisplayOfflineEvent {
	return &DisplayOfflineEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDisplayOffline, "KitchenDisplay", displayID, propertyID),
		DisplayName:     name,
	}
}
