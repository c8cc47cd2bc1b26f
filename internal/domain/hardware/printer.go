package hardware

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

const (
	// DefaultNetworkPort is the raw-socket port thermal printers listen on
	DefaultNetworkPort = 9100
	// DefaultCharWidth is the character width of an 80mm thermal printer
	DefaultCharWidth = 42
	// DefaultMaxAttempts bounds delivery retries per job
	DefaultMaxAttempts = 3
)

// Printer is a physical receipt or kitchen printer. Configuration fields
// are edited by administrators; the liveness fields (IsOnline, LastSeenAt)
// are mutated only by the delivery path.
type Printer struct {
	shared.PropertyAggregateRoot
	Name        string         `gorm:"not null"`
	Connection  ConnectionKind `gorm:"not null"`
	Address     string         // network: IP or hostname
	Port        int            // network: TCP port, default 9100
	DevicePath  string         // serial/usb: local port name, e.g. /dev/ttyUSB0
	CharWidth   int            `gorm:"not null;default:42"`
	AutoCut     bool           `gorm:"not null;default:true"`
	PrintLogo   bool           `gorm:"not null;default:false"`
	MaxAttempts int            `gorm:"not null;default:3"`
	Active      bool           `gorm:"not null;default:true"`
	IsOnline    bool           `gorm:"not null;default:false"`
	LastSeenAt  *time.Time
}

// NewNetworkPrinter creates a printer reached over raw TCP
func NewNetworkPrinter(propertyID uuid.UUID, name, address string, port int) (*Printer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRINTER", "printer name is required")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.NewDomainError("INVALID_PRINTER", "network printers require an address")
	}
	if port <= 0 {
		port = DefaultNetworkPort
	}
	return &Printer{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		Connection:            ConnectionNetwork,
		Address:               address,
		Port:                  port,
		CharWidth:             DefaultCharWidth,
		AutoCut:               true,
		MaxAttempts:           DefaultMaxAttempts,
		Active:                true,
	}, nil
}

// NewLocalPrinter creates a serial- or USB-attached printer served by the
// local print agent.
func NewLocalPrinter(propertyID uuid.UUID, name string, connection ConnectionKind, devicePath string) (*Printer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRINTER", "printer name is required")
	}
	if !connection.IsLocal() {
		return nil, shared.NewDomainError("INVALID_PRINTER", "local printers must be serial or usb attached")
	}
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return nil, shared.NewDomainError("INVALID_PRINTER", "local printers require a device path")
	}
	return &Printer{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		Connection:            connection,
		DevicePath:            devicePath,
		CharWidth:             DefaultCharWidth,
		AutoCut:               true,
		MaxAttempts:           DefaultMaxAttempts,
		Active:                true,
	}, nil
}

// MarkOnline records a successful delivery contact with the device
func (p *Printer) MarkOnline(at time.Time) {
	wasOffline := !p.IsOnline
	p.IsOnline = true
	t := at
	p.LastSeenAt = &t
	p.UpdatedAt = time.Now()
	if wasOffline {
		p.AddDomainEvent(NewPrinterOnlineEvent(p.ID, p.PropertyID, p.Name))
	}
}

// MarkOffline records a failed delivery contact. LastSeenAt is preserved
// so operators can see when the device was last reachable.
func (p *Printer) MarkOffline() {
	wasOnline := p.IsOnline
	p.IsOnline = false
	p.UpdatedAt = time.Now()
	if wasOnline {
		p.AddDomainEvent(NewPrinterOfflineEvent(p.ID, p.PropertyID, p.Name))
	}
}

// SetCharWidth overrides the rendering width
func (p *Printer) SetCharWidth(width int) error {
	if width < 20 || width > 64 {
		return shared.NewDomainError("INVALID_PRINTER", "character width must be between 20 and 64")
	}
	p.CharWidth = width
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetMaxAttempts overrides the delivery retry bound
func (p *Printer) SetMaxAttempts(n int) error {
	if n < 1 || n > 10 {
		return shared.NewDomainError("INVALID_PRINTER", "max attempts must be between 1 and 10")
	}
	p.MaxAttempts = n
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate removes the printer from routing without deleting it
func (p *Printer) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate returns the printer to routing
func (p *Printer) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
