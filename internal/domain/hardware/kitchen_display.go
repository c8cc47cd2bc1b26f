package hardware

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

const (
	// DefaultWarningAfterSec turns a ticket yellow on the display
	DefaultWarningAfterSec = 300
	// DefaultCriticalAfterSec turns a ticket red on the display
	DefaultCriticalAfterSec = 600
)

// KitchenDisplay is a kitchen display station. Display policy fields are
// configuration; liveness comes from the station's heartbeat.
type KitchenDisplay struct {
	shared.PropertyAggregateRoot
	Name             string      `gorm:"not null"`
	Station          StationKind `gorm:"not null;default:'hot'"`
	ShowDrafts       bool        `gorm:"not null;default:false"` // dynamic order mode: show unsent items as previews
	WarningAfterSec  int         `gorm:"not null;default:300"`
	CriticalAfterSec int         `gorm:"not null;default:600"`
	Active           bool        `gorm:"not null;default:true"`
	IsOnline         bool        `gorm:"not null;default:false"`
	LastSeenAt       *time.Time
}

// NewKitchenDisplay creates a new kitchen display station
func NewKitchenDisplay(propertyID uuid.UUID, name string, station StationKind) (*KitchenDisplay, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_KDS_DEVICE", "display name is required")
	}
	if !station.IsValid() {
		return nil, shared.NewDomainError("INVALID_KDS_DEVICE", "unknown station kind: "+station.String())
	}
	return &KitchenDisplay{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Name:                  name,
		Station:               station,
		WarningAfterSec:       DefaultWarningAfterSec,
		CriticalAfterSec:      DefaultCriticalAfterSec,
		Active:                true,
	}, nil
}

// SetAlertThresholds configures ticket age alerting for this station
func (d *KitchenDisplay) SetAlertThresholds(warningSec, criticalSec int) error {
	if warningSec <= 0 || criticalSec <= warningSec {
		return shared.NewDomainError("INVALID_KDS_DEVICE", "critical threshold must exceed a positive warning threshold")
	}
	d.WarningAfterSec = warningSec
	d.CriticalAfterSec = criticalSec
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// SetShowDrafts toggles dynamic order mode: whether unsent check items
// appear on this display as draft previews.
func (d *KitchenDisplay) SetShowDrafts(enabled bool) {
	d.ShowDrafts = enabled
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Heartbeat records a liveness ping from the station client
func (d *KitchenDisplay) Heartbeat(at time.Time) {
	wasOffline := !d.IsOnline
	d.IsOnline = true
	t := at
	d.LastSeenAt = &t
	d.UpdatedAt = time.Now()
	if wasOffline {
		d.AddDomainEvent(NewDisplayOnlineEvent(d.ID, d.PropertyID, d.Name))
	}
}

// MarkOffline flags the station unreachable; called when heartbeats
// lapse. LastSeenAt is preserved so operators can see when the station
// last pinged.
func (d *KitchenDisplay) MarkOffline() {
	wasOnline := d.IsOnline
	d.IsOnline = false
	d.UpdatedAt = time.Now()
	if wasOnline {
		d.AddDomainEvent(NewDisplayOfflineEvent(d.ID, d.PropertyID, d.Name))
	}
}

// Deactivate removes the display from routing without deleting it
func (d *KitchenDisplay) Deactivate() {
	d.Active = false
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Activate returns the display to routing
func (d *KitchenDisplay) Activate() {
	d.Active = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
