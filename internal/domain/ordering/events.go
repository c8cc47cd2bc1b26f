package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/possuite/backend/internal/domain/shared"
)

// Event type constants
const (
	EventCheckOpened     = "ordering.check.opened"
	EventCheckItemsSent  = "ordering.check.items_sent"
	EventCheckItemVoided = "ordering.check.item_voided"
	EventCheckClosed     = "ordering.check.closed"
)

// CheckOpenedEvent is published when a new check is opened
type CheckOpenedEvent struct {
	shared.BaseDomainEvent
	RvcID       uuid.UUID `json:"rvc_id"`
	CheckNumber int       `json:"check_number"`
}

// NewCheckOpenedEvent creates a new check opened event
func NewCheckOpenedEvent(checkID, propertyID, rvcID uuid.UUID, checkNumber int) *CheckOpenedEvent {
	return &CheckOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCheckOpened, "Check", checkID, propertyID),
		RvcID:           rvcID,
		CheckNumber:     checkNumber,
	}
}

// CheckItemsSentEvent is published when items are sent to the kitchen.
// The print fanout listens for this event.
type CheckItemsSentEvent struct {
	shared.BaseDomainEvent
	RvcID   uuid.UUID   `json:"rvc_id"`
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// NewCheckItemsSentEvent creates a new items sent event
func NewCheckItemsSentEvent(checkID, propertyID, rvcID uuid.UUID, itemIDs []uuid.UUID) *CheckItemsSentEvent {
	return &CheckItemsSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCheckItemsSent, "Check", checkID, propertyID),
		RvcID:           rvcID,
		ItemIDs:         itemIDs,
	}
}

// CheckItemVoidedEvent is published when an item is voided. Kitchen
// displays listening for this event strike the item on any ticket.
type CheckItemVoidedEvent struct {
	shared.BaseDomainEvent
	CheckItemID uuid.UUID `json:"check_item_id"`
	Reason      string    `json:"reason"`
}

// NewCheckItemVoidedEvent creates a new item voided event
func NewCheckItemVoidedEvent(checkID, propertyID, itemID uuid.UUID, reason string) *CheckItemVoidedEvent {
	return &CheckItemVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCheckItemVoided, "Check", checkID, propertyID),
		CheckItemID:     itemID,
		Reason:          reason,
	}
}

// CheckClosedEvent is published when a check is closed
type CheckClosedEvent struct {
	shared.BaseDomainEvent
	Total decimal.Decimal `json:"total"`
}

// NewCheckClosedEvent creates a new check closed event
func NewCheckClosedEvent(checkID, propertyID uuid.UUID, total decimal.Decimal) *CheckClosedEvent {
	return &CheckClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCheckClosed, "Check", checkID, propertyID),
		Total:           total,
	}
}
