package kds

import (
	"time"

	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// KdsTicket aggregates the check items sent to one kitchen display in
// one send. Tickets are never physically deleted; bumped tickets stay
// around for reporting and can be recalled back onto the screen.
type KdsTicket struct {
	shared.PropertyAggregateRoot
	DisplayID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckID            uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckNumber        int       `gorm:"not null"`
	OrderType          OrderType `gorm:"not null;default:'dine_in'"`
	TableName          string
	Status             TicketStatus `gorm:"not null;default:'active';index"`
	IsPreview          bool         `gorm:"not null;default:false"`
	IsRecalled         bool         `gorm:"not null;default:false"`
	Paid               bool         `gorm:"not null;default:false"`
	BumpedAt           *time.Time
	BumpedByEmployeeID *uuid.UUID    `gorm:"type:uuid"`
	Items              []KdsTicketItem `gorm:"foreignKey:TicketID"`
}

// KdsTicketItem links a ticket to a check item with its own kitchen
// status and readiness flag. Voided items are kept for audit.
type KdsTicketItem struct {
	shared.BaseEntity
	TicketID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CheckItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"not null"`
	Quantity    int        `gorm:"not null;default:1"`
	Modifiers   string     // newline-separated modifier names for display
	SeatNumber  int
	Status      ItemStatus `gorm:"not null;default:'pending'"`
	IsReady     bool       `gorm:"not null;default:false"`
	ReadyAt     *time.Time
}

// NewKdsTicket creates a kitchen ticket. Draft tickets hold preview
// content (unsent items in dynamic order mode); active tickets are live
// kitchen work.
func NewKdsTicket(propertyID, displayID, checkID uuid.UUID, checkNumber int, orderType OrderType, tableName string, draft bool) (*KdsTicket, error) {
	if checkNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_KDS_TICKET", "check number must be positive")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_KDS_TICKET", "unknown order type: "+orderType.String())
	}

	status := TicketStatusActive
	if draft {
		status = TicketStatusDraft
	}
	ticket := &KdsTicket{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		DisplayID:             displayID,
		CheckID:               checkID,
		CheckNumber:           checkNumber,
		OrderType:             orderType,
		TableName:             tableName,
		Status:                status,
		IsPreview:             draft,
	}
	if !draft {
		ticket.AddDomainEvent(NewTicketCreatedEvent(ticket.ID, propertyID, displayID, checkNumber))
	}
	return ticket, nil
}

// AddItem adds a check item to the ticket. Membership is keyed by
// check item ID; adding an item already present is a no-op.
func (t *KdsTicket) AddItem(checkItemID uuid.UUID, name string, quantity int, modifiers string, seat int) *KdsTicketItem {
	for idx := range t.Items {
		if t.Items[idx].CheckItemID == checkItemID {
			return &t.Items[idx]
		}
	}
	item := KdsTicketItem{
		BaseEntity:  shared.NewBaseEntity(),
		TicketID:    t.ID,
		CheckItemID: checkItemID,
		Name:        name,
		Quantity:    quantity,
		Modifiers:   modifiers,
		SeatNumber:  seat,
		Status:      ItemStatusPending,
	}
	t.Items = append(t.Items, item)
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketItemAddedEvent(t.ID, t.PropertyID, t.DisplayID, checkItemID))
	return &t.Items[len(t.Items)-1]
}

// RemoveItem removes a check item from the ticket; absent items are a
// no-op.
func (t *KdsTicket) RemoveItem(checkItemID uuid.UUID) {
	for idx := range t.Items {
		if t.Items[idx].CheckItemID == checkItemID {
			t.Items = append(t.Items[:idx], t.Items[idx+1:]...)
			t.UpdatedAt = time.Now()
			return
		}
	}
}

// Activate promotes a draft (preview) ticket to live kitchen work
func (t *KdsTicket) Activate() error {
	if t.Status == TicketStatusActive {
		return nil
	}
	if t.Status != TicketStatusDraft {
		return shared.NewDomainError("INVALID_TICKET_STATE", "only draft tickets can be activated")
	}
	t.Status = TicketStatusActive
	t.IsPreview = false
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketCreatedEvent(t.ID, t.PropertyID, t.DisplayID, t.CheckNumber))
	return nil
}

// MarkReady flags one ticket item ready for the expo station
func (t *KdsTicket) MarkReady(ticketItemID uuid.UUID, at time.Time) error {
	item := t.findItem(ticketItemID)
	if item == nil {
		return shared.ErrNotFound
	}
	item.IsReady = true
	readyAt := at
	item.ReadyAt = &readyAt
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketItemReadyEvent(t.ID, t.PropertyID, t.DisplayID, item.CheckItemID, true))
	return nil
}

// UnmarkReady clears the ready flag on one ticket item
func (t *KdsTicket) UnmarkReady(ticketItemID uuid.UUID) error {
	item := t.findItem(ticketItemID)
	if item == nil {
		return shared.ErrNotFound
	}
	item.IsReady = false
	item.ReadyAt = nil
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketItemReadyEvent(t.ID, t.PropertyID, t.DisplayID, item.CheckItemID, false))
	return nil
}

// VoidItem marks every item on this ticket referencing the check item
// as voided. Idempotent; voided items stay on the ticket for audit.
// Returns the number of items newly voided.
func (t *KdsTicket) VoidItem(checkItemID uuid.UUID) int {
	voided := 0
	for idx := range t.Items {
		item := &t.Items[idx]
		if item.CheckItemID != checkItemID || item.Status == ItemStatusVoided {
			continue
		}
		item.Status = ItemStatusVoided
		item.IsReady = false
		item.ReadyAt = nil
		voided++
	}
	if voided > 0 {
		t.UpdatedAt = time.Now()
		t.AddDomainEvent(NewTicketItemVoidedEvent(t.ID, t.PropertyID, t.DisplayID, checkItemID))
	}
	return voided
}

// Bump completes the ticket and cascades every item to bumped. Bumping
// an already-bumped ticket succeeds as a no-op: two stations racing to
// bump the same ticket both win.
func (t *KdsTicket) Bump(employeeID uuid.UUID, at time.Time) error {
	if t.Status == TicketStatusBumped {
		return nil
	}
	if t.Status == TicketStatusDraft {
		return shared.NewDomainError("INVALID_TICKET_STATE", "draft tickets cannot be bumped")
	}
	t.Status = TicketStatusBumped
	bumpedAt := at
	t.BumpedAt = &bumpedAt
	emp := employeeID
	t.BumpedByEmployeeID = &emp
	for idx := range t.Items {
		if t.Items[idx].Status != ItemStatusVoided {
			t.Items[idx].Status = ItemStatusBumped
		}
	}
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketBumpedEvent(t.ID, t.PropertyID, t.DisplayID, employeeID))
	return nil
}

// Recall reverses a bump: the ticket returns to the screen flagged as
// recalled, and every item is reset to pending with readiness cleared so
// the station re-confirms the work. Voided items stay voided; a recall
// never resurrects cancelled work.
func (t *KdsTicket) Recall() error {
	if t.Status != TicketStatusBumped {
		return shared.NewDomainError("INVALID_TICKET_STATE", "only bumped tickets can be recalled")
	}
	t.Status = TicketStatusActive
	t.IsRecalled = true
	t.BumpedAt = nil
	t.BumpedByEmployeeID = nil
	for idx := range t.Items {
		if t.Items[idx].Status == ItemStatusVoided {
			continue
		}
		t.Items[idx].Status = ItemStatusPending
		t.Items[idx].IsReady = false
		t.Items[idx].ReadyAt = nil
	}
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketRecalledEvent(t.ID, t.PropertyID, t.DisplayID))
	return nil
}

// MarkPaid flags the ticket's check as paid for display purposes.
// Idempotent.
func (t *KdsTicket) MarkPaid() {
	if t.Paid {
		return
	}
	t.Paid = true
	t.UpdatedAt = time.Now()
	t.AddDomainEvent(NewTicketPaidEvent(t.ID, t.PropertyID, t.DisplayID, t.CheckID))
}

// IsLive reports whether the ticket belongs on the live kitchen view
func (t *KdsTicket) IsLive() bool {
	return t.Status == TicketStatusActive
}

// FindItemByCheckItem returns the ticket item for a check item, or nil
func (t *KdsTicket) FindItemByCheckItem(checkItemID uuid.UUID) *KdsTicketItem {
	for idx := range t.Items {
		if t.Items[idx].CheckItemID == checkItemID {
			return &t.Items[idx]
		}
	}
	return nil
}

func (t *KdsTicket) findItem(ticketItemID uuid.UUID) *KdsTicketItem {
	for idx := range t.Items {
		if t.Items[idx].ID == ticketItemID {
			return &t.Items[idx]
		}
	}
	return nil
}
