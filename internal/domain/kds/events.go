package kds

import (
	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// Event type constants
const (
	EventTicketCreated    = "kds.ticket.created"
	EventTicketItemAdded  = "kds.ticket.item_added"
	EventTicketItemReady  = "kds.ticket.item_ready"
	EventTicketItemVoided = "kds.ticket.item_voided"
	EventTicketBumped     = "kds.ticket.bumped"
	EventTicketRecalled   = "kds.ticket.recalled"
	EventTicketPaid       = "kds.ticket.paid"
)

// TicketCreatedEvent is published when a live ticket appears on a display
type TicketCreatedEvent struct {
	shared.BaseDomainEvent
	DisplayID   uuid.UUID `json:"display_id"`
	CheckNumber int       `json:"check_number"`
}

// NewTicketCreatedEvent creates a new ticket created event
func NewTicketCreatedEvent(ticketID, propertyID, displayID uuid.UUID, checkNumber int) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketCreated, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		CheckNumber:     checkNumber,
	}
}

// TicketItemAddedEvent is published when an item lands on a ticket
type TicketItemAddedEvent struct {
	shared.BaseDomainEvent
	DisplayID   uuid.UUID `json:"display_id"`
	CheckItemID uuid.UUID `json:"check_item_id"`
}

// NewTicketItemAddedEvent creates a new item added event
func NewTicketItemAddedEvent(ticketID, propertyID, displayID, checkItemID uuid.UUID) *TicketItemAddedEvent {
	return &TicketItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketItemAdded, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		CheckItemID:     checkItemID,
	}
}

// TicketItemReadyEvent is published when an item's readiness toggles
type TicketItemReadyEvent struct {
	shared.BaseDomainEvent
	DisplayID   uuid.UUID `json:"display_id"`
	CheckItemID uuid.UUID `json:"check_item_id"`
	IsReady     bool      `json:"is_ready"`
}

// NewTicketItemReadyEvent creates a new item readiness event
func NewTicketItemReadyEvent(ticketID, propertyID, displayID, checkItemID uuid.UUID, ready bool) *TicketItemReadyEvent {
	return &TicketItemReadyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketItemReady, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		CheckItemID:     checkItemID,
		IsReady:         ready,
	}
}

// TicketItemVoidedEvent is published when a ticket item is struck
type TicketItemVoidedEvent struct {
	shared.BaseDomainEvent
	DisplayID   uuid.UUID `json:"display_id"`
	CheckItemID uuid.UUID `json:"check_item_id"`
}

// NewTicketItemVoidedEvent creates a new item voided event
func NewTicketItemVoidedEvent(ticketID, propertyID, displayID, checkItemID uuid.UUID) *TicketItemVoidedEvent {
	return &TicketItemVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketItemVoided, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		CheckItemID:     checkItemID,
	}
}

// TicketBumpedEvent is published when a ticket is completed
type TicketBumpedEvent struct {
	shared.BaseDomainEvent
	DisplayID  uuid.UUID `json:"display_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
}

// NewTicketBumpedEvent creates a new ticket bumped event
func NewTicketBumpedEvent(ticketID, propertyID, displayID, employeeID uuid.UUID) *TicketBumpedEvent {
	return &TicketBumpedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketBumped, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		EmployeeID:      employeeID,
	}
}

// TicketRecalledEvent is published when a bumped ticket returns to the
// screen
type TicketRecalledEvent struct {
	shared.BaseDomainEvent
	DisplayID uuid.UUID `json:"display_id"`
}

// NewTicketRecalledEvent creates a new ticket recalled event
func NewTicketRecalledEvent(ticketID, propertyID, displayID uuid.UUID) *TicketRecalledEvent {
	return &TicketRecalledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketRecalled, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
	}
}

// TicketPaidEvent is published when the ticket's check settles
type TicketPaidEvent struct {
	shared.BaseDomainEvent
	DisplayID uuid.UUID `json:"display_id"`
	CheckID   uuid.UUID `json:"check_id"`
}

// NewTicketPaidEvent creates a new ticket paid event
func NewTicketPaidEvent(ticketID, propertyID, displayID, checkID uuid.UUID) *TicketPaidEvent {
	return &TicketPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTicketPaid, "KdsTicket", ticketID, propertyID),
		DisplayID:       displayID,
		CheckID:         checkID,
	}
}
