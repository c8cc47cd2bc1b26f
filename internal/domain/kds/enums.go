package kds

// TicketStatus represents the lifecycle state of a kitchen ticket
type TicketStatus string

const (
	TicketStatusDraft  TicketStatus = "draft"
	TicketStatusActive TicketStatus = "active"
	TicketStatusBumped TicketStatus = "bumped"
)

// IsValid checks if the ticket status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusDraft, TicketStatusActive, TicketStatusBumped:
		return true
	}
	return false
}

// String returns the string representation
func (s TicketStatus) String() string {
	return string(s)
}

// ItemStatus represents the state of a single item on a kitchen ticket
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusBumped  ItemStatus = "bumped"
	ItemStatusVoided  ItemStatus = "voided"
)

// IsValid checks if the item status is valid
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusBumped, ItemStatusVoided:
		return true
	}
	return false
}

// String returns the string representation
func (s ItemStatus) String() string {
	return string(s)
}

// OrderType classifies how the order will reach the guest
type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeout  OrderType = "takeout"
	OrderDelivery OrderType = "delivery"
)

// IsValid checks if the order type is valid
func (o OrderType) IsValid() bool {
	switch o {
	case OrderDineIn, OrderTakeout, OrderDelivery:
		return true
	}
	return false
}

// String returns the string representation
func (o OrderType) String() string {
	return string(o)
}
