package ordering

// CheckStatus represents the lifecycle state of a guest check
type CheckStatus string

const (
	CheckStatusOpen   CheckStatus = "open"
	CheckStatusClosed CheckStatus = "closed"
	CheckStatusVoided CheckStatus = "voided"
)

// IsValid checks if the check status is valid
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusOpen, CheckStatusClosed, CheckStatusVoided:
		return true
	}
	return false
}

// String returns the string representation
func (s CheckStatus) String() string {
	return string(s)
}

// IsTerminal checks if this is a terminal status
func (s CheckStatus) IsTerminal() bool {
	return s == CheckStatusClosed || s == CheckStatusVoided
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

// Label returns the customer-facing name printed on receipts and tickets
func (o OrderType) Label() string {
	switch o {
	case OrderDineIn:
		return "Dine In"
	case OrderTakeout:
		return "Takeout"
	case OrderDelivery:
		return "Delivery"
	default:
		return string(o)
	}
}

// TenderKind represents how a payment was made
type TenderKind string

const (
	TenderCash     TenderKind = "cash"
	TenderCard     TenderKind = "card"
	TenderGiftCard TenderKind = "gift_card"
	TenderHouse    TenderKind = "house_account"
)

// IsValid checks if the tender kind is valid
func (t TenderKind) IsValid() bool {
	switch t {
	case TenderCash, TenderCard, TenderGiftCard, TenderHouse:
		return true
	}
	return false
}

// String returns the string representation
func (t TenderKind) String() string {
	return string(t)
}
