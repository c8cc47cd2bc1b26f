package routing

import (
	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/shared"
)

// ScopeKind discriminates the tier a routing row applies to
type ScopeKind string

const (
	ScopeRvc      ScopeKind = "rvc"
	ScopeProperty ScopeKind = "property"
	ScopeGlobal   ScopeKind = "global"
)

// IsValid checks if the scope kind is valid
func (k ScopeKind) IsValid() bool {
	switch k {
	case ScopeRvc, ScopeProperty, ScopeGlobal:
		return true
	}
	return false
}

// String returns the string representation
func (k ScopeKind) String() string {
	return string(k)
}

// RouteScope is a tagged variant: a routing row is scoped to exactly one
// revenue center, to a whole property, or applies globally. The tier
// precedence of resolution is RVC before property before global.
type RouteScope struct {
	Kind       ScopeKind
	RvcID      uuid.UUID // set only for ScopeRvc
	PropertyID uuid.UUID // set only for ScopeProperty
}

// RvcScoped creates a scope bound to one revenue center
func RvcScoped(rvcID uuid.UUID) RouteScope {
	return RouteScope{Kind: ScopeRvc, RvcID: rvcID}
}

// PropertyScoped creates a scope bound to a property with no RVC
func PropertyScoped(propertyID uuid.UUID) RouteScope {
	return RouteScope{Kind: ScopeProperty, PropertyID: propertyID}
}

// GlobalScope creates the catch-all scope
func GlobalScope() RouteScope {
	return RouteScope{Kind: ScopeGlobal}
}

// Rank returns the precedence rank of the scope; lower wins
func (s RouteScope) Rank() int {
	switch s.Kind {
	case ScopeRvc:
		return 0
	case ScopeProperty:
		return 1
	default:
		return 2
	}
}

// Matches reports whether this scope applies to a resolution against the
// given revenue center and property.
func (s RouteScope) Matches(rvcID, propertyID uuid.UUID) bool {
	switch s.Kind {
	case ScopeRvc:
		return s.RvcID == rvcID
	case ScopeProperty:
		return s.PropertyID == propertyID
	case ScopeGlobal:
		return true
	}
	return false
}

// PrintClassRoute binds a print class at a scope to an order device.
// Multiple rows may exist for the same print class at different scopes;
// resolution selects the best tier and ignores the rest.
type PrintClassRoute struct {
	shared.PropertyAggregateRoot
	PrintClassID  uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderDeviceID uuid.UUID `gorm:"type:uuid;not null"`
	Scope         RouteScope `gorm:"embedded;embeddedPrefix:scope_"`
}

// NewPrintClassRoute creates a routing row
func NewPrintClassRoute(propertyID, printClassID, orderDeviceID uuid.UUID, scope RouteScope) (*PrintClassRoute, error) {
	if !scope.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROUTE", "unknown route scope: "+scope.Kind.String())
	}
	if scope.Kind == ScopeRvc && scope.RvcID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROUTE", "rvc-scoped routes require a revenue center")
	}
	if scope.Kind == ScopeProperty && scope.PropertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROUTE", "property-scoped routes require a property")
	}
	return &PrintClassRoute{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		PrintClassID:          printClassID,
		OrderDeviceID:         orderDeviceID,
		Scope:                 scope,
	}, nil
}
