package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit timestamps every persisted
// record shares.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity mints a fresh identity with both timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// BaseAggregateRoot layers optimistic-lock versioning and domain event
// recording on top of BaseEntity. Events accumulate on the aggregate
// until the application layer publishes and clears them after a
// successful save.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`

	pending []DomainEvent
}

// NewBaseAggregateRoot starts an aggregate at version 1 with no
// recorded events.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion bumps the optimistic lock version. Every state
// mutation calls this before saving.
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// AddDomainEvent records an event for publication after the aggregate
// is saved.
func (a *BaseAggregateRoot) AddDomainEvent(e DomainEvent) { a.pending = append(a.pending, e) }

// GetDomainEvents returns the events recorded since the last clear.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.pending }

// ClearDomainEvents drops the recorded events once they are published.
func (a *BaseAggregateRoot) ClearDomainEvents() { a.pending = nil }

// PropertyAggregateRoot scopes an aggregate to a single property, one
// physical restaurant location. Configuration and operational records
// are always property-owned.
type PropertyAggregateRoot struct {
	BaseAggregateRoot
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewPropertyAggregateRoot starts a property-owned aggregate.
func NewPropertyAggregateRoot(propertyID uuid.UUID) PropertyAggregateRoot {
	return PropertyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PropertyID:        propertyID,
	}
}
