package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now returns the current time in UTC. Every persisted timestamp is taken
// from it so range queries compare like with like on SQLite and PostgreSQL.
func Now() time.Time {
	return time.Now().UTC()
}

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh id and stamps both timestamps
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch marks the entity as modified now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}

// BaseAggregateRoot is an entity that records domain events until the
// application layer publishes them. Writes are last-writer-wins; there is no
// version column.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate with no pending events
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// AddDomainEvent queues event for publication
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the queued events in the order they were added
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the queued events once they have been handed off
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
