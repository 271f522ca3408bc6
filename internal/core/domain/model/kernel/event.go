package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state change.
// Events are collected by the unit of work and published only after the
// transaction that produced them has committed.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEvent carries the fields shared by every event and is embedded into concrete events.
type BaseEvent struct {
	Name      string    `json:"name"`
	Aggregate UUID      `json:"aggregateId"`
	At        time.Time `json:"occurredAt"`
}

// NewBaseEvent stamps an event for the given aggregate at the current time.
func NewBaseEvent(name string, aggregateID UUID) BaseEvent {
	return BaseEvent{
		Name:      name,
		Aggregate: aggregateID,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventName() string     { return e.Name }
func (e BaseEvent) AggregateID() UUID     { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// EventRecorder is embedded into aggregate roots to collect their events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents call.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	return r.events
}

// ClearDomainEvents forgets the recorded events.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
