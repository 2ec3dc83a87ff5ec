package order

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// HistoryEvent is one immutable audit record of a status change. The order's
// history is append-only: events are never mutated or reordered, and the last
// event's To always equals the order's current status.
type HistoryEvent struct {
	actorID    kernel.UUID
	from       Status
	to         Status
	reasonCode ReasonCode
	note       string
	at         time.Time
}

// NewHistoryEvent creates an audit record. From is Unknown for the creation
// event, which has no previous status.
func NewHistoryEvent(
	actorID kernel.UUID,
	from Status,
	to Status,
	reasonCode ReasonCode,
	note string,
	at time.Time,
) HistoryEvent {
	return HistoryEvent{
		actorID:    actorID,
		from:       from,
		to:         to,
		reasonCode: reasonCode,
		note:       note,
		at:         at,
	}
}

// ActorID returns the identifier of who performed the change. Automatic
// transitions record the well-known system actor.
func (e HistoryEvent) ActorID() kernel.UUID {
	return e.actorID
}

// From returns the previous status, or Unknown for the creation event.
func (e HistoryEvent) From() Status {
	return e.from
}

// To returns the status the order entered with this event.
func (e HistoryEvent) To() Status {
	return e.to
}

// ReasonCode returns the qualifier attached to the change, or ReasonNone.
func (e HistoryEvent) ReasonCode() ReasonCode {
	return e.reasonCode
}

// Note returns the free-text note recorded with the change.
func (e HistoryEvent) Note() string {
	return e.note
}

// At returns when the change happened.
func (e HistoryEvent) At() time.Time {
	return e.at
}
