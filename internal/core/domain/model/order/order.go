package order

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrHistoryIsEmpty is returned when restoring an order whose audit
	// trail is missing. Every order carries at least its creation event.
	ErrHistoryIsEmpty = errors.New("order history must contain at least the creation event")

	// ErrHistoryOutOfSync is returned when the last history event does not
	// match the order's current status.
	ErrHistoryOutOfSync = errors.New("last history event must match the current status")
)

// ErrOrderIsNotQueued is returned when rolling over an order that is not in
// the tomorrow queue.
var ErrOrderIsNotQueued = errors.New("only queued orders can be rolled over to today")

// Audit notes recorded with automatic events.
const (
	noteCreated    = "Заказ создан"
	noteRolledOver = "Автоматический перекат на сегодня"
)

// Order is the aggregate root of the workflow engine. It owns the status,
// the courier assignment and the append-only audit history, and is mutated
// exclusively through ChangeStatus so that a status change and its history
// event are always written as one unit.
//
// Invariants:
//   - history holds at least the creation event, and its last element's To
//     equals the current status
//   - courierID is set exactly by a courier-performed ASSIGNED transition
//     and is never cleared
//   - version increases by one per mutation; the store uses it for
//     optimistic concurrency control
type Order struct {
	id             kernel.UUID
	humanID        string
	status         Status
	customer       Customer
	items          []Item
	totalAmount    int64
	paymentType    PaymentType
	deliveryDate   kernel.Date
	timeWindowFrom string
	timeWindowTo   string
	regionID       kernel.UUID
	operatorID     kernel.UUID
	courierID      *kernel.UUID
	reasonCode     ReasonCode
	comment        string
	history        []HistoryEvent
	version        int

	isConstructed bool
}

// NewOrder creates an order from validated intake data. The initial status
// is derived from the delivery date against now's calendar date: today's
// orders are published immediately, future ones queue for tomorrow. The
// history is seeded with the creation event attributed to the operator.
func NewOrder(
	id kernel.UUID,
	humanID string,
	customer Customer,
	items []Item,
	totalAmount int64,
	paymentType PaymentType,
	deliveryDate kernel.Date,
	timeWindowFrom string,
	timeWindowTo string,
	regionID kernel.UUID,
	operatorID kernel.UUID,
	comment string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customer.Validate(),
		validateTotalAmount(totalAmount),
		paymentType.Validate(),
		deliveryDate.Validate(),
		regionID.Validate(),
		operatorID.Validate(),
	); err != nil {
		return nil, err
	}

	status := InitialStatusFor(deliveryDate, kernel.DateOf(now))

	return &Order{
		id:             id,
		humanID:        humanID,
		status:         status,
		customer:       customer,
		items:          items,
		totalAmount:    totalAmount,
		paymentType:    paymentType,
		deliveryDate:   deliveryDate,
		timeWindowFrom: timeWindowFrom,
		timeWindowTo:   timeWindowTo,
		regionID:       regionID,
		operatorID:     operatorID,
		comment:        comment,
		history: []HistoryEvent{
			NewHistoryEvent(operatorID, Unknown, status, ReasonNone, noteCreated, now),
		},
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates the
// aggregate invariants so corrupted rows surface as errors instead of
// invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	humanID string,
	status Status,
	customer Customer,
	items []Item,
	totalAmount int64,
	paymentType PaymentType,
	deliveryDate kernel.Date,
	timeWindowFrom string,
	timeWindowTo string,
	regionID kernel.UUID,
	operatorID kernel.UUID,
	courierID *kernel.UUID,
	reasonCode ReasonCode,
	comment string,
	history []HistoryEvent,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		customer.Validate(),
		validateTotalAmount(totalAmount),
		paymentType.Validate(),
		deliveryDate.Validate(),
		regionID.Validate(),
		operatorID.Validate(),
		reasonCode.Validate(),
	); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if len(history) == 0 {
		return nil, ErrHistoryIsEmpty
	}
	if history[len(history)-1].To() != status {
		return nil, ErrHistoryOutOfSync
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a valid version", version))
	}

	return &Order{
		id:             id,
		humanID:        humanID,
		status:         status,
		customer:       customer,
		items:          items,
		totalAmount:    totalAmount,
		paymentType:    paymentType,
		deliveryDate:   deliveryDate,
		timeWindowFrom: timeWindowFrom,
		timeWindowTo:   timeWindowTo,
		regionID:       regionID,
		operatorID:     operatorID,
		courierID:      courierID,
		reasonCode:     reasonCode,
		comment:        comment,
		history:        history,
		version:        version,
		isConstructed:  true,
	}, nil
}

// ChangeStatus moves the order to target and appends the matching history
// event in the same mutation. When a courier performs the ASSIGNED
// transition the order is claimed: courierID becomes the actor.
//
// Authorization is checked by services.TransitionPolicy before this method
// is called; ChangeStatus itself accepts any target from any current status.
//
// A supplied reason code is stored on the order, and a supplied note
// replaces the order comment. The history event always carries a note: the
// caller's text, or "Статус изменен на <STATUS>" when omitted.
func (o *Order) ChangeStatus(
	actorID kernel.UUID,
	actorRole account.Role,
	target Status,
	reasonCode ReasonCode,
	note string,
	now time.Time,
) error {
	if err := errors.Join(
		actorID.Validate(),
		actorRole.Validate(),
		target.Validate(),
		reasonCode.Validate(),
	); err != nil {
		return err
	}

	eventNote := note
	if eventNote == "" {
		eventNote = "Статус изменен на " + target.String()
	}

	event := NewHistoryEvent(actorID, o.status, target, reasonCode, eventNote, now)

	o.status = target
	if actorRole == account.RoleCourier && target == Assigned {
		claimed := actorID
		o.courierID = &claimed
	}
	if reasonCode != ReasonNone {
		o.reasonCode = reasonCode
	}
	if note != "" {
		o.comment = note
	}
	o.history = append(o.history, event)
	o.version++

	return nil
}

// RollOverToToday publishes a queued order into the today queue on behalf of
// the engine itself. The history event is attributed to the system actor and
// carries a fixed note; the order comment is left untouched.
func (o *Order) RollOverToToday(now time.Time) error {
	if o.status != QueuedTomorrow {
		return ErrOrderIsNotQueued
	}

	event := NewHistoryEvent(
		account.SystemActorID(), o.status, PublishedToday, ReasonNone, noteRolledOver, now)

	o.status = PublishedToday
	o.history = append(o.history, event)
	o.version++

	return nil
}

// LastEventTo returns the most recent history event that moved the order
// into the given status, scanning newest first. Used by the SLA monitor to
// measure how long an order has sat in an actionable status.
func (o *Order) LastEventTo(status Status) (HistoryEvent, bool) {
	for i := len(o.history) - 1; i >= 0; i-- {
		if o.history[i].To() == status {
			return o.history[i], true
		}
	}
	return HistoryEvent{}, false
}

// IsOwnedBy reports whether the order is assigned to the given courier.
func (o *Order) IsOwnedBy(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// HumanID returns the short display code. It is display-only and not a
// uniqueness key.
func (o *Order) HumanID() string {
	return o.humanID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Customer returns the delivery recipient.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the order total in the minor currency unit.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// PaymentType returns how the customer pays.
func (o *Order) PaymentType() PaymentType {
	return o.paymentType
}

// DeliveryDate returns the scheduled calendar date.
func (o *Order) DeliveryDate() kernel.Date {
	return o.deliveryDate
}

// TimeWindowFrom returns the optional start of the delivery window.
func (o *Order) TimeWindowFrom() string {
	return o.timeWindowFrom
}

// TimeWindowTo returns the optional end of the delivery window.
func (o *Order) TimeWindowTo() string {
	return o.timeWindowTo
}

// RegionID returns the delivery zone reference.
func (o *Order) RegionID() kernel.UUID {
	return o.regionID
}

// OperatorID returns the creator reference.
func (o *Order) OperatorID() kernel.UUID {
	return o.operatorID
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// ReasonCode returns the most recent reason qualifier, or ReasonNone.
func (o *Order) ReasonCode() ReasonCode {
	return o.reasonCode
}

// Comment returns the most recent free-text note.
func (o *Order) Comment() string {
	return o.comment
}

// History returns a copy of the append-only audit trail.
func (o *Order) History() []HistoryEvent {
	history := make([]HistoryEvent, len(o.history))
	copy(history, o.history)
	return history
}

// Version returns the optimistic concurrency counter.
func (o *Order) Version() int {
	return o.version
}

func validateTotalAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%d is negative", amount))
	}
	return nil
}
