package order

import (
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The set of states is closed, but the transition graph is deliberately
// unrestricted: any status may follow any status. The engine enforces
// authorization (who may perform a transition), not graph legality.
// TransitionPolicy in the services package is the single place to tighten
// the graph later should that change.
//
// Status is a value object that provides validation and the wire/string
// representation used for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// QueuedTomorrow is the initial status for orders scheduled for a future
	// delivery date. Such orders wait in the tomorrow queue until the daily
	// rollover publishes them.
	QueuedTomorrow

	// PublishedToday marks an order visible in the today queue and claimable
	// by couriers.
	PublishedToday

	// Assigned indicates a courier has claimed or been given the order.
	Assigned

	// Confirmed indicates the customer confirmed the delivery by phone.
	Confirmed

	// NoAnswer indicates the customer could not be reached. Subject to the
	// retry-call SLA.
	NoAnswer

	// BadNumber indicates the customer phone number is unreachable or wrong.
	// Subject to the supervisor-escalation SLA.
	BadNumber

	// Fake marks the order as fraudulent. Practically terminal for reporting.
	Fake

	// Declined indicates the customer refused the order. Practically terminal.
	Declined

	// Rescheduled indicates the delivery was moved to another date.
	Rescheduled

	// OnTheWay indicates the courier is en route to the customer.
	OnTheWay

	// Delivered indicates a successful delivery. Practically terminal.
	Delivered

	// PartialReturn indicates some items came back after delivery.
	PartialReturn

	// FullReturn indicates the whole order came back. Practically terminal.
	FullReturn
)

// getStatusStrings returns the wire names for all Status values,
// including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		QueuedTomorrow: "QUEUED_TOMORROW",
		PublishedToday: "PUBLISHED_TODAY",
		Assigned:       "ASSIGNED",
		Confirmed:      "CONFIRMED",
		NoAnswer:       "NO_ANSWER",
		BadNumber:      "BAD_NUMBER",
		Fake:           "FAKE",
		Declined:       "DECLINED",
		Rescheduled:    "RESCHEDULED",
		OnTheWay:       "ON_THE_WAY",
		Delivered:      "DELIVERED",
		PartialReturn:  "PARTIAL_RETURN",
		FullReturn:     "FULL_RETURN",
	}
}

// getValidStatusStrings returns the wire names for valid Status values only.
func getValidStatusStrings() map[Status]string {
	m := getStatusStrings()
	delete(m, Unknown)
	return m
}

// StatusFromString parses a wire name ("PUBLISHED_TODAY", ...) into a Status.
// Returns a validation error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the closed set of valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresAction reports whether orders in this status sit in an operator's
// work queue (failed contact attempts and reschedules).
func (s Status) RequiresAction() bool {
	switch s {
	case NoAnswer, BadNumber, Fake, Declined, Rescheduled:
		return true
	default:
		return false
	}
}

// ActionableStatuses returns the statuses that place an order into the
// operator action queue, in display order.
func ActionableStatuses() []Status {
	return []Status{NoAnswer, BadNumber, Fake, Declined, Rescheduled}
}

// InitialStatusFor derives the creation status from the delivery date:
// orders for today are published immediately, anything else waits in the
// tomorrow queue.
func InitialStatusFor(deliveryDate kernel.Date, today kernel.Date) Status {
	if deliveryDate.IsEqual(today) {
		return PublishedToday
	}
	return QueuedTomorrow
}
