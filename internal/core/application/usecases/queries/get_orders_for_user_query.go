// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs, bypassing the domain aggregates.
package queries

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrGetOrdersForUserQueryIsNotConstructed = errors.New(
	"GetOrdersForUserQuery must be created via NewGetOrdersForUserQuery constructor",
)

// OrderFilter selects which slice of the order book a listing returns.
type OrderFilter string

const (
	// FilterAll returns every order visible to the requester.
	FilterAll OrderFilter = "all"

	// FilterToday returns orders scheduled for delivery today.
	FilterToday OrderFilter = "today"

	// FilterTomorrow returns orders parked in the tomorrow queue.
	FilterTomorrow OrderFilter = "tomorrow"

	// FilterAction returns orders in a status that demands a follow-up.
	FilterAction OrderFilter = "action"
)

// Validate checks that the filter is one of the known values.
func (f OrderFilter) Validate() error {
	switch f {
	case FilterAll, FilterToday, FilterTomorrow, FilterAction:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("filter",
			fmt.Errorf("%q is not a valid order filter", string(f)))
	}
}

// GetOrdersForUserQuery lists orders for a chat user. The visible slice
// depends on the requester's role: couriers see their own orders plus the
// claimable today queue, everyone else sees the full book.
type GetOrdersForUserQuery struct {
	requesterID kernel.UUID
	filter      OrderFilter

	guard guard.ConstructorGuard
}

// NewGetOrdersForUserQuery creates a query to list orders for the given user.
func NewGetOrdersForUserQuery(requesterID kernel.UUID, filter OrderFilter) (GetOrdersForUserQuery, error) {
	if err := errors.Join(requesterID.Validate(), filter.Validate()); err != nil {
		return GetOrdersForUserQuery{}, err
	}

	return GetOrdersForUserQuery{
		requesterID: requesterID,
		filter:      filter,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersForUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForUserQueryIsNotConstructed)
}

// RequesterID returns the user the listing is scoped to.
func (q GetOrdersForUserQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// Filter returns the requested slice of the order book.
func (q GetOrdersForUserQuery) Filter() OrderFilter {
	return q.filter
}

// GetOrdersForUserQueryResponse is one order row of a listing.
type GetOrdersForUserQueryResponse struct {
	ID             kernel.UUID
	HumanID        string
	Status         order.Status
	CustomerName   string
	CustomerPhone  string
	Address        string
	DeliveryDate   string
	TimeWindowFrom string
	TimeWindowTo   string
	TotalAmount    int64
	CourierID      *kernel.UUID
	Comment        string
}
