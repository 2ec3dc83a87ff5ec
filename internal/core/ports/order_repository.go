// Package ports defines repository and outbound-service interfaces for the
// workflow engine. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// ErrOrderAlreadyExists is returned by Add when another order with the same
// customer phone and delivery date already exists. The uniqueness is enforced
// by the storage layer so that two concurrent inserts cannot both succeed.
var ErrOrderAlreadyExists = errors.New("order with the same phone and delivery date already exists")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns ErrOrderAlreadyExists when the (customer phone, delivery date)
	// pair is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// conditional on the aggregate's version: if another writer has modified
	// the order since it was read, Update returns a version conflict and
	// nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order including its transition history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetAllByDeliveryDate retrieves all orders scheduled for the given date.
	GetAllByDeliveryDate(ctx context.Context, date kernel.Date) ([]*order.Order, error)

	// GetAllByCourier retrieves all orders assigned to the given courier.
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// GetByPhoneAndDate retrieves the order with the given customer phone and
	// delivery date, if any. Phone comparison is exact, no normalization.
	GetByPhoneAndDate(ctx context.Context, phone string, date kernel.Date) (*order.Order, error)

	// GetAllRequiringAction retrieves all orders in a status that demands a
	// follow-up from an operator (no answer, bad number, fake, declined,
	// rescheduled).
	GetAllRequiringAction(ctx context.Context) ([]*order.Order, error)
}
