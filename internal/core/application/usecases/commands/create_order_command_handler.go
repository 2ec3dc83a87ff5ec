package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/metrics"
)

// ErrDuplicateOrder signals that an order for the same customer phone and
// delivery date already exists. Use errors.Is against this sentinel.
var ErrDuplicateOrder = errors.New("duplicate order")

// DuplicateOrderError carries the duplicate-detection details. Existing is
// the order that already occupies the (phone, date) slot; it is nil when the
// duplicate was caught by the storage constraint rather than the pre-check.
type DuplicateOrderError struct {
	Phone    string
	Date     kernel.Date
	Existing *order.Order
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("duplicate order: phone %s already has an order on %s", e.Phone, e.Date)
}

func (e *DuplicateOrderError) Unwrap() error {
	return ErrDuplicateOrder
}

// CreateOrderCommandHandler handles the business logic for order registration.
// Rejects duplicates by (customer phone, delivery date), derives the initial
// status from the delivery date, and publishes the order card to the region
// chat; the notifier routes the card to the today or tomorrow queue topic.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	log        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		log:        slog.With("component", "create_order"),
	}
}

// Handle processes the order registration command.
//
// The duplicate pre-check and the insert run in one transaction; the storage
// layer's unique constraint on (phone, delivery date) backstops the race
// where two creations slip past the pre-check concurrently. Either path
// surfaces as ErrDuplicateOrder.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	command CreateOrderCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByPhoneAndDate(ctx, command.Customer().Phone(), command.DeliveryDate())
	if err == nil {
		return nil, &DuplicateOrderError{
			Phone:    command.Customer().Phone(),
			Date:     command.DeliveryDate(),
			Existing: existing,
		}
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		command.OrderID(),
		generateHumanID(now),
		command.Customer(),
		command.Items(),
		command.TotalAmount(),
		command.PaymentType(),
		command.DeliveryDate(),
		command.TimeWindowFrom(),
		command.TimeWindowTo(),
		command.RegionID(),
		command.OperatorID(),
		command.Comment(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		if errors.Is(err, ports.ErrOrderAlreadyExists) {
			return nil, &DuplicateOrderError{
				Phone: command.Customer().Phone(),
				Date:  command.DeliveryDate(),
			}
		}
		return nil, err
	}

	dst, err := uow.RegionRepository().Get(ctx, command.RegionID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()

	if err = h.notifier.SendOrderCard(ctx, aggregate, dst); err != nil {
		h.log.Warn("order card notification failed",
			"order", aggregate.HumanID(), "error", err)
	}

	return aggregate, nil
}

// generateHumanID builds the short operator-facing identifier: "#" followed
// by the date as yymmdd and the last four digits of the wall-clock time.
func generateHumanID(now time.Time) string {
	timePart := now.Format("150405")
	return "#" + now.Format("060102") + timePart[len(timePart)-4:]
}
