package commands

import (
	"context"
	"log/slog"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/metrics"
)

// PublishQueuedOrdersCommandHandler runs the daily rollover. Orders in the
// tomorrow queue whose delivery date has arrived (or passed) are published to
// the today queue; each published card is pushed to its region chat.
//
// Each order is processed in its own transaction so that one failing order
// never blocks the rest of the batch.
type PublishQueuedOrdersCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	log        *slog.Logger
}

// NewPublishQueuedOrdersCommandHandler creates a handler for the daily rollover.
func NewPublishQueuedOrdersCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) PublishQueuedOrdersCommandHandler {
	return PublishQueuedOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		log:        slog.With("component", "daily_rollover"),
	}
}

// Handle processes the rollover command. Returns the number of orders
// published; per-order failures are logged and skipped.
func (h PublishQueuedOrdersCommandHandler) Handle(
	ctx context.Context,
	command PublishQueuedOrdersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	today := kernel.DateOf(now)

	due, err := h.collectDue(ctx, today)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, id := range due {
		aggregate, dst, rollErr := h.rollOverOne(ctx, id, today)
		if rollErr != nil {
			h.log.Warn("rollover skipped order", "order_id", id.String(), "error", rollErr)
			continue
		}
		if aggregate == nil {
			continue // already moved by someone else
		}

		published++
		metrics.OrdersRolledOverTotal.Inc()

		if notifyErr := h.notifier.SendOrderCard(ctx, aggregate, dst); notifyErr != nil {
			h.log.Warn("order card notification failed",
				"order", aggregate.HumanID(), "error", notifyErr)
		}
	}

	h.log.Info("daily rollover finished", "due", len(due), "published", published)

	return published, nil
}

// collectDue lists the queued orders whose delivery date is today or earlier.
func (h PublishQueuedOrdersCommandHandler) collectDue(
	ctx context.Context,
	today kernel.Date,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	queued, err := uow.OrderRepository().GetAllInStatus(ctx, order.QueuedTomorrow)
	if err != nil {
		return nil, err
	}

	due := make([]kernel.UUID, 0, len(queued))
	for _, aggregate := range queued {
		if !aggregate.DeliveryDate().After(today) {
			due = append(due, aggregate.ID())
		}
	}

	return due, nil
}

// rollOverOne publishes a single order in its own transaction. Returns
// (nil, nil, nil) when the order is no longer queued, which happens when a
// concurrent writer moved it between the listing and this transaction.
func (h PublishQueuedOrdersCommandHandler) rollOverOne(
	ctx context.Context,
	id kernel.UUID,
	today kernel.Date,
) (*order.Order, *region.Region, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if aggregate.Status() != order.QueuedTomorrow || aggregate.DeliveryDate().After(today) {
		return nil, nil, nil
	}

	if err = aggregate.RollOverToToday(h.clock.Now()); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, nil, err
	}

	dst, err := uow.RegionRepository().Get(ctx, aggregate.RegionID())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return aggregate, dst, nil
}
