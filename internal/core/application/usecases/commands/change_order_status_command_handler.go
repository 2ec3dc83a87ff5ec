package commands

import (
	"context"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/metrics"
)

// ChangeOrderStatusCommandHandler handles status transitions requested by
// chat users. It resolves the actor's role, enforces the transition policy
// (couriers act only on owned or claimable orders) and records the change in
// the order's history.
//
// The courier claim race resolves to exactly one winner: the update is
// conditional on the aggregate version read inside the transaction, so the
// loser's write matches zero rows and surfaces as errs.ErrVersionIsInvalid.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	clock      ports.Clock
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
		clock:      clock,
	}
}

// Handle processes the status transition command.
// Returns errs.ErrPermissionDenied when the actor may not perform the
// transition and errs.ErrVersionIsInvalid when a concurrent writer got there
// first.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, command.ActorID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(actor.ID(), actor.Role(), aggregate, command.TargetStatus()); err != nil {
		return nil, err
	}

	err = aggregate.ChangeStatus(
		actor.ID(),
		actor.Role(),
		command.TargetStatus(),
		command.ReasonCode(),
		command.Note(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(command.TargetStatus().String()).Inc()

	return aggregate, nil
}
