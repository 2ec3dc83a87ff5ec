package commands

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/metrics"
)

// EscalateOverdueOrdersCommandHandler runs the SLA sweep. An order stuck in
// NO_ANSWER longer than the retry threshold asks operators to call again; an
// order stuck in BAD_NUMBER longer than the supervisor threshold is raised
// to logists. The sweep is read-only: orders are not modified, and an alert
// fires again on every sweep until someone moves the order out of the
// alertable status.
type EscalateOverdueOrdersCommandHandler struct {
	uowFactory      UoWFactory
	notifier        ports.Notifier
	clock           ports.Clock
	retryAfter      time.Duration
	supervisorAfter time.Duration
	log             *slog.Logger
}

// NewEscalateOverdueOrdersCommandHandler creates a handler for SLA sweeps
// with the given overdue thresholds.
func NewEscalateOverdueOrdersCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	retryAfter time.Duration,
	supervisorAfter time.Duration,
) EscalateOverdueOrdersCommandHandler {
	return EscalateOverdueOrdersCommandHandler{
		uowFactory:      uowFactory,
		notifier:        notifier,
		clock:           clock,
		retryAfter:      retryAfter,
		supervisorAfter: supervisorAfter,
		log:             slog.With("component", "sla_sweep"),
	}
}

// Handle processes the SLA sweep command. Returns the number of escalations
// raised.
func (h EscalateOverdueOrdersCommandHandler) Handle(
	ctx context.Context,
	command EscalateOverdueOrdersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	raised := 0

	noAnswer, err := h.sweepStatus(ctx, uow,
		order.NoAnswer, h.retryAfter, ports.EscalationRetryCall, account.RoleOperator, now)
	if err != nil {
		return raised, err
	}
	raised += noAnswer

	badNumber, err := h.sweepStatus(ctx, uow,
		order.BadNumber, h.supervisorAfter, ports.EscalationSupervisor, account.RoleLogist, now)
	if err != nil {
		return raised, err
	}
	raised += badNumber

	if raised > 0 {
		h.log.Info("sla sweep raised escalations", "count", raised)
	}

	return raised, nil
}

// sweepStatus escalates every order that entered the given status before
// now-threshold. The age is measured from the most recent transition into
// the status, so a repeat NO_ANSWER restarts the clock.
func (h EscalateOverdueOrdersCommandHandler) sweepStatus(
	ctx context.Context,
	uow UoW,
	status order.Status,
	threshold time.Duration,
	kind ports.EscalationKind,
	recipientRole account.Role,
	now time.Time,
) (int, error) {
	stuck, err := uow.OrderRepository().GetAllInStatus(ctx, status)
	if err != nil {
		return 0, err
	}

	overdue := make([]*order.Order, 0, len(stuck))
	for _, aggregate := range stuck {
		event, ok := aggregate.LastEventTo(status)
		if !ok {
			h.log.Warn("order in status without matching history event",
				"order", aggregate.HumanID(), "status", status.String())
			continue
		}
		if now.Sub(event.At()) >= threshold {
			overdue = append(overdue, aggregate)
		}
	}

	if len(overdue) == 0 {
		return 0, nil
	}

	recipients, err := uow.UserRepository().GetAllInRole(ctx, recipientRole)
	if err != nil {
		return 0, err
	}

	for _, aggregate := range overdue {
		event, _ := aggregate.LastEventTo(status)
		escalation := ports.Escalation{
			Kind:       kind,
			OrderID:    aggregate.ID(),
			HumanID:    aggregate.HumanID(),
			Status:     status,
			OverdueFor: now.Sub(event.At()),
		}

		if err = h.notifier.SendEscalation(ctx, escalation, recipients); err != nil {
			h.log.Warn("escalation notification failed",
				"order", aggregate.HumanID(), "error", err)
			continue
		}

		metrics.EscalationsRaisedTotal.WithLabelValues(string(kind)).Inc()
	}

	return len(overdue), nil
}
