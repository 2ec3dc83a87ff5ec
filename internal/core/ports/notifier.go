package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/core/domain/services"
)

// EscalationKind classifies an overdue-order alert.
type EscalationKind string

const (
	// EscalationRetryCall asks operators to retry an unanswered customer.
	EscalationRetryCall EscalationKind = "retry_call"

	// EscalationSupervisor raises a broken phone number to supervisors.
	EscalationSupervisor EscalationKind = "supervisor"
)

// Escalation describes one overdue order that tripped an SLA threshold.
type Escalation struct {
	Kind       EscalationKind
	OrderID    kernel.UUID
	HumanID    string
	Status     order.Status
	OverdueFor time.Duration
}

// ReportKind distinguishes the two scheduled report broadcasts.
type ReportKind string

const (
	// ReportMorning is the start-of-day workload report.
	ReportMorning ReportKind = "morning"

	// ReportDaySummary is the end-of-day outcome report.
	ReportDaySummary ReportKind = "day_summary"
)

// Notifier pushes workflow events out to the chat platform. Delivery is
// best-effort: callers treat a failed send as a logged warning, never as a
// reason to roll back the state change that triggered it.
type Notifier interface {
	// SendOrderCard publishes the order's card to its region chat.
	SendOrderCard(ctx context.Context, aggregate *order.Order, dst *region.Region) error

	// SendEscalation delivers an overdue-order alert to the given recipients.
	SendEscalation(ctx context.Context, escalation Escalation, recipients []*account.User) error

	// SendReport delivers a daily report to the given recipients.
	SendReport(ctx context.Context, kind ReportKind, report services.DailyReport,
		recipients []*account.User) error
}
