// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastmile_status_transitions_total",
		Help: "Total number of successful order status transitions.",
	},
		[]string{"to_status"},
	)

	EscalationsRaisedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastmile_escalations_raised_total",
		Help: "Total number of SLA escalation signals raised.",
	},
		[]string{"kind"},
	)

	OrdersRolledOverTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lastmile_orders_rolled_over_total",
		Help: "Total number of queued orders promoted to the today queue.",
	})

	JobSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lastmile_job_ticks_skipped_total",
		Help: "Total number of scheduled job ticks skipped because the previous run was still active.",
	},
		[]string{"job"},
	)
)
