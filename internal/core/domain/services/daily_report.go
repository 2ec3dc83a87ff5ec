package services

import (
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderSnapshot is the minimal projection of an order needed for reporting.
// Queries may build snapshots straight from storage rows without hydrating
// full aggregates.
type OrderSnapshot struct {
	Status      order.Status
	TotalAmount int64
}

// Snapshot projects an order aggregate for reporting.
func Snapshot(o *order.Order) OrderSnapshot {
	return OrderSnapshot{
		Status:      o.Status(),
		TotalAmount: o.TotalAmount(),
	}
}

// DailyReport aggregates one delivery day: order counts per status, revenue
// totals and the delivered conversion rate in percent.
type DailyReport struct {
	Date            kernel.Date
	TotalOrders     int
	CountByStatus   map[order.Status]int
	TotalAmount     int64
	DeliveredAmount int64
	ConversionRate  float64
}

// BuildDailyReport computes the report over a snapshot of orders. It is a
// pure function: no I/O, no clock. The conversion rate of an empty day is 0,
// not NaN.
func BuildDailyReport(date kernel.Date, orders []OrderSnapshot) DailyReport {
	report := DailyReport{
		Date:          date,
		TotalOrders:   len(orders),
		CountByStatus: make(map[order.Status]int),
	}

	delivered := 0
	for _, o := range orders {
		report.CountByStatus[o.Status]++
		report.TotalAmount += o.TotalAmount
		if o.Status == order.Delivered {
			delivered++
			report.DeliveredAmount += o.TotalAmount
		}
	}

	if len(orders) > 0 {
		report.ConversionRate = float64(delivered) / float64(len(orders)) * 100
	}

	return report
}
