package queries

import (
	"context"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetDailyReportQueryHandler builds the daily report from the order book.
// Only the status and amount columns are read; the aggregation itself is the
// pure services.BuildDailyReport.
type GetDailyReportQueryHandler struct {
	db *gorm.DB
}

// NewGetDailyReportQueryHandler creates a handler for daily report queries.
func NewGetDailyReportQueryHandler(db *gorm.DB) GetDailyReportQueryHandler {
	return GetDailyReportQueryHandler{db: db}
}

// Handle executes the report query for the requested date.
func (h GetDailyReportQueryHandler) Handle(
	ctx context.Context,
	query GetDailyReportQuery,
) (services.DailyReport, error) {
	if err := query.Validate(); err != nil {
		return services.DailyReport{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			total_amount
		FROM orders
		WHERE delivery_date = ?
	`, query.Date().String()).Rows()
	if err != nil {
		return services.DailyReport{}, err
	}
	defer rows.Close()

	snapshots := make([]services.OrderSnapshot, 0)
	for rows.Next() {
		var (
			status int
			amount int64
		)
		if err = rows.Scan(&status, &amount); err != nil {
			return services.DailyReport{}, err
		}
		snapshots = append(snapshots, services.OrderSnapshot{
			Status:      order.Status(status),
			TotalAmount: amount,
		})
	}

	if err = rows.Err(); err != nil {
		return services.DailyReport{}, err
	}

	return services.BuildDailyReport(query.Date(), snapshots), nil
}
