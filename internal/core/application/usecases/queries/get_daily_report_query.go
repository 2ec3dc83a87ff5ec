package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetDailyReportQueryIsNotConstructed = errors.New(
	"GetDailyReportQuery must be created via NewGetDailyReportQuery constructor",
)

// GetDailyReportQuery aggregates one delivery day into counts, amounts and
// the conversion rate. Backs both the scheduled report broadcasts and the
// on-demand report endpoint.
type GetDailyReportQuery struct {
	date kernel.Date

	guard guard.ConstructorGuard
}

// NewGetDailyReportQuery creates a query for the given delivery date.
func NewGetDailyReportQuery(date kernel.Date) (GetDailyReportQuery, error) {
	if err := date.Validate(); err != nil {
		return GetDailyReportQuery{}, err
	}

	return GetDailyReportQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailyReportQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyReportQueryIsNotConstructed)
}

// Date returns the delivery date being reported on.
func (q GetDailyReportQuery) Date() kernel.Date {
	return q.date
}
