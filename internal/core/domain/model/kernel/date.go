package kernel

import (
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when attempting to use an improperly
// initialized Date. Dates must be created via NewDate or DateOf.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"date must be created via NewDate or DateOf constructors")

// Date is an immutable calendar date (no time-of-day component) used for
// delivery scheduling. Two orders are on the same delivery day exactly when
// their Dates are equal; all comparisons are exact string equality on the
// "2006-01-02" form.
//
// Example:
//
//	d, err := kernel.NewDate("2024-05-10")
//	if err != nil {
//	    // handle invalid date
//	}
//	fmt.Println(d) // Output: 2024-05-10
type Date struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewDate parses a Date from its "2006-01-02" representation.
// Returns a validation error for any other format.
func NewDate(s string) (Date, error) {
	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return Date{
		value: parsed.Format(DateLayout),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DateOf truncates a point in time to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date{
		value: t.Format(DateLayout),
		guard: guard.NewConstructorGuard(),
	}
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	t, _ := time.Parse(DateLayout, d.value)
	return DateOf(t.AddDate(0, 0, days))
}

// String returns the "2006-01-02" representation.
func (d Date) String() string {
	return d.value
}

// IsEqual compares two dates for equality.
func (d Date) IsEqual(other Date) bool {
	return d.value == other.value
}

// After reports whether d is a later calendar date than other.
// Lexicographic comparison is correct for the "2006-01-02" form.
func (d Date) After(other Date) bool {
	return d.value > other.value
}

// Validate checks that the Date was created through a constructor.
func (d Date) Validate() error {
	return d.guard.Validate(ErrDateIsNotConstructed)
}
