package ports

import "time"

// Clock supplies the current time. Commands and jobs take it instead of
// calling time.Now so that SLA thresholds and rollover cutoffs can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}
