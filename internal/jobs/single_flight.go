package jobs

import (
	"sync/atomic"

	"lastmile/internal/pkg/metrics"
)

// singleFlight drops a scheduled tick when the previous run of the same job
// has not finished yet. Sweeps and rollovers are cheap but the database is
// not guaranteed to be fast, and overlapping runs of the same job would
// double-process the same rows.
type singleFlight struct {
	name string
	busy atomic.Bool
}

// Do runs fn unless a previous run is still in flight. Reports whether fn
// was executed.
func (s *singleFlight) Do(fn func()) bool {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.JobSkippedTotal.WithLabelValues(s.name).Inc()
		return false
	}
	defer s.busy.Store(false)

	fn()
	return true
}
