// Package clock provides the system implementation of the ports.Clock
// interface. Production code uses System; tests substitute a fixed clock.
package clock

import "time"

// System is a Clock backed by the machine's local time.
type System struct{}

// NewSystem creates a system clock.
func NewSystem() System {
	return System{}
}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}
