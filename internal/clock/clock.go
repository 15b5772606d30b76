// Package clock provides the reference instant for prayer selection.
package clock

import "time"

// Clock provides time to the application.
// Tests use Fixed for deterministic reference instants.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the host's local wall clock.
func Real() Clock {
	return realClock{}
}

// Fixed is a Clock that always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return time.Time(f) }
