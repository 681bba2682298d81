// Package clock provides an injectable time source so that token expiry and
// rate-limit refill can be driven deterministically in tests.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system clock.
type realClock struct{}

// Now returns the current system time in UTC.
func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New creates a Clock backed by the system clock.
func New() Clock {
	return realClock{}
}
