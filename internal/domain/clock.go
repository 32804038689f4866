package domain

import "time"

// Clock supplies the current instant. Every operation that needs "now"
// receives a Clock instead of calling time.Now directly, so tests can freeze
// or advance time deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by the system wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
