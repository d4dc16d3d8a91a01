package testutil

import "time"

// FixedClock is a Clock pinned to a single instant for deterministic
// deadline and month arithmetic in tests.
type FixedClock struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.Instant }

// ClockAt returns a FixedClock pinned to the given instant.
func ClockAt(instant time.Time) FixedClock {
	return FixedClock{Instant: instant}
}
