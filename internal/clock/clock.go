// Package clock abstracts the current time so deadline and month-remaining
// arithmetic can be tested deterministically.
package clock

import "time"

// Clock supplies the current time to services.
type Clock interface {
	Now() time.Time
}

// System is the production Clock backed by time.Now.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time { return time.Now() }
