package clock

import (
	"sync"
	"time"
)

// Clock supplies "now" in the assistant's fixed timezone. Every
// time-dependent computation takes a Clock instead of calling time.Now, so
// the whole engine can be driven by the debug override or by a fixed clock
// in tests. Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current datetime in the configured location.
	Now() time.Time
	// Today returns midnight of the current date in the configured location.
	Today() time.Time
	// Location returns the configured location.
	Location() *time.Location
}

// Override is the operator-settable simulated (date, time) pair. Either
// half may be set independently: a date override with no time override
// keeps the real wall-clock time, and vice versa.
type Override struct {
	Date      *time.Time // date half, midnight local
	TimeOfDay *TimeOfDay // time half
}

// TimeOfDay is a wall-clock "HH:MM" pair.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// SystemClock is the production Clock: real wall-clock time in a fixed
// location, with the optional debug override layered on top. The override
// is consulted on every read and never cached.
type SystemClock struct {
	loc *time.Location

	mu       sync.RWMutex
	override Override
}

// NewSystemClock creates a SystemClock for the given location.
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{loc: loc}
}

// Now combines the real wall-clock with whatever override halves are set.
func (c *SystemClock) Now() time.Time {
	real := time.Now().In(c.loc)

	c.mu.RLock()
	ov := c.override
	c.mu.RUnlock()

	y, m, d := real.Date()
	if ov.Date != nil {
		y, m, d = ov.Date.Date()
	}
	hour, min, sec := real.Hour(), real.Minute(), real.Second()
	if ov.TimeOfDay != nil {
		hour, min, sec = ov.TimeOfDay.Hour, ov.TimeOfDay.Minute, 0
	}
	return time.Date(y, m, d, hour, min, sec, 0, c.loc)
}

// Today returns midnight of the current (possibly overridden) date.
func (c *SystemClock) Today() time.Time {
	now := c.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// Location returns the configured location.
func (c *SystemClock) Location() *time.Location { return c.loc }

// SetDate sets the date half of the override.
func (c *SystemClock) SetDate(date time.Time) {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, c.loc)

	c.mu.Lock()
	c.override.Date = &midnight
	c.mu.Unlock()
}

// SetTimeOfDay sets the time half of the override.
func (c *SystemClock) SetTimeOfDay(hour, minute int) {
	c.mu.Lock()
	c.override.TimeOfDay = &TimeOfDay{Hour: hour, Minute: minute}
	c.mu.Unlock()
}

// ClearOverride removes both override halves.
func (c *SystemClock) ClearOverride() {
	c.mu.Lock()
	c.override = Override{}
	c.mu.Unlock()
}

// CurrentOverride returns a copy of the active override for the debug
// surface.
func (c *SystemClock) CurrentOverride() Override {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.override
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	At time.Time
}

// NewFixed creates a Fixed clock.
func NewFixed(at time.Time) *Fixed { return &Fixed{At: at} }

// Now returns the pinned instant.
func (f *Fixed) Now() time.Time { return f.At }

// Today returns midnight of the pinned date.
func (f *Fixed) Today() time.Time {
	y, m, d := f.At.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.At.Location())
}

// Location returns the pinned instant's location.
func (f *Fixed) Location() *time.Location { return f.At.Location() }
