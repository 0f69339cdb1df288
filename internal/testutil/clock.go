package testutil

import (
	"sync"
	"time"
)

// SteppingClock is a deterministic wall clock for tests.
//
// Each call to Now returns the start time advanced by one more step, so
// durations measured with it are exact and repeatable.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewSteppingClock creates a clock whose first Now returns start.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	return &SteppingClock{start: start, step: step}
}

// FixedTime is the instant used by golden tests.
var FixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// Now returns the next instant.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Reset rewinds the clock so the next Now returns the start time.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
