package testutil

import (
	"sync"
	"time"
)

// ClockStart is the first instant a StepClock returns.
var ClockStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// StepClock is a deterministic task.Clock. Each call to Now returns the
// previous instant plus Step.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewStepClock creates a clock starting at ClockStart that advances one
// millisecond per call.
func NewStepClock() *StepClock {
	return &StepClock{now: ClockStart, Step: time.Millisecond}
}

// Now returns the current instant and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}

// FirstID is the id a store assigns to its first task under a new StepClock.
func FirstID() int64 {
	return ClockStart.UnixMilli()
}
