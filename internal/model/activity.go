package model

import (
	"sync"
	"time"
)

// ActivityClock records when a table was last touched.
type ActivityClock struct {
	mu          sync.Mutex
	lastTouched time.Time
	now         func() time.Time
}

func NewActivityClock() *ActivityClock {
	return newActivityClock(time.Now)
}

func newActivityClock(now func() time.Time) *ActivityClock {
	return &ActivityClock{lastTouched: now(), now: now}
}

func (c *ActivityClock) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastTouched = c.now()
}

func (c *ActivityClock) LastTouched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastTouched
}

// IdleFor returns how long ago the clock was last touched.
func (c *ActivityClock) IdleFor() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now().Sub(c.lastTouched)
}
