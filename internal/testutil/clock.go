package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced clock. Callbacks run synchronously inside
// Advance, in due-time order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewFakeClock creates a fake clock at time zero
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc schedules f to run once the clock has advanced by d
func (c *FakeClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// Advance moves the clock forward by d, firing every timer that becomes due
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.at > target {
				continue
			}
			if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}
