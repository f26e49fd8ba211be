package fakeweb

import (
	"context"
	"sync"
	"time"
)

// Clock is virtual time that only moves when code sleeps on it
type Clock struct {
	mu  sync.Mutex
	now time.Time

	// OnSleep runs after every sleep, letting tests change the page over time
	OnSleep func()
	Slept   time.Duration
}

// NewClock starts a clock at a fixed instant
func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 7, 23, 9, 0, 0, 0, time.UTC)}
}

// Now returns the virtual time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.Slept += d
	onSleep := c.OnSleep
	c.mu.Unlock()
	if onSleep != nil {
		onSleep()
	}
	return nil
}
