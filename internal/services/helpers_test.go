package services

import (
	"context"
	"time"
)

// testClock advances only when the code under test sleeps
type testClock struct {
	now     time.Time
	onSleep func()
	slept   time.Duration
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.slept += d
	if c.onSleep != nil {
		c.onSleep()
	}
	return nil
}

func newTestPerformer(clock *testClock) *Performer {
	p := NewPerformer(PerformerConfig{
		DefaultTimeout: time.Second,
		PollInterval:   100 * time.Millisecond,
		StaleRetries:   3,
	})
	return p.WithClock(clock.Now, clock.Sleep)
}
