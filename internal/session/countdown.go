package session

import (
	"context"
	"sync"
	"time"
)

// Default countdown cadence: the clock loses 0.1s every 100ms.
const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultTickStep     = 0.1
)

// Countdown drives a callback on a fixed interval until the callback returns false,
// the parent context ends, or Stop is called.
type Countdown struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
}

// StartCountdown launches the ticking goroutine.
func StartCountdown(ctx context.Context, interval time.Duration, onTick func() bool) *Countdown {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Countdown{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.isStopped() {
					return
				}
				if !onTick() {
					c.markStopped()
					return
				}
			}
		}
	}()
	return c
}

// Stop halts the countdown. It does not wait for an in-flight callback, so it is safe
// to call while holding a lock that callback also takes; see Wait.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.markStopped()
	c.cancel()
}

// Wait blocks until the ticking goroutine has exited.
func (c *Countdown) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// Stopped reports whether the countdown has ended for any reason.
func (c *Countdown) Stopped() bool {
	if c == nil {
		return true
	}
	return c.isStopped()
}

func (c *Countdown) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *Countdown) markStopped() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}
