// Package engine runs games: a Clock that drives ticks, a depth-one
// InputQueue, the generic Machine that hosts a game's rules, and a Session
// that ties the three together for one player.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClockRunning is returned by Start on a clock that has not stopped.
var ErrClockRunning = errors.New("engine: clock already running")

// Ticker abstracts time.Ticker so tests can drive ticks by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithTicker replaces the real ticker factory.
func WithTicker(f func(time.Duration) Ticker) ClockOption {
	return func(c *Clock) { c.newTicker = f }
}

type wake struct {
	d  time.Duration
	fn func() bool
}

// Clock calls a tick callback at a fixed nominal interval on its own
// goroutine. An interval of zero runs no ticker; the clock then only serves
// After callbacks. Callbacks never run concurrently with each other.
//
// A run ends when Stop is called, when the Start context is cancelled, or
// when a callback returns false. In every case the ticker and any pending
// After timer are released, and once Stop returns no callback will fire.
// Callbacks must not call Stop themselves; they return false instead.
type Clock struct {
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	notify  chan struct{}
	pending *wake
}

// NewClock creates a stopped clock.
func NewClock(interval time.Duration, opts ...ClockOption) *Clock {
	c := &Clock{
		interval: interval,
		newTicker: func(d time.Duration) Ticker {
			return stdTicker{time.NewTicker(d)}
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the nominal tick period.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Start launches the tick loop. onTick may be nil for a wake-only clock.
func (c *Clock) Start(ctx context.Context, onTick func() bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runningLocked() {
		return ErrClockRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.notify = make(chan struct{}, 1)
	c.pending = nil

	go c.loop(ctx, onTick, c.done, c.notify)
	return nil
}

func (c *Clock) runningLocked() bool {
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Running reports whether the loop goroutine is alive.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runningLocked()
}

// Done is closed when the current run ends. It is nil before the first Start.
func (c *Clock) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Stop ends the run and waits for the loop goroutine to exit. Safe to call
// repeatedly and on a clock that never started.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// After schedules fn to run once on the clock goroutine after d, replacing
// any wake that has not fired yet. It reports false when the clock is not
// running. fn returning false ends the run.
func (c *Clock) After(d time.Duration, fn func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.runningLocked() {
		return false
	}
	c.pending = &wake{d: d, fn: fn}
	select {
	case c.notify <- struct{}{}:
	default:
	}
	return true
}

func (c *Clock) loop(ctx context.Context, onTick func() bool, done chan struct{}, notify <-chan struct{}) {
	defer close(done)

	var tickC <-chan time.Time
	if c.interval > 0 && onTick != nil {
		ticker := c.newTicker(c.interval)
		defer ticker.Stop()
		tickC = ticker.C()
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
		wakeFn func() bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-tickC:
			if ctx.Err() != nil {
				return
			}
			if !onTick() {
				return
			}

		case <-notify:
			c.mu.Lock()
			w := c.pending
			c.pending = nil
			c.mu.Unlock()
			if w == nil {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.d)
			timerC = timer.C
			wakeFn = w.fn

		case <-timerC:
			timerC = nil
			fn := wakeFn
			wakeFn = nil
			if ctx.Err() != nil {
				return
			}
			if fn != nil && !fn() {
				return
			}
		}
	}
}
