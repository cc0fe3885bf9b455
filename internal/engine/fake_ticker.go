package engine

import (
	"sync/atomic"
	"time"
)

// FakeTicker is a Ticker that only fires when Tick is called.
type FakeTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

// NewFakeTicker creates an idle fake ticker.
func NewFakeTicker() *FakeTicker {
	return &FakeTicker{c: make(chan time.Time)}
}

// Factory returns a WithTicker-compatible constructor that always hands
// out this ticker.
func (f *FakeTicker) Factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return f }
}

func (f *FakeTicker) C() <-chan time.Time { return f.c }

func (f *FakeTicker) Stop() { f.stopped.Store(true) }

// Stopped reports whether the consumer released the ticker.
func (f *FakeTicker) Stopped() bool { return f.stopped.Load() }

// Tick delivers one tick. It reports false if nobody received it within
// a second, which means the clock loop has exited.
func (f *FakeTicker) Tick() bool {
	select {
	case f.c <- time.Now():
		return true
	case <-time.After(time.Second):
		return false
	}
}
