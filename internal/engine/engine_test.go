package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// counter is a minimal game used by the engine tests: Up adds one point,
// reaching three ends the game. With delay set, every Jump opens a pending
// wake that an elapsed tick clears.
type counter struct {
	interval time.Duration
	delay    time.Duration
}

type counterState struct {
	N       int
	Roll    int
	Pending time.Duration
	Ticks   int
}

func (s counterState) Status() core.GameState {
	return core.GameState{Score: s.N, GameOver: s.N >= 3, Reason: "limit"}
}

func (c counter) ID() string              { return "counter" }
func (c counter) Title() string           { return "Counter" }
func (c counter) Interval() time.Duration { return c.interval }

func (c counter) Init(rng *rand.Rand) counterState {
	return counterState{Roll: rng.Intn(1000)}
}

func (c counter) Step(s counterState, in core.InputFrame, rng *rand.Rand) (counterState, bool) {
	s.Ticks++
	switch in.Action {
	case core.ActionUp:
		s.N++
		s.Roll = rng.Intn(1000)
		return s, true
	case core.ActionJump:
		if c.delay > 0 && s.Pending == 0 {
			s.Pending = c.delay
			return s, true
		}
	case core.ActionNone:
		if s.Pending > 0 && in.Elapsed > 0 {
			s.Pending -= in.Elapsed
			if s.Pending < 0 {
				s.Pending = 0
			}
			return s, true
		}
	}
	return s, c.interval > 0
}

func (c counter) Render(s counterState, dst *core.Screen) {
	dst.DrawText(0, 0, "count")
}

func (c counter) Wake(s counterState) time.Duration {
	return s.Pending
}

func newCounter(interval time.Duration) *Machine[counterState] {
	return NewMachine[counterState](counter{interval: interval}, core.RuntimeConfig{Seed: 9})
}

// frames collects published frames on a channel.
func frames(s *Session) <-chan Frame {
	ch := make(chan Frame, 64)
	s.Subscribe(func(f Frame) {
		select {
		case ch <- f:
		default:
		}
	})
	return ch
}

func waitFrame(ch <-chan Frame, match func(Frame) bool) (Frame, bool) {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-ch:
			if match(f) {
				return f, true
			}
		case <-deadline:
			return Frame{}, false
		}
	}
}
