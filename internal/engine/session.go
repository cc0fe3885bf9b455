package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

var (
	// ErrGameOver is returned by Run when the game has already ended and no
	// restart has been applied.
	ErrGameOver = errors.New("engine: game is over")
	// ErrSessionRunning is returned by Run while another Run is in progress.
	ErrSessionRunning = errors.New("engine: session already running")
)

// Frame is published to observers after every state replacement.
type Frame struct {
	Game     string         `json:"game"`
	Tick     uint64         `json:"tick"`
	State    core.GameState `json:"state"`
	Delta    int            `json:"delta,omitempty"`
	Snapshot any            `json:"snapshot"`
}

// Session drives one game for one player. Real-time games are stepped by
// the clock with whatever input is pending; turn-based games are stepped
// by Push itself.
type Session struct {
	game  registry.Game
	clock *Clock
	queue InputQueue

	mu        sync.Mutex
	tick      uint64
	observers []func(Frame)
	over      chan struct{}
	restarted chan struct{}
}

// NewSession wraps g. Clock options are passed through to the session clock.
func NewSession(g registry.Game, opts ...ClockOption) *Session {
	return &Session{
		game:      g,
		clock:     NewClock(g.Interval(), opts...),
		restarted: make(chan struct{}, 1),
	}
}

// Game returns the hosted game. Callers must not step it directly.
func (s *Session) Game() registry.Game {
	return s.game
}

// Subscribe registers fn for every published frame. Observers run with the
// session lock held and must not block or call back into the session.
func (s *Session) Subscribe(fn func(Frame)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Restarted receives a value each time a finished game is restarted.
func (s *Session) Restarted() <-chan struct{} {
	return s.restarted
}

// State returns the current game status.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// Run plays the game until it ends or ctx is cancelled. The clock is
// released on return whichever way the run ends. A nil error means the
// game reached game over.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.over != nil {
		s.mu.Unlock()
		return ErrSessionRunning
	}
	if s.game.State().GameOver {
		s.mu.Unlock()
		return ErrGameOver
	}
	over := make(chan struct{})
	s.over = over
	s.mu.Unlock()
	defer s.release(over)

	if err := s.clock.Start(ctx, s.onTick); err != nil {
		return err
	}
	defer s.clock.Stop()

	s.mu.Lock()
	s.publishLocked(core.StepResult{State: s.game.State(), Changed: true})
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-over:
		return nil
	}
}

// Push hands one input to the session. Real-time input waits for the next
// tick and replaces anything still pending. Turn-based input is applied at
// once. Restart is applied at once, and only after game over.
func (s *Session) Push(in core.InputFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case in.Has(core.ActionRestart):
		if !s.game.State().GameOver {
			return
		}
		s.publishLocked(s.game.Step(in))
		select {
		case s.restarted <- struct{}{}:
		default:
		}

	case s.game.Interval() == 0:
		in.Elapsed = 0
		res := s.game.Step(in)
		if res.Changed {
			s.publishLocked(res)
		}
		s.afterTurnLocked(res)

	default:
		s.queue.Push(in)
	}
}

func (s *Session) onTick() bool {
	in, _ := s.queue.Take()
	in.Elapsed = s.clock.Interval()

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.game.Step(in)
	s.publishLocked(res)
	return !s.finishLocked(res)
}

func (s *Session) afterTurnLocked(res core.StepResult) {
	if s.finishLocked(res) {
		return
	}
	w, ok := s.game.(registry.Waker)
	if !ok {
		return
	}
	if d := w.Wake(); d > 0 {
		s.clock.After(d, func() bool { return s.onWake(d) })
	}
}

func (s *Session) onWake(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.game.Step(core.InputFrame{Elapsed: d})
	if res.Changed {
		s.publishLocked(res)
	}
	if s.finishLocked(res) {
		return false
	}
	if w, ok := s.game.(registry.Waker); ok {
		if next := w.Wake(); next > 0 {
			s.clock.After(next, func() bool { return s.onWake(next) })
		}
	}
	return true
}

// release drops the run's game-over channel if it is still installed.
func (s *Session) release(over chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over == over {
		s.over = nil
	}
}

// finishLocked signals Run when the game has ended.
func (s *Session) finishLocked(res core.StepResult) bool {
	if !res.State.GameOver {
		return false
	}
	if s.over != nil {
		close(s.over)
		s.over = nil
	}
	return true
}

func (s *Session) publishLocked(res core.StepResult) {
	s.tick++
	f := Frame{
		Game:     s.game.ID(),
		Tick:     s.tick,
		State:    res.State,
		Delta:    res.ScoreDelta,
		Snapshot: s.game.Snapshot(),
	}
	for _, fn := range s.observers {
		fn(f)
	}
}
