package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// State is implemented by every game's state type.
type State interface {
	Status() core.GameState
}

// Rules is one game's transition function plus its presentation.
//
// Step must be pure apart from the rng: it may not mutate s (including
// slices reachable from it) and must derive the next state only from s,
// in and rng. It returns changed=false when the input was ignored and
// nothing moved.
type Rules[S State] interface {
	ID() string
	Title() string
	Interval() time.Duration
	Init(rng *rand.Rand) S
	Step(s S, in core.InputFrame, rng *rand.Rand) (next S, changed bool)
	Render(s S, dst *core.Screen)
}

// WakeRules is implemented by turn-based rules that need a follow-up tick
// after a delay (a pair of cards flipping back, for instance).
type WakeRules[S State] interface {
	Wake(s S) time.Duration
}

// Machine hosts a game's rules and owns its state and RNG. It handles
// pause and restart for every game, and keeps game over sticky: once the
// state reports GameOver, only Restart or Reset produce a new state.
type Machine[S State] struct {
	rules  Rules[S]
	cfg    core.RuntimeConfig
	rng    *rand.Rand
	state  S
	paused bool
}

// NewMachine creates a machine and resets it with cfg.
func NewMachine[S State](rules Rules[S], cfg core.RuntimeConfig) *Machine[S] {
	m := &Machine[S]{rules: rules}
	m.Reset(cfg)
	return m
}

func (m *Machine[S]) ID() string              { return m.rules.ID() }
func (m *Machine[S]) Title() string           { return m.rules.Title() }
func (m *Machine[S]) Interval() time.Duration { return m.rules.Interval() }

// Reset seeds the RNG from cfg (a zero seed picks one from the clock) and
// re-creates the state.
func (m *Machine[S]) Reset(cfg core.RuntimeConfig) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m.cfg = cfg
	m.rng = rand.New(rand.NewSource(cfg.Seed))
	m.state = m.rules.Init(m.rng)
	m.paused = false
}

// Step applies one tick. Elapsed defaults to the nominal interval.
func (m *Machine[S]) Step(in core.InputFrame) core.StepResult {
	if in.Elapsed <= 0 {
		in.Elapsed = m.rules.Interval()
	}
	before := m.State()

	switch in.Action {
	case core.ActionRestart:
		if !before.GameOver {
			in.Action = core.ActionNone
			break
		}
		// A restart continues the seeded stream so replays stay deterministic.
		next := m.cfg
		next.Seed = m.rng.Int63()
		m.Reset(next)
		return core.StepResult{State: m.State(), Changed: true}

	case core.ActionPause:
		if before.GameOver {
			return core.StepResult{State: before}
		}
		m.paused = !m.paused
		return core.StepResult{State: m.State(), Changed: true}

	case core.ActionQuit:
		in.Action = core.ActionNone
	}

	if before.GameOver || m.paused {
		return core.StepResult{State: before}
	}

	next, changed := m.rules.Step(m.state, in, m.rng)
	m.state = next
	after := m.State()

	return core.StepResult{
		State:      after,
		ScoreDelta: after.Score - before.Score,
		Changed:    changed,
	}
}

// Render draws the current state.
func (m *Machine[S]) Render(dst *core.Screen) {
	m.rules.Render(m.state, dst)
}

// State returns the generic status with the pause flag applied.
func (m *Machine[S]) State() core.GameState {
	st := m.state.Status()
	st.Paused = m.paused && !st.GameOver
	return st
}

// Current returns the typed state.
func (m *Machine[S]) Current() S {
	return m.state
}

// Snapshot returns the typed state as any, for JSON encoding.
func (m *Machine[S]) Snapshot() any {
	return m.state
}

// Wake reports the pending delay of rules that implement WakeRules, or 0.
func (m *Machine[S]) Wake() time.Duration {
	if w, ok := m.rules.(WakeRules[S]); ok && !m.State().GameOver {
		return w.Wake(m.state)
	}
	return 0
}
