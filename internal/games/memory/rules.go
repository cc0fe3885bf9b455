// Package memory implements Memory Match: turn cards two at a time and
// find every pair.
package memory

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Columns is the width of the card grid.
const Columns = 4

// State is one Memory position. Cards holds pair values; Flipped and
// Matched hold card indexes.
type State struct {
	Cards   []int         `json:"cards"`
	Flipped []int         `json:"flipped"`
	Matched []int         `json:"matched"`
	Cursor  int           `json:"cursor"`
	Moves   int           `json:"moves"`
	Score   int           `json:"score"`
	Hide    time.Duration `json:"hideIn"` // until a mismatched pair turns back
	Won     bool          `json:"won"`
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	st := core.GameState{Score: s.Score, GameOver: s.Won, Won: s.Won}
	if s.Won {
		st.Reason = core.ReasonWin
	}
	return st
}

// FaceUp reports whether card i is showing.
func (s State) FaceUp(i int) bool {
	return slices.Contains(s.Flipped, i) || slices.Contains(s.Matched, i)
}

// Rules is the Memory transition function.
type Rules struct {
	cfg config.MemoryConfig
}

// NewRules builds the rules from config.
func NewRules(cfg config.MemoryConfig) Rules {
	return Rules{cfg: cfg}
}

func (Rules) ID() string              { return "memory" }
func (Rules) Title() string           { return "Memory Match" }
func (Rules) Interval() time.Duration { return 0 }

// Init deals two of each value face-down in random order.
func (r Rules) Init(rng *rand.Rand) State {
	cards := make([]int, 0, 2*r.cfg.Pairs)
	for v := range r.cfg.Pairs {
		cards = append(cards, v, v)
	}
	core.Shuffle(cards, rng)
	return State{Cards: cards}
}

// Wake reports how long until a mismatched pair turns back.
func (Rules) Wake(s State) time.Duration {
	return s.Hide
}

// Step moves the cursor, flips a card, or counts down a pending
// mismatch.
func (r Rules) Step(s State, in core.InputFrame, _ *rand.Rand) (State, bool) {
	if s.Won {
		return s, false
	}

	if dx, dy, ok := in.Action.Direction(); ok {
		return r.moveCursor(s, dx, dy)
	}

	switch in.Action {
	case core.ActionConfirm, core.ActionJump:
		return r.flip(s, s.Cursor)
	case core.ActionSelect:
		return r.flip(s, in.Target)
	case core.ActionNone:
		if s.Hide > 0 && in.Elapsed > 0 {
			s.Hide -= in.Elapsed
			if s.Hide <= 0 {
				s.Hide = 0
				s.Flipped = nil
			}
			return s, true
		}
	}
	return s, false
}

func (r Rules) moveCursor(s State, dx, dy int) (State, bool) {
	rows := (len(s.Cards) + Columns - 1) / Columns
	x := core.Clamp(s.Cursor%Columns+dx, 0, Columns-1)
	y := core.Clamp(s.Cursor/Columns+dy, 0, rows-1)
	c := y*Columns + x
	if c == s.Cursor || c >= len(s.Cards) {
		return s, false
	}
	s.Cursor = c
	return s, true
}

// flip turns card i face-up. It is ignored while two cards are showing or
// when the card is already face-up or matched.
func (r Rules) flip(s State, i int) (State, bool) {
	if i < 0 || i >= len(s.Cards) || len(s.Flipped) >= 2 || s.FaceUp(i) {
		return s, false
	}

	s.Cursor = i
	s.Flipped = append(slices.Clone(s.Flipped), i)
	if len(s.Flipped) < 2 {
		return s, true
	}

	s.Moves++
	a, b := s.Flipped[0], s.Flipped[1]
	if s.Cards[a] != s.Cards[b] {
		if r.cfg.FlipBack > 0 {
			s.Hide = r.cfg.FlipBack
		} else {
			s.Flipped = nil
		}
		return s, true
	}

	s.Matched = append(slices.Clone(s.Matched), a, b)
	s.Flipped = nil
	s.Score += r.cfg.PairScore
	s.Won = len(s.Matched) == len(s.Cards)
	return s, true
}
