// Package t2048 implements 2048: slide the board, merge equal tiles, and
// keep going until no move is left.
package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// State is one 2048 position.
type State struct {
	Board Board `json:"board"`
	Score int   `json:"score"`
	Moves int   `json:"moves"`
	Won   bool  `json:"won"` // target tile reached; play continues
	Over  bool  `json:"over"`
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	st := core.GameState{Score: s.Score, GameOver: s.Over, Won: s.Won}
	if s.Over {
		st.Reason = core.ReasonNoMoves
	}
	return st
}

// Rules is the 2048 transition function.
type Rules struct {
	cfg config.T2048Config
}

// NewRules builds the rules from config.
func NewRules(cfg config.T2048Config) Rules {
	return Rules{cfg: cfg}
}

func (Rules) ID() string              { return "2048" }
func (Rules) Title() string           { return "2048" }
func (Rules) Interval() time.Duration { return 0 }

// Init places the starting tiles on an empty board.
func (r Rules) Init(rng *rand.Rand) State {
	var s State
	for range r.cfg.StartTiles {
		s.Board = r.spawn(s.Board, rng)
	}
	return s
}

// Step applies one move. Non-movement input and moves that change no cell
// leave the state untouched.
func (r Rules) Step(s State, in core.InputFrame, rng *rand.Rand) (State, bool) {
	dir, ok := direction(in.Action)
	if !ok {
		return s, false
	}

	board, gained, changed := Slide(s.Board, dir)
	if !changed {
		return s, false
	}

	s.Board = r.spawn(board, rng)
	s.Score += gained
	s.Moves++
	if r.cfg.TargetValue > 0 && MaxTile(s.Board) >= r.cfg.TargetValue {
		s.Won = true
	}
	s.Over = IsGameOver(s.Board)
	return s, true
}

// spawn puts a 2 (or, with FourChance, a 4) on a random empty cell.
func (r Rules) spawn(board Board, rng *rand.Rand) Board {
	empty := EmptyCells(board)
	if len(empty) == 0 {
		return board
	}
	c := empty[rng.Intn(len(empty))]
	v := 2
	if rng.Float64() < r.cfg.FourChance {
		v = 4
	}
	board[c.Y][c.X] = v
	return board
}

func direction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}
