// Package tictactoe implements two-player Tic-Tac-Toe on one keyboard.
package tictactoe

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Mark is the content of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

// MarshalText encodes marks as "X", "O" or "".
func (m Mark) MarshalText() ([]byte, error) {
	if m == Empty {
		return []byte{}, nil
	}
	return []byte(m.String()), nil
}

// Board is the 3x3 grid in row-major order.
type Board [9]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CheckWinner returns the mark filling a complete row, column or diagonal,
// or Empty.
func CheckWinner(b Board) Mark {
	for _, l := range lines {
		if m := b[l[0]]; m != Empty && m == b[l[1]] && m == b[l[2]] {
			return m
		}
	}
	return Empty
}

// Full reports whether no cell is empty.
func (b Board) Full() bool {
	return !slices.Contains(b[:], Empty)
}

// State is one Tic-Tac-Toe position.
type State struct {
	Board  Board `json:"board"`
	Turn   Mark  `json:"turn"`
	Cursor int   `json:"cursor"`
	Winner Mark  `json:"winner"`
	Draw   bool  `json:"draw"`
	Moves  int   `json:"moves"`
}

// Over reports whether the game has been decided.
func (s State) Over() bool {
	return s.Winner != Empty || s.Draw
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	st := core.GameState{GameOver: s.Over(), Won: s.Winner != Empty}
	switch {
	case s.Winner != Empty:
		st.Reason = core.ReasonWin
	case s.Draw:
		st.Reason = core.ReasonDraw
	}
	return st
}

// Rules is the Tic-Tac-Toe transition function.
type Rules struct{}

func (Rules) ID() string              { return "tictactoe" }
func (Rules) Title() string           { return "Tic-Tac-Toe" }
func (Rules) Interval() time.Duration { return 0 }

// Init returns an empty board with X to move and the cursor centred.
func (Rules) Init(*rand.Rand) State {
	return State{Turn: X, Cursor: 4}
}

// Step moves the cursor or places the current mark. Placing on an occupied
// cell, or after the game is decided, is ignored.
func (Rules) Step(s State, in core.InputFrame, _ *rand.Rand) (State, bool) {
	if s.Over() {
		return s, false
	}

	if dx, dy, ok := in.Action.Direction(); ok {
		x := core.Clamp(s.Cursor%3+dx, 0, 2)
		y := core.Clamp(s.Cursor/3+dy, 0, 2)
		if c := y*3 + x; c != s.Cursor {
			s.Cursor = c
			return s, true
		}
		return s, false
	}

	cell := -1
	switch in.Action {
	case core.ActionConfirm, core.ActionJump:
		cell = s.Cursor
	case core.ActionSelect:
		cell = in.Target
	}
	return place(s, cell)
}

func place(s State, cell int) (State, bool) {
	if cell < 0 || cell >= len(s.Board) || s.Board[cell] != Empty {
		return s, false
	}
	s.Board[cell] = s.Turn
	s.Cursor = cell
	s.Moves++

	if w := CheckWinner(s.Board); w != Empty {
		s.Winner = w
		return s, true
	}
	if s.Board.Full() {
		s.Draw = true
		return s, true
	}
	if s.Turn == X {
		s.Turn = O
	} else {
		s.Turn = X
	}
	return s, true
}
