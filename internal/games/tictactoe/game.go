package tictactoe

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running Tic-Tac-Toe machine.
type Game = engine.Machine[State]

// New creates a Tic-Tac-Toe game.
func New(rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](Rules{}, rc)
}

func init() {
	registry.Register("tictactoe", func(config.Games) registry.Game {
		return New(core.DefaultConfig())
	})
}
