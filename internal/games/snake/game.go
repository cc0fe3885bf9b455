package snake

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running Snake machine.
type Game = engine.Machine[State]

// New creates a Snake game.
func New(cfg config.SnakeConfig, rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](NewRules(cfg), rc)
}

func init() {
	registry.Register("snake", func(cfg config.Games) registry.Game {
		return New(cfg.Snake, core.DefaultConfig())
	})
}
