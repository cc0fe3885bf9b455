package t2048

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running 2048 machine.
type Game = engine.Machine[State]

// New creates a 2048 game.
func New(cfg config.T2048Config, rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](NewRules(cfg), rc)
}

func init() {
	registry.Register("2048", func(cfg config.Games) registry.Game {
		return New(cfg.T2048, core.DefaultConfig())
	})
}
