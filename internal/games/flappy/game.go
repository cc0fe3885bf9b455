package flappy

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running Flappy Bird machine.
type Game = engine.Machine[State]

// New creates a Flappy Bird game.
func New(cfg config.FlappyConfig, rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](NewRules(cfg), rc)
}

func init() {
	registry.Register("flappy", func(cfg config.Games) registry.Game {
		return New(cfg.Flappy, core.DefaultConfig())
	})
}
