package invaders

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running Space Invaders machine.
type Game = engine.Machine[State]

// New creates a Space Invaders game.
func New(cfg config.InvadersConfig, rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](NewRules(cfg), rc)
}

func init() {
	registry.Register("invaders", func(cfg config.Games) registry.Game {
		return New(cfg.Invaders, core.DefaultConfig())
	})
}
