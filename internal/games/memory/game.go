package memory

import (
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

// Game is a running Memory Match machine.
type Game = engine.Machine[State]

// New creates a Memory Match game.
func New(cfg config.MemoryConfig, rc core.RuntimeConfig) *Game {
	return engine.NewMachine[State](NewRules(cfg), rc)
}

func init() {
	registry.Register("memory", func(cfg config.Games) registry.Game {
		return New(cfg.Memory, core.DefaultConfig())
	})
}
