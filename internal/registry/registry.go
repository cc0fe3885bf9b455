// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing front-ends
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for ids nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what front-ends drive. Implementations keep rules pure; the
// caller owns timing, input mapping and drawing.
type Game interface {
	// ID is the stable identifier used in URLs, CLI args and score rows.
	ID() string

	// Title is the display name.
	Title() string

	// Interval is the nominal tick period. Zero means turn-based: each
	// user action is a tick.
	Interval() time.Duration

	// Reset re-creates the state from scratch.
	Reset(cfg core.RuntimeConfig)

	// Step applies at most one input and advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score and terminal flags.
	State() core.GameState

	// Snapshot returns a JSON-friendly copy of the full game state.
	Snapshot() any
}

// Waker is implemented by turn-based games that need a follow-up tick
// without user input, such as a delayed card flip.
type Waker interface {
	Wake() time.Duration
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Interval  time.Duration `json:"intervalNs"`
	TurnBased bool          `json:"turnBased"`
}

// Factory creates a game from the game tuning section of the config.
type Factory func(cfg config.Games) Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory. Panics on duplicate ids.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f(config.DefaultGames())
	factories[id] = f
	infos[id] = GameInfo{
		ID:        id,
		Title:     g.Title(),
		Interval:  g.Interval(),
		TurnBased: g.Interval() == 0,
	}
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by id with the given tuning.
func Create(id string, cfg config.Games) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(cfg), nil
}

// Lookup returns the metadata for a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
