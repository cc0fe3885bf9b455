package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

const saveTimeout = 5 * time.Second

// generations tells tick loops of successive game models apart.
var generations atomic.Int64

// ScoreSaver records finished games.
type ScoreSaver interface {
	SaveScore(ctx context.Context, gameID string, score int, userID string) (int64, error)
}

// Player identifies who is at the keyboard. An empty ID plays anonymously
// and no scores are kept.
type Player struct {
	ID   string
	Name string
}

type scoreSavedMsg struct {
	game  string
	score int
	err   error
}

// GameModel runs one game. Real-time games read at most one input per tick
// from a last-wins queue; turn-based games step on every key press.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	queue  *engine.InputQueue
	keys   KeyMap
	help   help.Model
	store  ScoreSaver
	player Player
	log    *log.Logger

	state      core.GameState
	gen        int64
	saved      bool
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel resets g with cfg and wraps it. store may be nil.
func NewGameModel(g registry.Game, store ScoreSaver, player Player, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	g.Reset(cfg)
	w, h := cfg.ScreenW, cfg.ScreenH
	if w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	return GameModel{
		game:   g,
		screen: core.NewScreen(w, h-1),
		queue:  &engine.InputQueue{},
		keys:   DefaultKeyMap(),
		help:   help.New(),
		store:  store,
		player: player,
		log:    logger.WithPrefix(g.ID()),
		state:  g.State(),
		gen:    generations.Add(1),
	}
}

func (m GameModel) turnBased() bool {
	return m.game.Interval() <= 0
}

func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.game.Interval(), m.gen)
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Height > 1 {
			m.screen.Resize(msg.Width, msg.Height-1)
		}
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case scoreSavedMsg:
		if msg.err != nil {
			m.log.Warn("score not saved", "score", msg.score, "err", msg.err)
		} else {
			m.log.Debug("score saved", "score", msg.score, "player", m.player.Name)
		}
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	in, ok := m.keys.Frame(msg)
	if !ok {
		return m, nil
	}

	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause, core.ActionRestart:
		return m.apply(in)
	}

	if m.turnBased() {
		return m.apply(in)
	}
	m.queue.Push(in)
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.game.Interval(), m.gen)

	if m.turnBased() {
		w, ok := m.game.(registry.Waker)
		if !ok || w.Wake() <= 0 {
			return m, next
		}
		nm, cmd := m.apply(core.InputFrame{Elapsed: refreshInterval})
		return nm, tea.Batch(next, cmd)
	}

	in, _ := m.queue.Take()
	in.Elapsed = m.game.Interval()
	nm, cmd := m.apply(in)
	return nm, tea.Batch(next, cmd)
}

// apply steps the game once and schedules a score save the first time the
// game ends.
func (m GameModel) apply(in core.InputFrame) (GameModel, tea.Cmd) {
	wasOver := m.state.GameOver
	res := m.game.Step(in)
	m.state = res.State

	if wasOver && !m.state.GameOver {
		m.saved = false
		m.queue.Take()
		return m, nil
	}
	if !m.state.GameOver || m.saved {
		return m, nil
	}
	m.saved = true
	return m, m.saveScore(m.state.Score)
}

func (m GameModel) saveScore(score int) tea.Cmd {
	if m.store == nil || m.player.ID == "" || score <= 0 {
		return nil
	}
	store, gameID, userID := m.store, m.game.ID(), m.player.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		_, err := store.SaveScore(ctx, gameID, score, userID)
		return scoreSavedMsg{game: gameID, score: score, err: err}
	}
}

func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteByte('\n')
	b.WriteString(statusLine(m.game.Title(), m.state))
	if !m.state.GameOver {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	return b.String()
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState { return m.state }

// IsQuitting reports whether the player asked to leave the arcade.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player asked for the menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game in the current terminal until the player quits.
func Run(g registry.Game, store ScoreSaver, player Player, cfg core.RuntimeConfig, logger *log.Logger) error {
	m := NewGameModel(g, store, player, cfg, logger)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var _ ScoreSaver = (*storage.Store)(nil)
