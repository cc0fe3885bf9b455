package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// Store is everything the arcade front-end reads and writes.
type Store interface {
	ScoreSaver
	ScoreReader
	UpsertUser(ctx context.Context, externalID string) (storage.User, error)
}

// SSHServer serves the arcade to ssh clients, one program per session.
type SSHServer struct {
	addr   string
	server *ssh.Server
	store  Store
	games  config.Games
	log    *log.Logger
}

// NewSSHServer builds the wish server. The host key is created on first
// start when it does not exist.
func NewSSHServer(cfg config.SSHConfig, games config.Games, store Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	keyPath, err := config.ExpandPath(cfg.HostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("ssh: host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: host key dir: %w", err)
	}

	s := &SSHServer{
		addr:  cfg.Addr,
		store: store,
		games: games,
		log:   logger.WithPrefix("ssh"),
	}
	opts := []ssh.Option{
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.logSessions,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}
	s.server, err = wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("ssh: %w", err)
	}
	return s, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.log.Warn("no pty requested", "user", sess.User())
		return nil, nil
	}

	player := Player{Name: sess.User()}
	if s.store != nil {
		ctx, cancel := context.WithTimeout(sess.Context(), saveTimeout)
		u, err := s.store.UpsertUser(ctx, auth.SSHUser(sess.User()))
		cancel()
		if err != nil {
			s.log.Error("register player", "user", sess.User(), "err", err)
		} else {
			player.ID = u.ID
		}
	}

	cfg := core.RuntimeConfig{ScreenW: pty.Window.Width, ScreenH: pty.Window.Height}
	m := NewSessionModel(s.store, s.games, player, cfg, s.log)
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.log.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.log.Info("session ended", "user", sess.User(), "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails, and
// always shuts the server down before returning.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(sctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh: shutdown: %w", err)
	}
	return nil
}

func (s *SSHServer) Addr() string { return s.addr }

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionModel drives one player through menu, games and scoreboard.
type SessionModel struct {
	store  Store
	games  config.Games
	player Player
	cfg    core.RuntimeConfig
	log    *log.Logger

	screen screen
	menu   MenuModel
	game   GameModel
	scores ScoreboardModel
	err    error
}

func NewSessionModel(store Store, games config.Games, player Player, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:  store,
		games:  games,
		player: player,
		cfg:    cfg,
		log:    logger,
		menu:   NewMenuModel(player, cfg.ScreenW),
	}
}

func (m SessionModel) Init() tea.Cmd { return nil }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.ScreenW, m.cfg.ScreenH = ws.Width, ws.Height
	}

	switch m.screen {
	case screenGame:
		next, cmd := m.game.Update(msg)
		m.game = next.(GameModel)
		if m.game.BackToMenu() {
			return m.toMenu(), nil
		}
		return m, cmd

	case screenScores:
		next, cmd := m.scores.Update(msg)
		m.scores = next.(ScoreboardModel)
		if m.scores.IsGoingBack() {
			return m.toMenu(), nil
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch {
	case m.menu.IsQuitting():
		return m, cmd
	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.player, m.cfg.ScreenW, m.cfg.ScreenH)
		return m, nil
	case m.menu.Selected() != nil:
		id := m.menu.Selected().ID
		g, err := registry.Create(id, m.games)
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.player, m.cfg.ScreenW)
			return m, nil
		}
		m.err = nil
		m.screen = screenGame
		m.game = NewGameModel(g, m.store, m.player, m.cfg, m.log)
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) toMenu() SessionModel {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.player, m.cfg.ScreenW)
	return m
}

func (m SessionModel) View() string {
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	v := m.menu.View()
	if m.err != nil {
		v += "\n" + overStyle.Render(m.err.Error())
	}
	return v
}

// Screen reports which view is active, for tests and logging.
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	}
	return "menu"
}

// RunArcade runs the menu-driven arcade in the local terminal.
func RunArcade(store Store, games config.Games, player Player, cfg core.RuntimeConfig, logger *log.Logger) error {
	m := NewSessionModel(store, games, player, cfg, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
