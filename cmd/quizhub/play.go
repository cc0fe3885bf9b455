package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/platform/tui"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in this terminal",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space        - Flap / fire
  Enter, 1-9   - Pick a card or cell
  P            - Pause
  R            - Restart (after game over)
  Esc, Q       - Quit

Scores are recorded only with --player.

Examples:
  quizhub play snake
  quizhub play 2048 --seed 42
  quizhub play flappy --player alice`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games from a menu",
	Long: `Start the arcade in menu mode. Tab opens the scoreboard, Esc returns
from a game to the menu.

Examples:
  quizhub menu
  quizhub menu --player alice`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Record scores under this name")
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Record scores under this name")
}

// terminalConfig sizes the game to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	return cfg
}

// localPlayer registers the --player name the same way SSH users are.
func localPlayer(ctx context.Context, store *storage.Store) (tui.Player, error) {
	if flagPlayer == "" {
		return tui.Player{}, nil
	}
	u, err := store.UpsertUser(ctx, auth.SSHUser(flagPlayer))
	if err != nil {
		return tui.Player{}, err
	}
	return tui.Player{ID: u.ID, Name: flagPlayer}, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	game, err := registry.Create(args[0], cfg.Games)
	if err != nil {
		return fmt.Errorf("%w (run 'quizhub list' to see available games)", err)
	}
	player, err := localPlayer(cmd.Context(), store)
	if err != nil {
		return err
	}
	return tui.Run(game, store, player, terminalConfig(), logger)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, logger, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	player, err := localPlayer(cmd.Context(), store)
	if err != nil {
		return err
	}
	return tui.RunArcade(store, cfg.Games, player, terminalConfig(), logger)
}
