// quizhub serves the quiz catalog, the PDF library and the mini-game arcade
// over HTTP, and plays the same games in the terminal or over SSH.
//
// Usage:
//
//	quizhub serve [--ssh]     - Start the HTTP API (and the SSH arcade)
//	quizhub play <game>       - Play a game in this terminal
//	quizhub menu              - Pick games from a menu
//	quizhub list              - List available games
//	quizhub scores [game]     - Show high scores
//	quizhub seed [--file f]   - Load the quiz catalog into the database
//	quizhub token <user>      - Print a bearer token for a user
//	quizhub stats <user>      - Print a user's quiz statistics
//
// Global flags:
//
//	--config <path>     - Config file (default: ./quizhub.yaml, ~/.quizhub/quizhub.yaml)
//	--db <path>         - Database path, overrides storage.path
//	--seed <value>      - RNG seed for reproducible games
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/invaders"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/memory"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/snake"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/t2048"
	_ "github.com/vovakirdan/quiz-arcade/internal/games/tictactoe"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

var (
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quizhub",
	Short: "Quiz catalog, PDF library and mini-game arcade",
	Long: `quizhub runs a quiz catalog with per-category progress, a PDF library
and six mini-games (2048, Snake, Flappy, Space Invaders, Tic-Tac-Toe and
Memory) playable in the browser, in the terminal or over SSH.

Examples:
  quizhub seed
  quizhub serve --ssh
  quizhub play snake
  quizhub token alice`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a quizhub.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(serveCmd, playCmd, menuCmd, listCmd, scoresCmd, seedCmd, tokenCmd, statsCmd)
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, ".env")
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the root logger every component derives from.
func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quizhub",
	})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// setup loads the config, builds the logger and opens the store. The
// caller closes the store.
func setup() (config.Config, *log.Logger, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return cfg, nil, nil, err
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger.Debug("database open", "path", cfg.Storage.Path)
	return cfg, logger, store, nil
}
