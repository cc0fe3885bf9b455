package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/httpapi"
	"github.com/vovakirdan/quiz-arcade/internal/library"
	"github.com/vovakirdan/quiz-arcade/internal/live"
	"github.com/vovakirdan/quiz-arcade/internal/platform/tui"
	"github.com/vovakirdan/quiz-arcade/internal/quiz"
)

var (
	flagAddr    string
	flagWithSSH bool
	flagSSHAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API: quiz catalog and quiz-finish workflow, PDF library,
game scores and live games over websockets. With --ssh the terminal arcade
is served over SSH as well.

The built-in quiz catalog is loaded on first start when the database has
no categories.

Examples:
  quizhub serve
  quizhub serve --addr :9000
  quizhub serve --ssh --ssh-addr :2222

Players connect to the SSH arcade with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().BoolVar(&flagWithSSH, "ssh", false, "Also serve the arcade over SSH")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh-addr", "", "SSH listen address (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagSSHAddr != "" {
		cfg.SSH.Addr = flagSSHAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cats, err := store.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		catalog, err := config.LoadCatalog("")
		if err != nil {
			return err
		}
		res, err := store.SeedCatalog(ctx, catalog)
		if err != nil {
			return err
		}
		logger.Info("seeded quiz catalog", "categories", res.Categories, "quizzes", res.Quizzes, "questions", res.Questions)
	}

	lib, err := library.Open(cfg.Library.Root, cfg.Library.Manifest)
	if err != nil {
		return err
	}
	if missing := lib.Missing(); len(missing) > 0 {
		logger.Warn("library files missing", "root", lib.Root(), "count", len(missing))
	}

	tokens := auth.NewTokens(cfg.Auth)
	if cfg.Auth.Secret == "" {
		logger.Warn("auth secret is empty, every request is anonymous")
	}

	api := httpapi.New(httpapi.Deps{
		Store:   store,
		Quiz:    quiz.NewService(store),
		Library: lib,
		Live:    live.NewHandler(cfg.Games, store, logger, cfg.Server.SendBuffer),
		Auth:    tokens,
		Log:     logger,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 2)
	sshDone := make(chan struct{})
	go func() {
		logger.Info("http listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	if flagWithSSH {
		sshSrv, err := tui.NewSSHServer(cfg.SSH, cfg.Games, store, logger)
		if err != nil {
			return err
		}
		go func() {
			defer close(sshDone)
			if err := sshSrv.ListenAndServe(ctx); err != nil {
				errc <- err
			}
		}()
	} else {
		close(sshDone)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errc:
		logger.Error("server failed", "err", err)
		stop()
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(sctx); serr != nil {
		logger.Error("http shutdown", "err", serr)
	}
	<-sshDone
	return err
}
