package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user>",
	Short: "Print a bearer token for a user",
	Long: `Sign a token for the given user id with auth.secret. Send it as
"Authorization: Bearer <token>" or in the session cookie.

Examples:
  quizhub token alice
  curl -H "Authorization: Bearer $(quizhub token alice)" localhost:8080/api/user/stats`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		token, err := auth.NewTokens(cfg.Auth).Issue(args[0])
		if errors.Is(err, auth.ErrNoSecret) {
			return fmt.Errorf("%w: set auth.secret or QUIZHUB_AUTH_SECRET", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <user>",
	Short: "Print a user's quiz statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, _, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx, out := cmd.Context(), cmd.OutOrStdout()

	user, err := store.UserByExternalID(ctx, args[0])
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "No user %q yet.\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	stats, err := store.CategoryStats(ctx, user.ID)
	if err != nil {
		return err
	}
	cats, err := store.ListCategories(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	fmt.Fprintf(out, "Quiz stats - %s\n\n", user.ExternalID)
	if len(stats) == 0 {
		fmt.Fprintln(out, "No quizzes finished yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-24s  %8s  %9s  %8s\n", "Category", "Attempts", "Completed", "Average")
	for _, st := range stats {
		name := names[st.CategoryID]
		if name == "" {
			name = st.CategoryID
		}
		fmt.Fprintf(out, "  %-24s  %8d  %9d  %7.1f%%\n", name, st.Attempts, st.Completed, st.AverageScore)
	}

	recent, err := store.RecentAttempts(ctx, user.ID, 5)
	if err != nil {
		return err
	}
	if len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent attempts:")
		for _, a := range recent {
			fmt.Fprintf(out, "  %s  %-24s  %5.1f%%  %d/%d\n",
				a.CreatedAt.Local().Format("2006-01-02 15:04"), names[a.CategoryID], a.Score, a.Correct, a.Total)
		}
	}
	return nil
}
