package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Without arguments, summarise every game. With a game id, show its top
scores; --clear deletes them.

Examples:
  quizhub scores
  quizhub scores snake --limit 20
  quizhub scores flappy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the game's scores")
}

func runScores(cmd *cobra.Command, args []string) error {
	_, _, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx, out := cmd.Context(), cmd.OutOrStdout()

	if len(args) == 0 {
		all, err := store.AllGameStats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-16s  %6s  %6s  %8s\n", "Game", "Played", "Best", "Average")
		for _, g := range registry.List() {
			st := all[g.ID]
			fmt.Fprintf(out, "  %-16s  %6d  %6d  %8.1f\n", g.Title, st.GamesCount, st.HighScore, st.AvgScore)
		}
		return nil
	}

	info, ok := registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown game %q (run 'quizhub list' to see available games)", args[0])
	}

	if flagClear {
		if err := store.ClearScores(ctx, info.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(ctx, info.ID, flagLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'quizhub play %s --player <name>' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-16s  %s\n", "----", "-----", "------", "----")
	for i, e := range scores {
		player := strings.TrimPrefix(e.Player, "ssh:")
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-10d  %-16s  %s\n", i+1, e.Score, player, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	st, err := store.GameStats(ctx, info.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest: %d  Games: %d  Average: %.1f\n", st.HighScore, st.GamesCount, st.AvgScore)
	return nil
}
