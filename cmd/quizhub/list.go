package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	width := len("ID")
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-16s  %s\n", width, "ID", "Title", "Tick")
	fmt.Fprintf(out, "  %-*s  %-16s  %s\n", width, "--", "-----", "----")
	for _, g := range games {
		tick := "turn-based"
		if !g.TurnBased {
			tick = g.Interval.String()
		}
		fmt.Fprintf(out, "  %-*s  %-16s  %s\n", width, g.ID, g.Title, tick)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'quizhub play <id>' to play a game.")
}
