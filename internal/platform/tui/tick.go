// Package tui is the terminal front-end: a bubbletea model per game, the
// game menu, the scoreboard and the SSH arcade served with wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval paces turn-based games, which only need redraws and the
// occasional delayed step.
const refreshInterval = 100 * time.Millisecond

// TickMsg advances a game by one tick.
type TickMsg struct {
	At  time.Time
	Gen int64 // ticks from an earlier game model are ignored
}

func tickCmd(interval time.Duration, gen int64) tea.Cmd {
	if interval <= 0 {
		interval = refreshInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
