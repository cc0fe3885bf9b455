package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// RenderScreen turns a screen buffer into styled terminal output. Runs of
// same-coloured cells share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		x := 0
		for x < s.Width() {
			c := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() && s.GetCell(x, y).Color == c {
				run.WriteRune(s.GetCell(x, y).Rune)
				x++
			}
			style, ok := palette[c]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// statusLine summarises a game state for the footer.
func statusLine(title string, st core.GameState) string {
	line := fmt.Sprintf("%s  score %d", title, st.Score)
	switch {
	case st.GameOver && st.Won:
		return line + "  " + wonStyle.Render("WON") + statusStyle.Render("  r: restart  esc: menu")
	case st.GameOver:
		msg := "GAME OVER"
		if st.Reason != "" {
			msg += " (" + st.Reason + ")"
		}
		return line + "  " + overStyle.Render(msg) + statusStyle.Render("  r: restart  esc: menu")
	case st.Paused:
		return line + statusStyle.Render("  paused, p to resume")
	}
	return line
}

// centerText pads text on the left to centre it in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
