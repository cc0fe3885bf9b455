package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quiz-arcade/internal/registry"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

type menuKeys struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s")),
		Select:     key.NewBinding(key.WithKeys("enter", " ")),
		Scoreboard: key.NewBinding(key.WithKeys("tab")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel lists the registered games.
type MenuModel struct {
	items  []registry.GameInfo
	cursor int
	width  int
	keys   menuKeys
	player Player

	selected       *registry.GameInfo
	openScoreboard bool
	quitting       bool
}

func NewMenuModel(player Player, width int) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  width,
		keys:   defaultMenuKeys(),
		player: player,
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case key.Matches(msg, m.keys.Scoreboard):
			m.openScoreboard = true
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("Q U I Z   A R C A D E"), m.width))
	b.WriteString("\n\n")
	if m.player.Name != "" {
		b.WriteString(centerText(statusStyle.Render("playing as "+m.player.Name), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		mode := "real-time"
		if item.TurnBased {
			mode = "turn-based"
		}
		line := fmt.Sprintf("  %-16s %s", item.Title, statusStyle.Render(mode))
		if i == m.cursor {
			line = selectedStyle.Render("> "+fmt.Sprintf("%-16s", item.Title)) + " " + statusStyle.Render(mode)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(statusStyle.Render("↑/↓ move  enter play  tab scores  q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *registry.GameInfo { return m.selected }

func (m MenuModel) WantsScoreboard() bool { return m.openScoreboard }

func (m MenuModel) IsQuitting() bool { return m.quitting }
