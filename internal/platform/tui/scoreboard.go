package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

const (
	maxScores     = 100
	statsTabTitle = "Quiz stats"
)

// ScoreReader is what the scoreboard reads from.
type ScoreReader interface {
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
	CategoryStats(ctx context.Context, userID string) ([]storage.CategoryStat, error)
	ListCategories(ctx context.Context) ([]storage.Category, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best scores per game and, for a known player,
// their quiz averages per category.
type ScoreboardModel struct {
	tabs   []string // game titles, then the stats tab when a player is known
	games  []registry.GameInfo
	cursor int
	store  ScoreReader
	player Player
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
	err    error

	goingBack bool
	quitting  bool
}

func NewScoreboardModel(store ScoreReader, player Player, width, height int) ScoreboardModel {
	games := registry.List()
	tabs := make([]string, 0, len(games)+1)
	for _, g := range games {
		tabs = append(tabs, g.Title)
	}
	if player.ID != "" {
		tabs = append(tabs, statsTabTitle)
	}

	m := ScoreboardModel{
		tabs:   tabs,
		games:  games,
		store:  store,
		player: player,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m ScoreboardModel) onStatsTab() bool {
	return m.player.ID != "" && m.cursor >= len(m.games)
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load refreshes the table for the current tab.
func (m *ScoreboardModel) load() {
	m.err = nil
	if m.onStatsTab() {
		m.table = newTable([]table.Column{
			{Title: "Category", Width: 22},
			{Title: "Done", Width: 6},
			{Title: "Average", Width: 8},
			{Title: "Last", Width: 14},
		}, m.height)
		m.table.SetRows(m.statRows())
		return
	}

	m.table = newTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Player", Width: 16},
		{Title: "Date", Width: 14},
	}, m.height)
	if m.store == nil || len(m.games) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	scores, err := m.store.TopScores(ctx, m.games[m.cursor].ID, maxScores)
	if err != nil {
		m.err = err
		return
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := strings.TrimPrefix(s.Player, "ssh:")
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			player,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

func (m *ScoreboardModel) statRows() []table.Row {
	if m.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	stats, err := m.store.CategoryStats(ctx, m.player.ID)
	if err != nil {
		m.err = err
		return nil
	}
	cats, err := m.store.ListCategories(ctx)
	if err != nil {
		m.err = err
		return nil
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	rows := make([]table.Row, len(stats))
	for i, st := range stats {
		name, ok := names[st.CategoryID]
		if !ok {
			name = st.CategoryID
		}
		rows[i] = table.Row{
			name,
			strconv.Itoa(st.Completed),
			fmt.Sprintf("%.1f%%", st.AverageScore),
			st.LastAttempt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if len(m.tabs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.tabs)
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if len(m.tabs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.tabs)) % len(m.tabs)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	var b strings.Builder

	title := "HIGH SCORES"
	if m.onStatsTab() {
		title = "QUIZ STATS"
	} else if len(m.games) > 0 {
		title += " - " + m.games[m.cursor].Title
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.cursor {
			tabs[i] = selectedStyle.Render("[" + t + "]")
		} else {
			tabs[i] = statusStyle.Render(" " + t + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	switch {
	case m.err != nil:
		b.WriteString(box.Render(overStyle.Render("could not load: " + m.err.Error())))
	case len(m.table.Rows()) == 0 && m.onStatsTab():
		b.WriteString(box.Render(statusStyle.Render("No quizzes finished yet.")))
	case len(m.table.Rows()) == 0:
		b.WriteString(box.Render(statusStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")))
	default:
		b.WriteString(box.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Tab returns the title of the current tab.
func (m ScoreboardModel) Tab() string {
	if len(m.tabs) == 0 {
		return ""
	}
	return m.tabs[m.cursor]
}

// Rows returns the table rows currently shown.
func (m ScoreboardModel) Rows() []table.Row { return m.table.Rows() }

func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

func (m ScoreboardModel) IsQuitting() bool { return m.quitting }
