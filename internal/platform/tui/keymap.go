package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// KeyMap binds keys to game actions. It doubles as the help footer.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Confirm key.Binding
	Cell    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the arcade bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Jump:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "flap/fire")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cell: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick cell"),
		),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Jump, k.Confirm, k.Pause, k.Restart, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Jump, k.Confirm, k.Cell},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// Frame translates a key press into an input frame. ok is false for keys
// that carry no game action.
func (k KeyMap) Frame(msg tea.KeyMsg) (in core.InputFrame, ok bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Press(core.ActionQuit), true
	case key.Matches(msg, k.Up):
		return core.Press(core.ActionUp), true
	case key.Matches(msg, k.Down):
		return core.Press(core.ActionDown), true
	case key.Matches(msg, k.Left):
		return core.Press(core.ActionLeft), true
	case key.Matches(msg, k.Right):
		return core.Press(core.ActionRight), true
	case key.Matches(msg, k.Jump):
		return core.Press(core.ActionJump), true
	case key.Matches(msg, k.Confirm):
		return core.Press(core.ActionConfirm), true
	case key.Matches(msg, k.Cell):
		return core.SelectCell(int(msg.String()[0] - '1')), true
	case key.Matches(msg, k.Pause):
		return core.Press(core.ActionPause), true
	case key.Matches(msg, k.Restart):
		return core.Press(core.ActionRestart), true
	}
	return core.InputFrame{}, false
}
