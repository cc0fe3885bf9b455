package core

import "time"

// Action is a semantic intent, decoupled from the key, click or websocket
// message that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - primary button (flap, fire)
	ActionConfirm        // Enter - act on the cursor cell
	ActionSelect         // click or digit - act on InputFrame.Target
	ActionPause          // P
	ActionRestart        // R, only honoured after game over
	ActionQuit           // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionJump:    "jump",
	ActionConfirm: "confirm",
	ActionSelect:  "select",
	ActionPause:   "pause",
	ActionRestart: "restart",
	ActionQuit:    "quit",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a wire name back to an Action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Direction reports the grid delta for a movement action.
func (a Action) Direction() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	}
	return 0, 0, false
}

// InputFrame is the input applied by one tick: at most one action, an
// optional target cell for ActionSelect, and the time since the previous
// tick.
type InputFrame struct {
	Action  Action
	Target  int
	Elapsed time.Duration
}

// Press builds a frame carrying a single action.
func Press(a Action) InputFrame {
	return InputFrame{Action: a}
}

// SelectCell builds an ActionSelect frame for a cell index.
func SelectCell(target int) InputFrame {
	return InputFrame{Action: ActionSelect, Target: target}
}

// Has reports whether the frame carries the action.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.Action == a
}

// Empty reports whether the frame carries no action.
func (f InputFrame) Empty() bool {
	return f.Action == ActionNone
}
