package core

// RuntimeConfig is handed to a game when it is (re)created.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 config with a platform-chosen seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the game-agnostic view of a running game.
type GameState struct {
	Score    int    `json:"score"`
	GameOver bool   `json:"over"`
	Won      bool   `json:"won"`
	Paused   bool   `json:"paused"`
	Reason   string `json:"reason,omitempty"` // why the game ended
}

// StepResult is the outcome of one tick.
type StepResult struct {
	State      GameState
	ScoreDelta int
	Changed    bool // false when the input was ignored and nothing moved
}

// Terminal reasons reported in GameState.Reason.
const (
	ReasonWall      = "wall"
	ReasonSelf      = "self"
	ReasonPipe      = "pipe"
	ReasonGround    = "ground"
	ReasonCeiling   = "ceiling"
	ReasonInvaded   = "invaded"
	ReasonCleared   = "cleared"
	ReasonNoMoves   = "no moves"
	ReasonWin       = "win"
	ReasonDraw      = "draw"
	ReasonBoardFull = "board full"
)
