// Package snake implements classic Snake on a walled square grid.
package snake

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Point is a grid cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit step on the grid.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

func (d Direction) opposite(o Direction) bool {
	return d.DX == -o.DX && d.DY == -o.DY
}

// NoFood marks a board with no free cell left.
var NoFood = Point{-1, -1}

// State is one Snake position. Body[0] is the head.
type State struct {
	Size   int       `json:"size"`
	Body   []Point   `json:"body"`
	Dir    Direction `json:"dir"`
	Food   Point     `json:"food"`
	Score  int       `json:"score"`
	Eaten  int       `json:"eaten"`
	Over   bool      `json:"over"`
	Reason string    `json:"reason,omitempty"`
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	return core.GameState{
		Score:    s.Score,
		GameOver: s.Over,
		Won:      s.Reason == core.ReasonBoardFull,
		Reason:   s.Reason,
	}
}

// Head returns the head cell.
func (s State) Head() Point { return s.Body[0] }

// Occupied reports whether p is part of the snake.
func (s State) Occupied(p Point) bool {
	return slices.Contains(s.Body, p)
}

// Rules is the Snake transition function.
type Rules struct {
	cfg config.SnakeConfig
}

// NewRules builds the rules from config.
func NewRules(cfg config.SnakeConfig) Rules {
	return Rules{cfg: cfg}
}

func (Rules) ID() string                { return "snake" }
func (Rules) Title() string             { return "Snake" }
func (r Rules) Interval() time.Duration { return r.cfg.Interval }

// Init places a one-segment snake heading right and the first food.
func (r Rules) Init(rng *rand.Rand) State {
	s := State{
		Size: r.cfg.GridSize,
		Body: []Point{{r.cfg.StartX, r.cfg.StartY}},
		Dir:  Right,
	}
	s.Food = placeFood(s, rng)
	return s
}

// Step turns (unless the turn reverses the heading) and advances one cell.
// Hitting a wall or any segment ends the game with the snake where it was.
func (r Rules) Step(s State, in core.InputFrame, rng *rand.Rand) (State, bool) {
	if dx, dy, ok := in.Action.Direction(); ok {
		if d := (Direction{dx, dy}); !d.opposite(s.Dir) {
			s.Dir = d
		}
	}

	head := s.Head()
	next := Point{head.X + s.Dir.DX, head.Y + s.Dir.DY}

	if next.X < 0 || next.X >= s.Size || next.Y < 0 || next.Y >= s.Size {
		s.Over, s.Reason = true, core.ReasonWall
		return s, true
	}
	if s.Occupied(next) {
		s.Over, s.Reason = true, core.ReasonSelf
		return s, true
	}

	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, next)
	if next == s.Food {
		body = append(body, s.Body...)
		s.Body = body
		s.Score += r.cfg.FoodScore
		s.Eaten++
		s.Food = placeFood(s, rng)
		if s.Food == NoFood {
			s.Over, s.Reason = true, core.ReasonBoardFull
		}
		return s, true
	}
	body = append(body, s.Body[:len(s.Body)-1]...)
	s.Body = body
	return s, true
}

// placeFood picks a random cell not covered by the snake.
func placeFood(s State, rng *rand.Rand) Point {
	free := make([]Point, 0, s.Size*s.Size)
	for y := range s.Size {
		for x := range s.Size {
			if p := (Point{x, y}); !s.Occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return NoFood
	}
	return free[rng.Intn(len(free))]
}
