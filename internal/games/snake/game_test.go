package snake

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

func testRules() Rules {
	return NewRules(config.DefaultGames().Snake)
}

func TestInit(t *testing.T) {
	s := testRules().Init(rand.New(rand.NewSource(1)))
	if len(s.Body) != 1 || s.Head() != (Point{10, 10}) {
		t.Fatalf("start body = %v, want [{10 10}]", s.Body)
	}
	if s.Dir != Right {
		t.Errorf("start dir = %v, want right", s.Dir)
	}
	if s.Occupied(s.Food) {
		t.Errorf("food %v placed on the snake", s.Food)
	}
}

func TestStepMovesHead(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(1))
	s := State{Size: 20, Body: []Point{{5, 5}, {4, 5}, {3, 5}}, Dir: Right, Food: Point{0, 0}}

	tests := []struct {
		name   string
		action core.Action
		head   Point
		dir    Direction
	}{
		{"no input keeps heading", core.ActionNone, Point{6, 5}, Right},
		{"turn up", core.ActionUp, Point{5, 4}, Up},
		{"turn down", core.ActionDown, Point{5, 6}, Down},
		{"reversal ignored", core.ActionLeft, Point{6, 5}, Right},
		{"non-move action ignored", core.ActionJump, Point{6, 5}, Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := r.Step(s, core.Press(tt.action), rng)
			if !changed {
				t.Fatal("every tick moves the snake")
			}
			if next.Head() != tt.head || next.Dir != tt.dir {
				t.Errorf("head=%v dir=%v, want %v %v", next.Head(), next.Dir, tt.head, tt.dir)
			}
			if len(next.Body) != 3 {
				t.Errorf("length = %d, want 3", len(next.Body))
			}
			if next.Body[1] != (Point{5, 5}) {
				t.Errorf("body did not follow the head: %v", next.Body)
			}
		})
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	r := testRules()
	body := []Point{{5, 5}, {4, 5}, {3, 5}}
	s := State{Size: 20, Body: body, Dir: Right, Food: Point{6, 5}}

	r.Step(s, core.Press(core.ActionNone), rand.New(rand.NewSource(1)))
	if body[0] != (Point{5, 5}) || len(s.Body) != 3 {
		t.Errorf("input state modified: %v", s.Body)
	}
}

func TestEatGrows(t *testing.T) {
	r := testRules()
	s := State{Size: 20, Body: []Point{{5, 5}, {4, 5}}, Dir: Right, Food: Point{6, 5}}

	next, _ := r.Step(s, core.Press(core.ActionNone), rand.New(rand.NewSource(3)))
	if len(next.Body) != 3 {
		t.Fatalf("length after eating = %d, want 3", len(next.Body))
	}
	if next.Body[2] != (Point{4, 5}) {
		t.Errorf("tail should stay put when eating: %v", next.Body)
	}
	if next.Score != 10 || next.Eaten != 1 {
		t.Errorf("score=%d eaten=%d, want 10 1", next.Score, next.Eaten)
	}
	if next.Food == s.Food || next.Occupied(next.Food) {
		t.Errorf("food not relocated to a free cell: %v", next.Food)
	}
}

func TestCollisions(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		state  State
		action core.Action
		reason string
	}{
		{
			name:   "right wall",
			state:  State{Size: 20, Body: []Point{{19, 3}}, Dir: Right},
			reason: core.ReasonWall,
		},
		{
			name:   "top wall",
			state:  State{Size: 20, Body: []Point{{4, 0}}, Dir: Right},
			action: core.ActionUp,
			reason: core.ReasonWall,
		},
		{
			name: "own body",
			state: State{Size: 20, Dir: Up, Body: []Point{
				{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6},
			}},
			action: core.ActionRight,
			reason: core.ReasonSelf,
		},
		{
			name: "tail cell counts",
			state: State{Size: 20, Dir: Left, Body: []Point{
				{5, 5}, {6, 5}, {6, 6}, {5, 6},
			}},
			action: core.ActionDown,
			reason: core.ReasonSelf,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.state.Food = Point{0, 19}
			next, _ := r.Step(tt.state, core.Press(tt.action), rng)
			if !next.Over || next.Reason != tt.reason {
				t.Fatalf("over=%v reason=%q, want %q", next.Over, next.Reason, tt.reason)
			}
			if next.Head() != tt.state.Head() || len(next.Body) != len(tt.state.Body) {
				t.Errorf("snake moved on collision: %v", next.Body)
			}
			if next.Status().Won {
				t.Error("collision is not a win")
			}
		})
	}
}

func TestBoardFullWins(t *testing.T) {
	r := NewRules(config.SnakeConfig{GridSize: 2, FoodScore: 10})
	s := State{Size: 2, Body: []Point{{0, 1}, {0, 0}, {1, 0}}, Dir: Right, Food: Point{1, 1}}

	next, _ := r.Step(s, core.Press(core.ActionNone), rand.New(rand.NewSource(1)))
	if !next.Over || next.Reason != core.ReasonBoardFull {
		t.Fatalf("over=%v reason=%q, want board full", next.Over, next.Reason)
	}
	if !next.Status().Won {
		t.Error("a full board should count as a win")
	}
	if next.Food != NoFood {
		t.Errorf("food = %v, want none", next.Food)
	}
}

// Random play: length tracks food eaten, and the head stays on the board
// and off the body while the game runs.
func TestRandomPlayInvariants(t *testing.T) {
	r := testRules()
	actions := []core.Action{core.ActionNone, core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := r.Init(rng)
		for i := 0; i < 500 && !s.Over; i++ {
			s, _ = r.Step(s, core.Press(actions[rng.Intn(len(actions))]), rng)
			if len(s.Body) != 1+s.Eaten {
				t.Fatalf("seed %d: length %d with %d eaten", seed, len(s.Body), s.Eaten)
			}
			if s.Over {
				break
			}
			h := s.Head()
			if h.X < 0 || h.X >= s.Size || h.Y < 0 || h.Y >= s.Size {
				t.Fatalf("seed %d: head %v off the board", seed, h)
			}
			for _, p := range s.Body[1:] {
				if p == h {
					t.Fatalf("seed %d: head %v on the body", seed, h)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 12345}
	g1 := New(config.DefaultGames().Snake, rc)
	g2 := New(config.DefaultGames().Snake, rc)

	for i := range 100 {
		in := core.InputFrame{}
		switch i {
		case 3:
			in.Action = core.ActionDown
		case 8:
			in.Action = core.ActionLeft
		}
		g1.Step(in)
		g2.Step(in)
	}

	a, b := g1.Current(), g2.Current()
	if a.Score != b.Score || a.Head() != b.Head() || a.Food != b.Food || a.Over != b.Over {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRender(t *testing.T) {
	dst := core.NewScreen(80, 24)
	s := State{Size: 20, Body: []Point{{1, 1}}, Food: Point{5, 5}, Over: true, Reason: core.ReasonWall}
	testRules().Render(s, dst)

	out := dst.String()
	for _, want := range []string{"Score: 0", "GAME OVER", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
