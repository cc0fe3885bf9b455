package memory

import (
	"context"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
)

func testRules() Rules {
	return NewRules(config.DefaultGames().Memory)
}

func TestDeal(t *testing.T) {
	s := testRules().Init(rand.New(rand.NewSource(4)))
	if len(s.Cards) != 16 {
		t.Fatalf("cards = %d, want 16", len(s.Cards))
	}
	counts := map[int]int{}
	for _, v := range s.Cards {
		counts[v]++
	}
	for v := range 8 {
		if counts[v] != 2 {
			t.Errorf("value %d dealt %d times", v, counts[v])
		}
	}

	other := testRules().Init(rand.New(rand.NewSource(5)))
	if slices.Equal(s.Cards, other.Cards) {
		t.Error("different seeds dealt the same order")
	}
}

func small() State {
	return State{Cards: []int{0, 1, 0, 1}}
}

func TestMatch(t *testing.T) {
	r := testRules()
	s, _ := r.Step(small(), core.SelectCell(0), nil)
	if !slices.Equal(s.Flipped, []int{0}) || s.Moves != 0 {
		t.Fatalf("after first flip: flipped=%v moves=%d", s.Flipped, s.Moves)
	}

	s, _ = r.Step(s, core.SelectCell(2), nil)
	if !slices.Equal(s.Matched, []int{0, 2}) || len(s.Flipped) != 0 {
		t.Fatalf("matched=%v flipped=%v, want pair matched", s.Matched, s.Flipped)
	}
	if s.Moves != 1 || s.Score != 10 || s.Won {
		t.Errorf("moves=%d score=%d won=%v", s.Moves, s.Score, s.Won)
	}
	if r.Wake(s) != 0 {
		t.Error("a match needs no wake")
	}
}

func TestMismatchFlipsBack(t *testing.T) {
	r := testRules()
	s, _ := r.Step(small(), core.SelectCell(0), nil)
	s, _ = r.Step(s, core.SelectCell(1), nil)

	if len(s.Flipped) != 2 || s.Moves != 1 {
		t.Fatalf("flipped=%v moves=%d", s.Flipped, s.Moves)
	}
	if r.Wake(s) != time.Second {
		t.Fatalf("wake = %v, want 1s", r.Wake(s))
	}

	if _, changed := r.Step(s, core.SelectCell(2), nil); changed {
		t.Error("third card flipped while two are showing")
	}

	s, _ = r.Step(s, core.InputFrame{Elapsed: 600 * time.Millisecond}, nil)
	if len(s.Flipped) != 2 || r.Wake(s) != 400*time.Millisecond {
		t.Fatalf("after 600ms: flipped=%v wake=%v", s.Flipped, r.Wake(s))
	}
	s, _ = r.Step(s, core.InputFrame{Elapsed: 400 * time.Millisecond}, nil)
	if len(s.Flipped) != 0 || r.Wake(s) != 0 {
		t.Errorf("after 1s: flipped=%v wake=%v, want both hidden", s.Flipped, r.Wake(s))
	}
}

func TestIgnoredClicks(t *testing.T) {
	r := testRules()
	s, _ := r.Step(small(), core.SelectCell(0), nil)
	s, _ = r.Step(s, core.SelectCell(2), nil) // matched
	s, _ = r.Step(s, core.SelectCell(1), nil) // face-up

	for _, target := range []int{0, 2, 1, -1, 4} {
		if next, changed := r.Step(s, core.SelectCell(target), nil); changed || next.Moves != s.Moves {
			t.Errorf("click on %d was not ignored", target)
		}
	}
}

func TestWin(t *testing.T) {
	r := testRules()
	s := small()
	for _, c := range []int{0, 2, 3, 1} {
		s, _ = r.Step(s, core.SelectCell(c), nil)
	}
	if !s.Won || s.Moves != 2 || s.Score != 20 {
		t.Fatalf("won=%v moves=%d score=%d", s.Won, s.Moves, s.Score)
	}
	st := s.Status()
	if !st.GameOver || !st.Won || st.Reason != core.ReasonWin {
		t.Errorf("status = %+v", st)
	}
}

// Random clicking: matched stays even and bounded, and the game is won
// exactly when every card is matched.
func TestRandomPlayInvariants(t *testing.T) {
	r := testRules()
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := r.Init(rng)
		for i := 0; i < 5000 && !s.Won; i++ {
			in := core.SelectCell(rng.Intn(len(s.Cards)))
			if r.Wake(s) > 0 {
				in = core.InputFrame{Elapsed: time.Second}
			}
			s, _ = r.Step(s, in, rng)

			if len(s.Matched)%2 != 0 || len(s.Matched) > len(s.Cards) {
				t.Fatalf("seed %d: matched = %v", seed, s.Matched)
			}
			if s.Won != (len(s.Matched) == len(s.Cards)) {
				t.Fatalf("seed %d: won=%v with %d/%d matched", seed, s.Won, len(s.Matched), len(s.Cards))
			}
		}
		if !s.Won {
			t.Errorf("seed %d: not won after 5000 clicks", seed)
		}
	}
}

func TestCursor(t *testing.T) {
	r := testRules()
	s := r.Init(rand.New(rand.NewSource(1)))

	s, _ = r.Step(s, core.Press(core.ActionRight), nil)
	s, _ = r.Step(s, core.Press(core.ActionDown), nil)
	if s.Cursor != 5 {
		t.Fatalf("cursor = %d, want 5", s.Cursor)
	}
	s, _ = r.Step(s, core.Press(core.ActionConfirm), nil)
	if !slices.Equal(s.Flipped, []int{5}) {
		t.Errorf("confirm flipped %v, want [5]", s.Flipped)
	}
}

func TestSessionHidesMismatchAfterDelay(t *testing.T) {
	cfg := config.MemoryConfig{Pairs: 2, FlipBack: 20 * time.Millisecond, PairScore: 10}
	g := New(cfg, core.RuntimeConfig{Seed: 3})
	cards := g.Current().Cards
	a, b := 0, slices.Index(cards[1:], 1-cards[0])+1

	sess := engine.NewSession(g)
	started := make(chan struct{})
	hidden := make(chan struct{}, 1)
	sess.Subscribe(func(f engine.Frame) {
		if f.Tick == 1 {
			close(started)
		}
		st := f.Snapshot.(State)
		if st.Moves == 1 && len(st.Flipped) == 0 {
			select {
			case hidden <- struct{}{}:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("session did not start")
	}

	sess.Push(core.SelectCell(a))
	sess.Push(core.SelectCell(b))

	select {
	case <-hidden:
	case <-time.After(2 * time.Second):
		t.Fatal("mismatched pair never turned back")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestRender(t *testing.T) {
	r := testRules()
	dst := core.NewScreen(80, 24)
	s := State{Cards: []int{0, 1, 0, 1}, Flipped: []int{1}, Matched: []int{0, 2}}
	r.Render(s, dst)

	out := dst.String()
	for _, want := range []string{"Moves: 0", "Pairs: 1/2", "A", "B", "?"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
