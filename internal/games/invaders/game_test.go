package invaders

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

func testRules() Rules {
	return NewRules(config.DefaultGames().Invaders)
}

// far is an enemy parked out of the way so a test state is not cleared.
var far = Enemy{X: 300, Y: 50}

func TestInitFormation(t *testing.T) {
	s := testRules().Init(nil)
	if len(s.Enemies) != 24 {
		t.Fatalf("enemies = %d, want 24", len(s.Enemies))
	}
	if s.Enemies[0] != (Enemy{0, 50}) || s.Enemies[23] != (Enemy{315, 150}) {
		t.Errorf("formation corners = %v %v", s.Enemies[0], s.Enemies[23])
	}
	if s.PlayerX != 175 || s.Dir != 1 {
		t.Errorf("player=%d dir=%d, want 175 1", s.PlayerX, s.Dir)
	}
}

func TestPlayerMovement(t *testing.T) {
	r := testRules()
	tests := []struct {
		name   string
		start  int
		action core.Action
		want   int
	}{
		{"left", 100, core.ActionLeft, 90},
		{"right", 100, core.ActionRight, 110},
		{"clamped left", 4, core.ActionLeft, 0},
		{"clamped right", 345, core.ActionRight, 350},
		{"up ignored", 100, core.ActionUp, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{PlayerX: tt.start, Enemies: []Enemy{far}, Dir: 1}
			next, _ := r.Step(s, core.Press(tt.action), nil)
			if next.PlayerX != tt.want {
				t.Errorf("player x = %d, want %d", next.PlayerX, tt.want)
			}
		})
	}
}

func TestFire(t *testing.T) {
	r := testRules()
	s := State{PlayerX: 175, Enemies: []Enemy{far}, Dir: 1}

	next, _ := r.Step(s, core.Press(core.ActionJump), nil)
	if len(next.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(next.Bullets))
	}
	if b := next.Bullets[0]; b != (Bullet{198, 455}) {
		t.Errorf("bullet = %+v, want {198 455}", b)
	}

	next, _ = r.Step(next, core.Press(core.ActionNone), nil)
	if next.Bullets[0].Y != 445 {
		t.Errorf("bullet y after a tick = %d, want 445", next.Bullets[0].Y)
	}
}

func TestBulletsPruned(t *testing.T) {
	r := testRules()
	bullets := []Bullet{{X: 10, Y: 20}, {X: 20, Y: 10}}
	s := State{Enemies: []Enemy{far}, Bullets: bullets, Dir: 1}

	next, _ := r.Step(s, core.Press(core.ActionNone), nil)
	if len(next.Bullets) != 1 || next.Bullets[0] != (Bullet{10, 10}) {
		t.Errorf("bullets = %+v, want [{10 10}]", next.Bullets)
	}
	if bullets[0].Y != 20 {
		t.Error("input bullets modified")
	}
}

func TestHits(t *testing.T) {
	r := testRules()
	target := Enemy{X: 100, Y: 100}

	tests := []struct {
		name     string
		enemies  []Enemy
		bullets  []Bullet
		killed   int
		bulletsL int
	}{
		{"overlap", []Enemy{target, far}, []Bullet{{110, 135}}, 1, 0},
		{"touching bottom edge only", []Enemy{target, far}, []Bullet{{110, 140}}, 0, 1},
		{"touching right edge only", []Enemy{target, far}, []Bullet{{140, 120}}, 0, 1},
		{"two bullets one enemy", []Enemy{target, far}, []Bullet{{110, 120}, {115, 120}}, 1, 1},
		{"one bullet two enemies", []Enemy{target, target, far}, []Bullet{{110, 120}}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{PlayerX: 0, Enemies: tt.enemies, Bullets: tt.bullets, Dir: 1}
			next, _ := r.Step(s, core.Press(core.ActionNone), nil)

			if got := len(tt.enemies) - len(next.Enemies); got != tt.killed {
				t.Errorf("killed = %d, want %d", got, tt.killed)
			}
			if next.Score != tt.killed*10 {
				t.Errorf("score = %d, want %d", next.Score, tt.killed*10)
			}
			if len(next.Bullets) != tt.bulletsL {
				t.Errorf("bullets left = %d, want %d", len(next.Bullets), tt.bulletsL)
			}
		})
	}
}

func TestClearingWins(t *testing.T) {
	r := testRules()
	s := State{Enemies: []Enemy{{X: 100, Y: 100}}, Bullets: []Bullet{{110, 135}}, Dir: 1}

	next, _ := r.Step(s, core.Press(core.ActionNone), nil)
	if !next.Over || !next.Won || next.Reason != core.ReasonCleared {
		t.Errorf("over=%v won=%v reason=%q, want cleared win", next.Over, next.Won, next.Reason)
	}
}

func TestMarch(t *testing.T) {
	r := testRules()
	tests := []struct {
		name    string
		enemies []Enemy
		dir     int
		want    []Enemy
		wantDir int
	}{
		{"moves right", []Enemy{{0, 50}, {315, 50}}, 1, []Enemy{{1, 50}, {316, 50}}, 1},
		{"moves left", []Enemy{{5, 50}, {320, 50}}, -1, []Enemy{{4, 50}, {319, 50}}, -1},
		{"reaches right edge", []Enemy{{45, 50}, {359, 50}}, 1, []Enemy{{46, 50}, {360, 50}}, 1},
		{"reverses at right edge", []Enemy{{45, 50}, {360, 50}}, 1, []Enemy{{45, 80}, {360, 80}}, -1},
		{"reverses at left edge", []Enemy{{0, 50}, {315, 50}}, -1, []Enemy{{0, 80}, {315, 80}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dir := r.march(tt.enemies, tt.dir)
			if !slices.Equal(got, tt.want) || dir != tt.wantDir {
				t.Errorf("march = %v dir %d, want %v dir %d", got, dir, tt.want, tt.wantDir)
			}
		})
	}
}

func TestInvasionLoses(t *testing.T) {
	r := testRules()
	s := State{PlayerX: 300, Enemies: []Enemy{{X: 0, Y: 440}}, Dir: 1}

	next, _ := r.Step(s, core.Press(core.ActionNone), nil)
	if !next.Over || next.Won || next.Reason != core.ReasonInvaded {
		t.Errorf("over=%v won=%v reason=%q, want invaded loss", next.Over, next.Won, next.Reason)
	}
}

// Random play: the block stays inside the side walls and the score always
// matches the number of invaders shot.
func TestRandomPlayInvariants(t *testing.T) {
	r := testRules()
	actions := []core.Action{core.ActionNone, core.ActionLeft, core.ActionRight, core.ActionJump}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := r.Init(rng)
		total := len(s.Enemies)
		for i := 0; i < 20000 && !s.Over; i++ {
			s, _ = r.Step(s, core.Press(actions[rng.Intn(len(actions))]), rng)
			if s.Score != (total-len(s.Enemies))*10 {
				t.Fatalf("seed %d: score %d with %d shot", seed, s.Score, total-len(s.Enemies))
			}
			for _, e := range s.Enemies {
				if e.X < 0 || e.X+40 > 400 {
					t.Fatalf("seed %d: enemy %v outside the field", seed, e)
				}
			}
		}
		if !s.Over {
			t.Errorf("seed %d: game did not finish", seed)
		}
	}
}

func TestRender(t *testing.T) {
	r := testRules()
	dst := core.NewScreen(80, 24)
	r.Render(r.Init(nil), dst)

	out := dst.String()
	for _, want := range []string{"Score: 0", "Invaders: 24", "W", "▲"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
