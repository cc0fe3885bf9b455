// Package invaders implements Space Invaders: a marching enemy block, a
// ship that slides along the bottom and shots that travel straight up.
package invaders

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Bullet is a player shot, positioned by its top-left corner.
type Bullet struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Enemy is a live invader, positioned by its top-left corner.
type Enemy struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is one Space Invaders position. Dead enemies and spent bullets
// are removed, not flagged.
type State struct {
	PlayerX int      `json:"playerX"`
	Bullets []Bullet `json:"bullets"`
	Enemies []Enemy  `json:"enemies"`
	Dir     int      `json:"dir"` // +1 marching right, -1 left
	Score   int      `json:"score"`
	Over    bool     `json:"over"`
	Won     bool     `json:"won"`
	Reason  string   `json:"reason,omitempty"`
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	return core.GameState{Score: s.Score, GameOver: s.Over, Won: s.Won, Reason: s.Reason}
}

// Rules is the Space Invaders transition function.
type Rules struct {
	cfg config.InvadersConfig
}

// NewRules builds the rules from config.
func NewRules(cfg config.InvadersConfig) Rules {
	return Rules{cfg: cfg}
}

func (Rules) ID() string                { return "invaders" }
func (Rules) Title() string             { return "Space Invaders" }
func (r Rules) Interval() time.Duration { return r.cfg.Interval }

// Init centres the ship and lays out the enemy formation.
func (r Rules) Init(*rand.Rand) State {
	e := r.cfg.Enemies
	enemies := make([]Enemy, 0, e.Rows*e.Cols)
	for row := range e.Rows {
		for col := range e.Cols {
			enemies = append(enemies, Enemy{
				X: col * (e.Width + e.ColGap),
				Y: row*(e.Height+e.RowGap) + e.OffsetY,
			})
		}
	}
	return State{
		PlayerX: (r.cfg.Field.Width - r.cfg.Player.Width) / 2,
		Enemies: enemies,
		Dir:     1,
	}
}

// Player returns the ship's hitbox.
func (r Rules) Player(s State) core.Rect {
	p := r.cfg.Player
	return core.NewRect(s.PlayerX, r.cfg.Field.Height-p.Height, p.Width, p.Height)
}

// BulletRect returns a shot's hitbox.
func (r Rules) BulletRect(b Bullet) core.Rect {
	return core.NewRect(b.X, b.Y, r.cfg.Bullet.Width, r.cfg.Bullet.Height)
}

// EnemyRect returns an invader's hitbox.
func (r Rules) EnemyRect(e Enemy) core.Rect {
	return core.NewRect(e.X, e.Y, r.cfg.Enemies.Width, r.cfg.Enemies.Height)
}

// Step applies the input, then moves bullets, resolves hits and marches
// the formation.
func (r Rules) Step(s State, in core.InputFrame, _ *rand.Rand) (State, bool) {
	pc := r.cfg.Player
	switch in.Action {
	case core.ActionLeft:
		s.PlayerX = core.Clamp(s.PlayerX-pc.Step, 0, r.cfg.Field.Width-pc.Width)
	case core.ActionRight:
		s.PlayerX = core.Clamp(s.PlayerX+pc.Step, 0, r.cfg.Field.Width-pc.Width)
	}

	bullets := make([]Bullet, 0, len(s.Bullets)+1)
	for _, b := range s.Bullets {
		b.Y -= r.cfg.Bullet.Speed
		if b.Y > 0 {
			bullets = append(bullets, b)
		}
	}
	if in.Has(core.ActionJump) {
		bullets = append(bullets, Bullet{
			X: s.PlayerX + pc.Width/2 - r.cfg.Bullet.Width/2,
			Y: r.cfg.Field.Height - pc.Height - r.cfg.Bullet.Height,
		})
	}

	var hits int
	s.Enemies, s.Bullets, hits = r.resolveHits(s.Enemies, bullets)
	s.Score += hits * r.cfg.Enemies.Points

	if len(s.Enemies) == 0 {
		s.Over, s.Won, s.Reason = true, true, core.ReasonCleared
		return s, true
	}

	s.Enemies, s.Dir = r.march(s.Enemies, s.Dir)

	top := r.cfg.Field.Height - pc.Height
	for _, e := range s.Enemies {
		if e.Y+r.cfg.Enemies.Height >= top {
			s.Over, s.Reason = true, core.ReasonInvaded
			break
		}
	}
	return s, true
}

// resolveHits pairs each enemy with the first bullet overlapping it. A
// bullet is spent on one enemy at most.
func (r Rules) resolveHits(enemies []Enemy, bullets []Bullet) ([]Enemy, []Bullet, int) {
	spent := make([]bool, len(bullets))
	alive := make([]Enemy, 0, len(enemies))
	hits := 0
	for _, e := range enemies {
		er := r.EnemyRect(e)
		hit := false
		for i, b := range bullets {
			if !spent[i] && r.BulletRect(b).Intersects(er) {
				spent[i], hit = true, true
				break
			}
		}
		if hit {
			hits++
			continue
		}
		alive = append(alive, e)
	}

	left := bullets[:0:0]
	for i, b := range bullets {
		if !spent[i] {
			left = append(left, b)
		}
	}
	return alive, left, hits
}

// march moves the block sideways, or reverses it and drops it one enemy
// height when the move would carry any enemy past a side edge.
func (r Rules) march(enemies []Enemy, dir int) ([]Enemy, int) {
	ec := r.cfg.Enemies
	dx := dir * ec.Speed

	minX, maxX := enemies[0].X, enemies[0].X
	for _, e := range enemies[1:] {
		minX, maxX = min(minX, e.X), max(maxX, e.X)
	}

	out := make([]Enemy, len(enemies))
	if minX+dx < 0 || maxX+ec.Width+dx > r.cfg.Field.Width {
		for i, e := range enemies {
			out[i] = Enemy{X: e.X, Y: e.Y + ec.Height}
		}
		return out, -dir
	}
	for i, e := range enemies {
		out[i] = Enemy{X: e.X + dx, Y: e.Y}
	}
	return out, dir
}
