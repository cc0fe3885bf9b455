// Package flappy implements Flappy Bird: flap through gaps in pipes that
// scroll in from the right.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Pipe is a pair of pipes sharing one gap.
type Pipe struct {
	X         float64 `json:"x"`
	TopHeight int     `json:"topHeight"`
	Passed    bool    `json:"passed"`
}

// State is one Flappy position. Coordinates are play-field units with y
// growing downward.
type State struct {
	Started bool          `json:"started"`
	BirdY   float64       `json:"birdY"`
	Vel     float64       `json:"velocity"`
	Pipes   []Pipe        `json:"pipes"`
	Since   time.Duration `json:"sinceSpawn"`
	Score   int           `json:"score"`
	Over    bool          `json:"over"`
	Reason  string        `json:"reason,omitempty"`
}

// Status implements engine.State.
func (s State) Status() core.GameState {
	return core.GameState{Score: s.Score, GameOver: s.Over, Reason: s.Reason}
}

// Rules is the Flappy transition function.
type Rules struct {
	cfg config.FlappyConfig
}

// NewRules builds the rules from config.
func NewRules(cfg config.FlappyConfig) Rules {
	return Rules{cfg: cfg}
}

func (Rules) ID() string                { return "flappy" }
func (Rules) Title() string             { return "Flappy Bird" }
func (r Rules) Interval() time.Duration { return r.cfg.Interval }

// Init parks the bird mid-field. Nothing moves until the first flap.
func (r Rules) Init(*rand.Rand) State {
	return State{BirdY: float64(r.cfg.Field.Height-r.cfg.Bird.Height) / 2}
}

// Bird returns the bird's hitbox, horizontally centred in the field.
func (r Rules) Bird(s State) core.RectF {
	b := r.cfg.Bird
	return core.RectF{
		X: float64(r.cfg.Field.Width-b.Width) / 2,
		Y: s.BirdY,
		W: float64(b.Width),
		H: float64(b.Height),
	}
}

// TopRect is the upper pipe of p.
func (r Rules) TopRect(p Pipe) core.RectF {
	return core.RectF{X: p.X, Y: 0, W: float64(r.cfg.Pipes.Width), H: float64(p.TopHeight)}
}

// BottomRect is the lower pipe of p.
func (r Rules) BottomRect(p Pipe) core.RectF {
	y := float64(p.TopHeight + r.cfg.Pipes.Gap)
	return core.RectF{X: p.X, Y: y, W: float64(r.cfg.Pipes.Width), H: float64(r.cfg.Field.Height) - y}
}

// Step integrates the bird, scrolls and spawns pipes, scores passed pipes
// and checks collisions.
func (r Rules) Step(s State, in core.InputFrame, rng *rand.Rand) (State, bool) {
	jumped := in.Has(core.ActionJump) || in.Has(core.ActionUp)
	if jumped {
		s.Started = true
		s.Vel = r.cfg.Bird.JumpVel
	}
	if !s.Started {
		return s, false
	}

	y := s.BirdY + s.Vel
	s.Vel += r.cfg.Bird.Gravity
	maxY := float64(r.cfg.Field.Height - r.cfg.Bird.Height)
	switch {
	case y <= 0:
		s.Over, s.Reason = true, core.ReasonCeiling
		return s, true
	case y >= maxY:
		s.Over, s.Reason = true, core.ReasonGround
		return s, true
	}
	s.BirdY = y

	s.Pipes = r.scroll(s.Pipes, &s.Score)

	s.Since += in.Elapsed
	for r.cfg.Pipes.SpawnEvery > 0 && s.Since >= r.cfg.Pipes.SpawnEvery {
		s.Since -= r.cfg.Pipes.SpawnEvery
		s.Pipes = append(s.Pipes, r.spawn(rng))
	}

	bird := r.Bird(s)
	for _, p := range s.Pipes {
		if bird.Intersects(r.TopRect(p)) || bird.Intersects(r.BottomRect(p)) {
			s.Over, s.Reason = true, core.ReasonPipe
			break
		}
	}
	return s, true
}

// scroll moves pipes left into a fresh slice, drops those fully off-field
// and scores each pipe once as its centre passes the bird's centre.
func (r Rules) scroll(pipes []Pipe, score *int) []Pipe {
	pc := r.cfg.Pipes
	birdCentre := float64(r.cfg.Field.Width) / 2
	out := make([]Pipe, 0, len(pipes)+1)
	for _, p := range pipes {
		p.X -= float64(pc.Speed)
		if p.X <= -float64(pc.Width) {
			continue
		}
		if !p.Passed && p.X+float64(pc.Width)/2 <= birdCentre {
			p.Passed = true
			*score++
		}
		out = append(out, p)
	}
	return out
}

func (r Rules) spawn(rng *rand.Rand) Pipe {
	pc := r.cfg.Pipes
	span := r.cfg.Field.Height - pc.Gap - pc.BottomSlack
	top := pc.MinTop
	if span > 0 {
		top += rng.Intn(span)
	}
	return Pipe{X: float64(r.cfg.Field.Width), TopHeight: top}
}
