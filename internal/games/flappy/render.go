package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Render scales the play-field onto the screen below a one-line header.
func (r Rules) Render(s State, dst *core.Screen) {
	fw, fh := r.cfg.Field.Width, r.cfg.Field.Height
	sw, sh := dst.Width(), dst.Height()-1
	if sw <= 0 || sh <= 0 {
		return
	}
	toX := func(x float64) int { return core.Scale(int(math.Round(x)), fw, sw) }
	toY := func(y float64) int { return 1 + core.Scale(int(math.Round(y)), fh, sh) }

	dst.DrawText(0, 0, fmt.Sprintf("Score: %d", s.Score))

	fill := func(rf core.RectF, ch rune, c core.Color) {
		x0, y0 := toX(rf.X), toY(rf.Y)
		x1, y1 := toX(rf.Right()), toY(rf.Bottom())
		dst.DrawRect(core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1)), ch, c)
	}

	for _, p := range s.Pipes {
		fill(r.TopRect(p), '█', core.ColorGreen)
		fill(r.BottomRect(p), '█', core.ColorGreen)
	}
	fill(r.Bird(s), '●', core.ColorYellow)

	cx, cy := sw/2, 1+sh/2
	switch {
	case s.Over:
		dst.DrawPanel(cx, cy, "GAME OVER", fmt.Sprintf("Score: %d", s.Score), "Press R to restart")
	case !s.Started:
		dst.DrawPanel(cx, cy-4, "FLAPPY BIRD", "Press Space to flap")
	}
}
