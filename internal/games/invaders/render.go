package invaders

import (
	"fmt"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Render scales the play-field onto the screen below a one-line header.
func (r Rules) Render(s State, dst *core.Screen) {
	fw, fh := r.cfg.Field.Width, r.cfg.Field.Height
	sw, sh := dst.Width(), dst.Height()-1
	if sw <= 0 || sh <= 0 {
		return
	}

	dst.DrawText(0, 0, fmt.Sprintf("Score: %d", s.Score))
	left := fmt.Sprintf("Invaders: %d", len(s.Enemies))
	dst.DrawText(sw-len(left), 0, left)

	fill := func(rc core.Rect, ch rune, c core.Color) {
		x0, y0 := core.Scale(rc.X, fw, sw), 1+core.Scale(rc.Y, fh, sh)
		x1, y1 := core.Scale(rc.Right(), fw, sw), 1+core.Scale(rc.Bottom(), fh, sh)
		dst.DrawRect(core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1)), ch, c)
	}

	for _, e := range s.Enemies {
		fill(r.EnemyRect(e), 'W', core.ColorMagenta)
	}
	for _, b := range s.Bullets {
		fill(r.BulletRect(b), '|', core.ColorYellow)
	}
	fill(r.Player(s), '▲', core.ColorGreen)

	if s.Over {
		title := "GAME OVER"
		if s.Won {
			title = "YOU WIN"
		}
		dst.DrawPanel(sw/2, 1+sh/2, title, fmt.Sprintf("Score: %d", s.Score), "Press R to restart")
	}
}
