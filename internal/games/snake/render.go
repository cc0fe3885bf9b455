package snake

import (
	"fmt"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

// Render draws the field in a box, two columns per cell so the grid looks
// square in a terminal.
func (Rules) Render(s State, dst *core.Screen) {
	w, h := s.Size*2+2, s.Size+2
	ox := (dst.Width() - w) / 2
	oy := (dst.Height() - h) / 2
	if oy < 1 {
		oy = 1
	}

	dst.DrawText(ox, oy-1, fmt.Sprintf("Score: %d  Length: %d", s.Score, len(s.Body)))
	dst.DrawBox(core.Rect{X: ox, Y: oy, W: w, H: h}, core.ColorGray)

	cell := func(p Point, r rune, c core.Color) {
		x, y := ox+1+p.X*2, oy+1+p.Y
		dst.SetColor(x, y, r, c)
		dst.SetColor(x+1, y, r, c)
	}

	if s.Food != NoFood {
		cell(s.Food, '●', core.ColorRed)
	}
	for i := len(s.Body) - 1; i >= 0; i-- {
		if i == 0 {
			cell(s.Body[i], '█', core.ColorYellow)
			continue
		}
		cell(s.Body[i], '▓', core.ColorGreen)
	}

	if s.Over {
		title := "GAME OVER"
		if s.Reason == core.ReasonBoardFull {
			title = "YOU WIN"
		}
		dst.DrawPanel(ox+w/2, oy+h/2, title, fmt.Sprintf("Score: %d", s.Score), "Press R to restart")
	}
}
