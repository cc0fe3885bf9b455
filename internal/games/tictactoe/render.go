package tictactoe

import (
	"fmt"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

const (
	cellW = 7
	cellH = 3
)

// Render draws the grid centred, highlighting the cursor cell.
func (Rules) Render(s State, dst *core.Screen) {
	w, h := 3*cellW+4, 3*cellH+4
	ox, oy := (dst.Width()-w)/2, (dst.Height()-h)/2+1

	status := fmt.Sprintf("%s to move", s.Turn)
	switch {
	case s.Winner != Empty:
		status = fmt.Sprintf("%s wins!", s.Winner)
	case s.Draw:
		status = "It's a draw!"
	}
	dst.DrawTextCentered(oy-2, "TIC-TAC-TOE")
	dst.DrawTextCentered(oy-1, status)

	for i, m := range s.Board {
		x := ox + 1 + (i%3)*(cellW+1)
		y := oy + 1 + (i/3)*(cellH+1)
		border := core.ColorGray
		if i == s.Cursor && !s.Over() {
			border = core.ColorYellow
		}
		dst.DrawBox(core.NewRect(x, y, cellW, cellH), border)
		color := core.ColorBlue
		if m == O {
			color = core.ColorRed
		}
		dst.DrawTextColor(x+cellW/2, y+1, m.String(), color)
	}

	if s.Over() {
		dst.DrawTextCentered(oy+h, "Press R to play again")
	}
}
