package memory

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

const (
	cardW = 7
	cardH = 3
)

// Label is the face of a card value: A, B, C and so on.
func Label(v int) string {
	return string(rune('A' + v%26))
}

// Render draws the card grid with face-down cards as '?'.
func (Rules) Render(s State, dst *core.Screen) {
	rows := (len(s.Cards) + Columns - 1) / Columns
	w, h := Columns*(cardW+1), rows*(cardH+1)
	ox, oy := (dst.Width()-w)/2, (dst.Height()-h)/2+1

	dst.DrawTextCentered(oy-2, fmt.Sprintf("Moves: %d   Pairs: %d/%d", s.Moves, len(s.Matched)/2, len(s.Cards)/2))

	for i, v := range s.Cards {
		x := ox + (i%Columns)*(cardW+1)
		y := oy + (i/Columns)*(cardH+1)

		border := core.ColorBlue
		face, color := "?", core.ColorBlue
		switch {
		case slices.Contains(s.Matched, i):
			border, face, color = core.ColorGray, Label(v), core.ColorGreen
		case slices.Contains(s.Flipped, i):
			border, face, color = core.ColorWhite, Label(v), core.ColorYellow
		}
		if i == s.Cursor && !s.Won {
			border = core.ColorYellow
		}
		dst.DrawBox(core.NewRect(x, y, cardW, cardH), border)
		dst.DrawTextColor(x+cardW/2, y+1, face, color)
	}

	if s.Won {
		dst.DrawPanel(dst.Width()/2, dst.Height()/2, "YOU WIN!", fmt.Sprintf("Completed in %d moves", s.Moves), "Press R to play again")
	}
}
