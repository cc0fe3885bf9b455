package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/quiz-arcade/internal/core"
)

const (
	cellWidth  = 7
	cellHeight = 2
)

// Render draws the board centred with the score above it.
func (Rules) Render(s State, dst *core.Screen) {
	boardW := BoardSize*cellWidth + 1
	boardH := BoardSize*cellHeight + 1
	boardX := (dst.Width() - boardW) / 2
	boardY := 3

	dst.DrawTextColor(boardX+(boardW-4)/2, 0, "2048", core.ColorYellow)
	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))
	info := fmt.Sprintf("Max: %d", MaxTile(s.Board))
	dst.DrawText(boardX+boardW-len(info), 1, info)

	drawGrid(dst, boardX, boardY)
	for y := range BoardSize {
		for x := range BoardSize {
			v := s.Board[y][x]
			if v == 0 {
				continue
			}
			text := strconv.Itoa(v)
			px := boardX + x*cellWidth + 1 + (cellWidth-1-len(text))/2
			py := boardY + y*cellHeight + 1
			dst.DrawTextColor(px, py, text, tileColor(v))
		}
	}

	cx, cy := boardX+boardW/2, boardY+boardH/2
	switch {
	case s.Over:
		dst.DrawPanel(cx, cy, "GAME OVER", fmt.Sprintf("Max tile: %d", MaxTile(s.Board)), "Press R to restart")
	case s.Won:
		dst.DrawTextColor(boardX, boardY+boardH, "Target reached! Keep going.", core.ColorGreen)
	}
}

func drawGrid(dst *core.Screen, ox, oy int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px, py := ox+x*cellWidth, oy+y*cellHeight
			dst.SetColor(px, py, junction(x, y), core.ColorGray)
			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

func junction(x, y int) rune {
	last := BoardSize
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	}
	return '┼'
}

func tileColor(v int) core.Color {
	switch {
	case v <= 4:
		return core.ColorWhite
	case v <= 16:
		return core.ColorOrange
	case v <= 64:
		return core.ColorRed
	case v <= 512:
		return core.ColorYellow
	}
	return core.ColorGreen
}
