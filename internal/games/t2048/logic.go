package t2048

// BoardSize is the board dimension.
const BoardSize = 4

// Board is a BoardSize x BoardSize grid; 0 is an empty cell.
type Board [BoardSize][BoardSize]int

// Direction is a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Cell is a board coordinate.
type Cell struct{ X, Y int }

// slideRow collapses a row to the left and merges equal neighbours in one
// pass. A tile produced by a merge does not merge again in the same move.
func slideRow(row [BoardSize]int) (result [BoardSize]int, score int) {
	writePos := 0
	mergeable := false

	for _, v := range row {
		if v == 0 {
			continue
		}
		if mergeable && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			mergeable = false
			continue
		}
		result[writePos] = v
		writePos++
		mergeable = true
	}

	return result, score
}

func reverseRow(row [BoardSize]int) [BoardSize]int {
	var result [BoardSize]int
	for i := range BoardSize {
		result[i] = row[BoardSize-1-i]
	}
	return result
}

func transpose(board Board) Board {
	var result Board
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = board[x][y]
		}
	}
	return result
}

func slideLeft(board Board) (Board, int) {
	var out Board
	total := 0
	for y := range BoardSize {
		row, score := slideRow(board[y])
		out[y] = row
		total += score
	}
	return out, total
}

func slideRight(board Board) (Board, int) {
	var out Board
	total := 0
	for y := range BoardSize {
		row, score := slideRow(reverseRow(board[y]))
		out[y] = reverseRow(row)
		total += score
	}
	return out, total
}

// Slide moves every tile in dir. It returns the new board, the points
// gained from merges and whether any cell changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	var (
		out   Board
		score int
	)
	switch dir {
	case DirLeft:
		out, score = slideLeft(board)
	case DirRight:
		out, score = slideRight(board)
	case DirUp:
		out, score = slideLeft(transpose(board))
		out = transpose(out)
	case DirDown:
		out, score = slideRight(transpose(board))
		out = transpose(out)
	default:
		return board, 0, false
	}
	return out, score, out != board
}

// EmptyCells lists empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{x, y})
			}
		}
	}
	return cells
}

// HasPossibleMerge reports whether two adjacent cells (row or column) hold
// the same non-zero value.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			v := board[y][x]
			if v == 0 {
				continue
			}
			if x < BoardSize-1 && board[y][x+1] == v {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == v {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports a full board with no possible merge.
func IsGameOver(board Board) bool {
	return len(EmptyCells(board)) == 0 && !HasPossibleMerge(board)
}

// MaxTile returns the largest tile value.
func MaxTile(board Board) int {
	best := 0
	for y := range BoardSize {
		for x := range BoardSize {
			best = max(best, board[y][x])
		}
	}
	return best
}

// TileCount returns the number of non-empty cells.
func TileCount(board Board) int {
	return BoardSize*BoardSize - len(EmptyCells(board))
}
