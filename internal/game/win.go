package game

// WinDetector outcomes that are not a player symbol.
const (
	OutcomeNone = "none"
	OutcomeDraw = "draw"
)

// DetectWinner scans an NxN board for a full line of one symbol: every row,
// every column, the main diagonal, then the anti-diagonal. It returns the
// first winning symbol found, OutcomeDraw for a full board with no line, or
// OutcomeNone. The check order only matters for reporting; a full board
// cannot both hold a clean line and be a draw.
func DetectWinner(board []string, size int) string {
	if size <= 0 || len(board) != size*size {
		return OutcomeNone
	}

	lineWinner := func(start, step int) string {
		first := board[start]
		if first == "" {
			return ""
		}
		for i := 1; i < size; i++ {
			if board[start+i*step] != first {
				return ""
			}
		}
		return first
	}

	for row := 0; row < size; row++ {
		if w := lineWinner(row*size, 1); w != "" {
			return w
		}
	}
	for col := 0; col < size; col++ {
		if w := lineWinner(col, size); w != "" {
			return w
		}
	}
	if w := lineWinner(0, size+1); w != "" {
		return w
	}
	if w := lineWinner(size-1, size-1); w != "" {
		return w
	}

	for _, cell := range board {
		if cell == "" {
			return OutcomeNone
		}
	}
	return OutcomeDraw
}
