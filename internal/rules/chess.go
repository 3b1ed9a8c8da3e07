package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// ChessEngine implements Engine over FEN-encoded chess positions.
type ChessEngine struct{}

func NewChessEngine() ChessEngine {
	return ChessEngine{}
}

func (ChessEngine) InitialPosition() string {
	return chess.NewGame().Position().String()
}

// Apply accepts moves in standard algebraic notation ("Nf3", "e4") and falls
// back to UCI notation ("g1f3") before rejecting.
func (ChessEngine) Apply(position, move string) (string, error) {
	fen, err := chess.FEN(position)
	if err != nil {
		return "", fmt.Errorf("bad position %q: %w", position, err)
	}
	game := chess.NewGame(fen)

	if err := game.MoveStr(move); err != nil {
		m, uciErr := chess.UCINotation{}.Decode(game.Position(), move)
		if uciErr != nil {
			return "", fmt.Errorf("illegal move %q: %w", move, err)
		}
		if err := game.Move(m); err != nil {
			return "", fmt.Errorf("illegal move %q: %w", move, err)
		}
	}

	return game.Position().String(), nil
}
