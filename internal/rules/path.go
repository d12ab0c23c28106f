package rules

import (
	"fmt"

	"github.com/immadshahid/ifchess/internal/board"
)

// Between returns the squares strictly between the endpoints of m, walking
// from source to destination. m must be on the board and lie on a rank,
// file or diagonal; otherwise the result is nil.
func Between(m board.Move) []board.Square {
	df, dr := m.Delta()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}

	stepF, stepR := sign(df), sign(dr)
	var squares []board.Square
	f, r := m.FromFile+stepF, m.FromRow+stepR
	for f != m.ToFile || r != m.ToRow {
		squares = append(squares, board.NewSquare(f, r))
		f += stepF
		r += stepR
	}
	return squares
}

// clearPath fails on the first occupied square between source and
// destination, whatever its color.
func clearPath(b *board.Board, m board.Move) error {
	for _, sq := range Between(m) {
		if !b.IsEmpty(sq) {
			return fmt.Errorf("%w at %s", ErrPathBlocked, sq)
		}
	}
	return nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
