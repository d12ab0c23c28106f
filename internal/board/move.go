package board

import (
	"errors"
	"fmt"
)

// MoveLen is the exact length of a coordinate move string ("e2e4").
const MoveLen = 4

// ErrMoveLength is returned by ParseMove for input that is not exactly MoveLen bytes.
var ErrMoveLength = errors.New("move must be exactly 4 characters")

// Move is a decoded coordinate move. Coordinates are not range checked on
// decode: "i9a1" yields a Move with out-of-board values, which the rules
// package rejects before touching the board.
type Move struct {
	FromFile, FromRow int
	ToFile, ToRow     int
}

// NewMove creates a move between two on-board squares.
func NewMove(from, to Square) Move {
	return Move{
		FromFile: from.File(),
		FromRow:  from.Row(),
		ToFile:   to.File(),
		ToRow:    to.Row(),
	}
}

// ParseMove decodes "<file><rank><file><rank>". File a..h maps to 0..7,
// rank 1..8 maps to row 7..0. Any other byte still decodes, just to a
// coordinate outside the board.
func ParseMove(s string) (Move, error) {
	if len(s) != MoveLen {
		return Move{}, fmt.Errorf("%w: got %d", ErrMoveLength, len(s))
	}

	return Move{
		FromFile: int(s[0]) - 'a',
		FromRow:  8 - (int(s[1]) - '0'),
		ToFile:   int(s[2]) - 'a',
		ToRow:    8 - (int(s[3]) - '0'),
	}, nil
}

// OnBoard reports whether both endpoints lie on the board.
func (m Move) OnBoard() bool {
	return OnBoard(m.FromFile, m.FromRow) && OnBoard(m.ToFile, m.ToRow)
}

// From returns the origin square. Only meaningful when OnBoard is true.
func (m Move) From() Square {
	return NewSquare(m.FromFile, m.FromRow)
}

// To returns the destination square. Only meaningful when OnBoard is true.
func (m Move) To() Square {
	return NewSquare(m.ToFile, m.ToRow)
}

// Delta returns the file and row deltas (to minus from).
func (m Move) Delta() (df, dr int) {
	return m.ToFile - m.FromFile, m.ToRow - m.FromRow
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if !m.OnBoard() {
		return "0000"
	}
	return m.From().String() + m.To().String()
}
