// Package rules decides whether a coordinate move is legal on a board.
//
// Only piece geometry, board bounds, turn ownership and path clearance are
// enforced. There is no notion of check, castling, en passant or promotion.
// Validation never mutates the board.
package rules

import (
	"fmt"

	"github.com/immadshahid/ifchess/internal/board"
)

// Engine validates moves. The zero value applies the classic rule set, in
// which knights, bishops, rooks, queens and kings may land on a square held
// by their own side and a pawn double step only checks the square it passes.
//
// Strict closes both gaps: no piece may land on its own side's piece and a
// pawn double step needs an empty destination.
type Engine struct {
	Strict bool
}

// IsLegal reports whether text is a legal move for side on b.
func IsLegal(b *board.Board, text string, side board.Color) bool {
	_, err := Engine{}.Check(b, text, side)
	return err == nil
}

// Check decodes text and validates it. The decoded move is returned even
// when the verdict is a rejection, unless the text itself is malformed.
func Check(b *board.Board, text string, side board.Color) (board.Move, error) {
	return Engine{}.Check(b, text, side)
}

// Validate validates an already decoded move with the classic rule set.
func Validate(b *board.Board, m board.Move, side board.Color) error {
	return Engine{}.Validate(b, m, side)
}

// ValidateStrict validates a decoded move with the strict rule set.
func ValidateStrict(b *board.Board, m board.Move, side board.Color) error {
	return Engine{Strict: true}.Validate(b, m, side)
}

// Check decodes text and validates it.
func (e Engine) Check(b *board.Board, text string, side board.Color) (board.Move, error) {
	m, err := board.ParseMove(text)
	if err != nil {
		return board.Move{}, fmt.Errorf("%w %q: %w", ErrMalformed, text, err)
	}
	return m, e.Validate(b, m, side)
}

// Validate returns nil if m is legal for side on b, or the first reason it
// is not. Checks run in a fixed order: bounds, null move, source ownership,
// then the moving piece's own rule.
func (e Engine) Validate(b *board.Board, m board.Move, side board.Color) error {
	if !m.OnBoard() {
		return fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrOffBoard, m.FromFile, m.FromRow, m.ToFile, m.ToRow)
	}

	from, to := m.From(), m.To()
	if from == to {
		return fmt.Errorf("%w: %s", ErrNullMove, from)
	}

	piece := b.PieceAt(from)
	if piece == board.NoPiece {
		return fmt.Errorf("%w: %s", ErrEmptySource, from)
	}
	if piece.Color() != side {
		return fmt.Errorf("%w: %s on %s", ErrWrongColor, piece, from)
	}

	if e.Strict {
		if target := b.PieceAt(to); target != board.NoPiece && target.Color() == side {
			return &geometryError{piece: piece, move: m, err: ErrOwnPiece}
		}
	}

	var err error
	switch piece.Type() {
	case board.Pawn:
		err = pawnMove(b, m, side, e.Strict)
	case board.Knight:
		err = knightMove(m)
	case board.Bishop:
		err = bishopMove(m)
	case board.Rook:
		err = rookMove(m)
	case board.Queen:
		err = queenMove(m)
	case board.King:
		err = kingMove(m)
	default:
		err = ErrIllegalMove
	}
	if err == nil && piece.Type().Sliding() {
		err = clearPath(b, m)
	}
	if err != nil {
		return &geometryError{piece: piece, move: m, err: err}
	}
	return nil
}

// LegalMoves returns every move Validate accepts for side, in square order.
func (e Engine) LegalMoves(b *board.Board, side board.Color) []board.Move {
	var moves []board.Move
	for from := board.Square(0); from < board.NoSquare; from++ {
		if p := b.PieceAt(from); p == board.NoPiece || p.Color() != side {
			continue
		}
		for to := board.Square(0); to < board.NoSquare; to++ {
			m := board.NewMove(from, to)
			if e.Validate(b, m, side) == nil {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func pawnMove(b *board.Board, m board.Move, side board.Color, strict bool) error {
	df, dr := m.Delta()
	fwd := side.Forward()
	target := b.PieceAt(m.To())

	switch {
	case df == 0 && dr == fwd:
		if target != board.NoPiece {
			return ErrPathBlocked
		}
		return nil

	case df == 0 && dr == 2*fwd:
		if m.FromRow != side.PawnRow() {
			return ErrIllegalMove
		}
		if !b.IsEmpty(board.NewSquare(m.FromFile, m.FromRow+fwd)) {
			return ErrPathBlocked
		}
		if strict && target != board.NoPiece {
			return ErrPathBlocked
		}
		return nil

	case abs(df) == 1 && dr == fwd:
		// Diagonal steps are captures only.
		if target == board.NoPiece || target.Color() == side {
			return ErrIllegalMove
		}
		return nil
	}

	return ErrIllegalMove
}

func knightMove(m board.Move) error {
	df, dr := m.Delta()
	adf, adr := abs(df), abs(dr)
	if (adf == 1 && adr == 2) || (adf == 2 && adr == 1) {
		return nil
	}
	return ErrIllegalMove
}

// Sliding pieces only check geometry here; Validate clears their path.

func bishopMove(m board.Move) error {
	df, dr := m.Delta()
	if abs(df) != abs(dr) {
		return ErrIllegalMove
	}
	return nil
}

func rookMove(m board.Move) error {
	df, dr := m.Delta()
	if df != 0 && dr != 0 {
		return ErrIllegalMove
	}
	return nil
}

func queenMove(m board.Move) error {
	df, dr := m.Delta()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return ErrIllegalMove
	}
	return nil
}

func kingMove(m board.Move) error {
	df, dr := m.Delta()
	if abs(df) <= 1 && abs(dr) <= 1 {
		return nil
	}
	return ErrIllegalMove
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
