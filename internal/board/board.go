package board

import "strings"

// Board is the 8x8 grid of square contents. The zero value is not an
// empty board (NoPiece is 12); use New or Empty.
//
// Board is a plain value: copying it snapshots the position and two boards
// compare equal with == when every square matches.
type Board struct {
	squares [64]Piece
}

// New creates the standard starting position.
func New() *Board {
	b := Empty()
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range back {
		b.setPiece(NewPiece(pt, Black), NewSquare(file, 0))
		b.setPiece(NewPiece(Pawn, Black), NewSquare(file, Black.PawnRow()))
		b.setPiece(NewPiece(Pawn, White), NewSquare(file, White.PawnRow()))
		b.setPiece(NewPiece(pt, White), NewSquare(file, 7))
	}
	return b
}

// Empty creates a board with no pieces.
func Empty() *Board {
	b := &Board{}
	b.Clear()
	return b
}

// Clear removes every piece.
func (b *Board) Clear() {
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
// The square must be on the board.
func (b *Board) PieceAt(sq Square) Piece {
	return b.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.squares[sq] == NoPiece
}

// setPiece places a piece on a square, replacing whatever was there.
func (b *Board) setPiece(p Piece, sq Square) {
	b.squares[sq] = p
}

// Apply moves the source piece onto the destination and clears the source.
// Whatever stood on the destination is discarded. Apply does not validate;
// callers must hold a legal verdict for m first.
func (b *Board) Apply(m Move) {
	from, to := m.From(), m.To()
	b.squares[to] = b.squares[from]
	b.squares[from] = NoPiece
}

// Count returns how many squares hold p.
func (b *Board) Count(p Piece) int {
	n := 0
	for _, sq := range b.squares {
		if sq == p {
			n++
		}
	}
	return n
}

// String returns the board as eight rows of letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			sb.WriteString(b.PieceAt(NewSquare(file, row)).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
