// Package board implements the 8x8 chess board the move validator works on.
package board

import "fmt"

// Square represents a square on the board (0-63).
// Squares are laid out in display order: A8=0, H8=7, A1=56, H1=63.
// Row 0 is rank 8 and row 7 is rank 1.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Row returns the row of the square (0-7, where 0 is rank 8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// Rank returns the chess rank of the square (1-8).
func (sq Square) Rank() int {
	return 8 - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank())
}

// NewSquare creates a square from file and row (0-indexed).
// Both must already be known to lie in [0,7].
func NewSquare(file, row int) Square {
	return Square(row*8 + file)
}

// OnBoard reports whether file and row both lie in [0,7].
func OnBoard(file, row int) bool {
	return file >= 0 && file <= 7 && row >= 0 && row <= 7
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	row := 8 - (int(s[1]) - '0')

	if !OnBoard(file, row) {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, row), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}
