package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
// Only the placement and side-to-move fields are used; castling and
// en passant do not exist in this game.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// ParseFEN parses the piece placement and, if present, the side to move of
// a FEN string. Trailing fields (castling, en passant, clocks) are ignored.
// Side defaults to White when omitted.
func ParseFEN(fen string) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, NoColor, fmt.Errorf("invalid FEN: empty")
	}

	b := Empty()
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, NoColor, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			side = White
		case "b":
			side = Black
		default:
			return nil, NoColor, fmt.Errorf("invalid side to move: %s", parts[1])
		}
	}

	return b, side, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(rows))
	}

	// FEN starts from rank 8, which is row 0 here.
	for row, rowStr := range rows {
		file := 0

		// Bytes, not runes: a multi-byte character must not alias a piece letter.
		for i := 0; i < len(rowStr); i++ {
			c := rowStr[i]
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character %q in rank %d", c, 8-row)
			}
			b.setPiece(piece, NewSquare(file, row))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, file)
		}
	}

	return nil
}

// ToFEN returns the placement and side-to-move fields of a FEN string.
func (b *Board) ToFEN(side Color) string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, row))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if side == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	return sb.String()
}
