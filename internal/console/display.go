package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/immadshahid/ifchess/internal/board"
)

const (
	fileLabels = "   a b c d e f g h"
	border     = "  -----------------"
)

// WriteBoard renders b with rank 8 at the top and file labels above and below.
func WriteBoard(w io.Writer, b *board.Board, unicode bool) {
	var sb strings.Builder

	sb.WriteString(fileLabels + "\n")
	sb.WriteString(border + "\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d |", 8-row)
		for file := 0; file < 8; file++ {
			p := b.PieceAt(board.NewSquare(file, row))
			if unicode {
				sb.WriteString(p.Glyph())
			} else {
				sb.WriteString(p.String())
			}
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border + "\n")
	sb.WriteString(fileLabels + "\n\n")

	io.WriteString(w, sb.String())
}

func (c *Console) printBoard() {
	WriteBoard(c.out, c.session.Board(), c.opts.Unicode)
}

var rulesText = []string{
	"CAPITAL letters are WHITE.",
	"small letters are BLACK.",
	"WHITE moves first.",
	"Pawns move 1 square forward, or 2 from their starting square, and capture 1 square diagonally.",
	"Queens move any distance along ranks, files and diagonals.",
	"Kings move 1 square in any direction.",
	"Knights move in an L shape and jump over pieces.",
	"Bishops move any distance diagonally.",
	"Rooks move any distance along ranks and files.",
	"Enter moves as source and destination squares, e.g. e2e4.",
}

func (c *Console) printBanner() {
	rule := strings.Repeat("=", 51)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, "          WELCOME TO IFCHESS!")
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, "RULES OF THE GAME:")
	for i, line := range rulesText {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, line)
	}
	if c.session.Strict() {
		fmt.Fprintln(c.out, "Strict rules: pieces may not capture their own side.")
	}
	fmt.Fprintln(c.out, rule)
}
