package rules

import (
	"errors"
	"testing"

	"github.com/immadshahid/ifchess/internal/board"
)

func mustFEN(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, _, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestRejectionPrecedence(t *testing.T) {
	b := board.New()

	tests := []struct {
		move string
		side board.Color
		want error
	}{
		{"", board.White, ErrMalformed},
		{"e2e", board.White, ErrMalformed},
		{"e2e4e", board.White, ErrMalformed},
		// off-board wins over a null move
		{"i1i1", board.White, ErrOffBoard},
		{"e9e4", board.White, ErrOffBoard},
		{"e2e0", board.White, ErrOffBoard},
		{"E2E4", board.White, ErrOffBoard},
		{"quit", board.White, ErrOffBoard},
		// null move wins over an empty source
		{"e4e4", board.White, ErrNullMove},
		{"e2e2", board.White, ErrNullMove},
		{"e4e5", board.White, ErrEmptySource},
		{"e7e5", board.White, ErrWrongColor},
		{"e2e4", board.Black, ErrWrongColor},
		{"e2e5", board.White, ErrIllegalMove},
		{"a1a8", board.White, ErrPathBlocked},
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			_, err := Check(b, tc.move, tc.side)
			if !errors.Is(err, tc.want) {
				t.Errorf("Check(%q) = %v, want %v", tc.move, err, tc.want)
			}
			if IsLegal(b, tc.move, tc.side) {
				t.Errorf("IsLegal(%q) = true", tc.move)
			}
		})
	}
}

func TestValidationNeverMutates(t *testing.T) {
	b := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w")
	before := *b

	for _, s := range []string{"e2e4", "a1a8", "f3e5", "f3d4", "e1e2", "d1h5", "zzzz", "a", "h8h1", "c6d4"} {
		for _, side := range []board.Color{board.White, board.Black} {
			Check(b, s, side)
			(Engine{Strict: true}).Check(b, s, side)
			if *b != before {
				t.Fatalf("validating %s for %s changed the board", s, side)
			}
		}
	}
}

func TestPawnMoves(t *testing.T) {
	// White pawns a7, d5, e2, h2 (knight on h3 in front); black pawns b6, c7,
	// e4, g7 (bishop on g6 in front).
	b := mustFEN(t, "8/P1p3p1/1p4B1/3P4/4p3/7n/4P2P/8 w")

	tests := []struct {
		move  string
		side  board.Color
		legal bool
	}{
		{"e2e3", board.White, true},
		{"e2e4", board.White, true},  // only e3 is checked, e4 is taken as-is
		{"e2e1", board.White, false}, // backwards
		{"e2d3", board.White, false}, // diagonal onto empty
		{"e2f3", board.White, false},
		{"d5d6", board.White, true},
		{"d5d7", board.White, false}, // double step off home row
		{"d5c6", board.White, false},
		{"a7a8", board.White, true}, // no promotion, just a move
		{"h2h3", board.White, false}, // blocked by knight
		{"h2h4", board.White, false}, // intermediate blocked
		{"h2g3", board.White, false},
		{"c7c6", board.Black, true},
		{"c7c5", board.Black, true},
		{"c7c8", board.Black, false}, // backwards
		{"b6b5", board.Black, true},
		{"b6b4", board.Black, false},
		{"e4e3", board.Black, true},
		{"e4d3", board.Black, false},
		{"g7g6", board.Black, false}, // blocked by bishop
		{"g7g5", board.Black, false}, // intermediate blocked
		{"g7h6", board.Black, false},
		{"g7f6", board.Black, false},
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			got := IsLegal(b, tc.move, tc.side)
			if got != tc.legal {
				_, err := Check(b, tc.move, tc.side)
				t.Errorf("IsLegal(%s, %s) = %v, want %v (err: %v)", tc.move, tc.side, got, tc.legal, err)
			}
		})
	}
}

func TestPawnCaptures(t *testing.T) {
	// White pawns d4, e5 and a knight on f4; black pawns c5, f5 and a bishop on e4.
	b := mustFEN(t, "8/8/8/2p1Pp2/3PbN2/8/8/8 w")

	tests := []struct {
		move  string
		side  board.Color
		legal bool
	}{
		{"d4c5", board.White, true},  // opponent piece
		{"d4e5", board.White, false}, // own piece
		{"d4d5", board.White, true},
		{"e5f6", board.White, false}, // empty diagonal
		{"f5e4", board.Black, false}, // own bishop
		{"f5g4", board.Black, false}, // empty
		{"f5f4", board.Black, false}, // knight ahead
		{"c5d4", board.Black, true},
		{"c5b4", board.Black, false},
		{"e4d3", board.Black, true}, // bishop, sanity
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			if got := IsLegal(b, tc.move, tc.side); got != tc.legal {
				_, err := Check(b, tc.move, tc.side)
				t.Errorf("IsLegal(%s) = %v, want %v (err: %v)", tc.move, got, tc.legal, err)
			}
		})
	}
}

func TestPawnDirectionality(t *testing.T) {
	// A lone pawn of each color in the middle of the board.
	b := mustFEN(t, "8/8/8/3p4/8/8/3P4/8 w")

	for _, side := range []board.Color{board.White, board.Black} {
		from := board.D2
		if side == board.Black {
			from = board.D5
		}
		for to := board.Square(0); to < board.NoSquare; to++ {
			m := board.NewMove(from, to)
			if Validate(b, m, side) != nil {
				continue
			}
			_, dr := m.Delta()
			if dr*side.Forward() <= 0 {
				t.Errorf("%s pawn moved toward its own side: %s", side, m)
			}
			if abs(dr) == 2 && from.Row() != side.PawnRow() {
				t.Errorf("%s pawn double stepped off its home row: %s", side, m)
			}
		}
	}
}

func TestKnightGeometry(t *testing.T) {
	offsets := map[[2]int]bool{
		{1, 2}: true, {2, 1}: true, {-1, 2}: true, {-2, 1}: true,
		{1, -2}: true, {2, -1}: true, {-1, -2}: true, {-2, -1}: true,
	}

	b := mustFEN(t, "8/8/8/8/3N4/8/8/8 w")
	from := board.D4

	legal := 0
	for to := board.Square(0); to < board.NoSquare; to++ {
		m := board.NewMove(from, to)
		df, dr := m.Delta()
		want := offsets[[2]int{df, dr}]
		got := Validate(b, m, board.White) == nil
		if got != want {
			t.Errorf("knight %s: got %v, want %v", m, got, want)
		}
		if got {
			legal++
		}
	}
	if legal != 8 {
		t.Errorf("knight on d4 has %d moves, want 8", legal)
	}

	// Knights jump: surround the knight completely.
	b = mustFEN(t, "8/8/8/2ppp3/2pNp3/2ppp3/8/8 w")
	if err := Validate(b, board.NewMove(board.D4, board.E6), board.White); err != nil {
		t.Errorf("knight should jump over blockers: %v", err)
	}

	// Corner knight has only two moves.
	b = mustFEN(t, "8/8/8/8/8/8/8/N7 w")
	if n := len(Engine{}.LegalMoves(b, board.White)); n != 2 {
		t.Errorf("corner knight has %d moves, want 2", n)
	}
}

func TestSlidingPathClearance(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		legal bool
	}{
		{"rook open file", "8/8/8/8/8/8/8/R7 w", "a1a8", true},
		{"rook open rank", "8/8/8/8/8/8/8/R7 w", "a1h1", true},
		{"rook blocked by own", "8/8/8/8/P7/8/8/R7 w", "a1a8", false},
		{"rook blocked by enemy", "8/8/8/8/p7/8/8/R7 w", "a1a8", false},
		{"rook captures blocker", "8/8/8/8/p7/8/8/R7 w", "a1a4", true},
		{"rook diagonal", "8/8/8/8/8/8/8/R7 w", "a1b2", false},
		{"rook knight jump", "8/8/8/8/8/8/8/R7 w", "a1b3", false},
		{"bishop open", "8/8/8/8/8/8/8/2B5 w", "c1h6", true},
		{"bishop blocked", "8/8/8/8/8/4p3/8/2B5 w", "c1h6", false},
		{"bishop blocked by own", "8/8/8/8/8/8/3P4/2B5 w", "c1h6", false},
		{"bishop straight", "8/8/8/8/8/8/8/2B5 w", "c1c8", false},
		{"bishop backwards diag", "8/8/8/8/4B3/8/8/8 w", "e4b1", true},
		{"queen file", "8/8/8/8/8/8/8/3Q4 w", "d1d8", true},
		{"queen diagonal", "8/8/8/8/8/8/8/3Q4 w", "d1h5", true},
		{"queen blocked file", "8/8/8/3n4/8/8/8/3Q4 w", "d1d8", false},
		{"queen blocked diag", "8/8/8/8/8/5P2/8/3Q4 w", "d1h5", false},
		{"queen irregular", "8/8/8/8/8/8/8/3Q4 w", "d1e3", false},
		{"black rook", "r7/8/8/8/8/8/8/8 b", "a8a1", true},
		{"black rook blocked", "r7/8/8/P7/8/8/8/8 b", "a8a1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			_, side, _ := board.ParseFEN(tc.fen)
			_, err := Check(b, tc.move, side)
			if got := err == nil; got != tc.legal {
				t.Errorf("%s: legal=%v, want %v (err: %v)", tc.move, got, tc.legal, err)
			}
			if !tc.legal && err != nil && Reason(err) == "" {
				t.Errorf("%s: rejection without reason", tc.move)
			}
		})
	}
}

func TestOnlySlidersCheckThePath(t *testing.T) {
	// Two ranks of white pawns in front of the back rank. Landing on an own
	// piece is allowed here, so only the path decides.
	b := mustFEN(t, "8/8/8/8/8/PPPPPPPP/PPPPPPPP/RNBQKBNR w")

	tests := []struct {
		move string
		pt   board.PieceType
	}{
		{"b1c3", board.Knight},
		{"c1e3", board.Bishop},
		{"a1a3", board.Rook},
		{"d1d3", board.Queen},
		{"e1e2", board.King},
	}

	for _, tc := range tests {
		t.Run(tc.pt.String(), func(t *testing.T) {
			_, err := Check(b, tc.move, board.White)
			if blocked := errors.Is(err, ErrPathBlocked); blocked != tc.pt.Sliding() {
				t.Errorf("%s %s: err = %v, sliding = %v", tc.pt, tc.move, err, tc.pt.Sliding())
			}
			if !tc.pt.Sliding() && err != nil {
				t.Errorf("%s %s should jump or step: %v", tc.pt, tc.move, err)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	got := Between(board.NewMove(board.A1, board.A4))
	want := []board.Square{board.A2, board.A3}
	if len(got) != len(want) {
		t.Fatalf("Between(a1a4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Between(a1a4)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := Between(board.NewMove(board.H8, board.E5)); len(got) != 2 || got[0] != board.G7 || got[1] != board.F6 {
		t.Errorf("Between(h8e5) = %v", got)
	}
	if got := Between(board.NewMove(board.A1, board.B1)); len(got) != 0 {
		t.Errorf("adjacent squares have nothing between, got %v", got)
	}
	if got := Between(board.NewMove(board.B1, board.C3)); got != nil {
		t.Errorf("unaligned move should give nil, got %v", got)
	}
}

func TestKingMoves(t *testing.T) {
	b := mustFEN(t, "8/8/8/8/4K3/8/8/8 w")

	moves := Engine{}.LegalMoves(b, board.White)
	if len(moves) != 8 {
		t.Errorf("king on e4 has %d moves, want 8", len(moves))
	}
	for _, s := range []string{"e4e6", "e4c4", "e4g2", "e4f6"} {
		if IsLegal(b, s, board.White) {
			t.Errorf("king move %s should be illegal", s)
		}
	}
}

func TestOwnPieceCapture(t *testing.T) {
	b := board.New()

	// Classic rules let non-pawn pieces land on their own side.
	classic := []string{"a1a2", "a1b1", "b1d2", "c1d2", "d1e1", "e1e2", "g1e2"}
	for _, s := range classic {
		if !IsLegal(b, s, board.White) {
			_, err := Check(b, s, board.White)
			t.Errorf("classic %s rejected: %v", s, err)
		}
		m, _ := board.ParseMove(s)
		if err := ValidateStrict(b, m, board.White); !errors.Is(err, ErrOwnPiece) {
			t.Errorf("strict %s = %v, want ErrOwnPiece", s, err)
		}
	}

	// Double step onto an occupied square.
	b = mustFEN(t, "8/8/8/8/4p3/8/4P3/8 w")
	m, _ := board.ParseMove("e2e4")
	if err := Validate(b, m, board.White); err != nil {
		t.Errorf("classic double step onto e4: %v", err)
	}
	if err := ValidateStrict(b, m, board.White); !errors.Is(err, ErrPathBlocked) {
		t.Errorf("strict double step onto e4 = %v, want ErrPathBlocked", err)
	}
}

func TestLegalMoveCount(t *testing.T) {
	b := board.New()

	tests := []struct {
		name   string
		engine Engine
		side   board.Color
		want   int
	}{
		{"classic white", Engine{}, board.White, 40},
		{"classic black", Engine{}, board.Black, 40},
		{"strict white", Engine{Strict: true}, board.White, 20},
		{"strict black", Engine{Strict: true}, board.Black, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(tc.engine.LegalMoves(b, tc.side)); got != tc.want {
				t.Errorf("LegalMoves = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReason(t *testing.T) {
	b := board.New()

	tests := []struct {
		move string
		want string
	}{
		{"e2e4", ""},
		{"e2", "malformed"},
		{"z1a1", "off_board"},
		{"a1a1", "null_move"},
		{"a4a5", "empty_source"},
		{"a7a6", "wrong_color"},
		{"a1a3", "path_blocked"},
		{"b1b3", "illegal_move"},
	}
	for _, tc := range tests {
		_, err := Check(b, tc.move, board.White)
		if got := Reason(err); got != tc.want {
			t.Errorf("Reason(%s) = %q, want %q (err: %v)", tc.move, got, tc.want, err)
		}
	}

	if Reason(errors.New("boom")) != "unknown" {
		t.Error("foreign errors should map to unknown")
	}
	if len(Reasons()) != 8 {
		t.Errorf("Reasons() = %v", Reasons())
	}
}
