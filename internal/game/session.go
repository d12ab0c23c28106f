// Package game holds the state of one two-player session: the board and
// whose turn it is.
package game

import (
	"github.com/immadshahid/ifchess/internal/board"
	"github.com/immadshahid/ifchess/internal/rules"
)

// Outcome describes an accepted move.
type Outcome struct {
	Move     board.Move
	Piece    board.Piece // the piece that moved
	Captured board.Piece // NoPiece when the destination was empty
	Mover    board.Color
}

// IsCapture returns true if the move removed a piece from the board.
func (o Outcome) IsCapture() bool {
	return o.Captured != board.NoPiece
}

// Session owns a board and the side-to-move flag. The turn flag is the
// only source of truth for whose pieces may move; it is never derived
// from the board.
//
// A Session is not safe for concurrent use.
type Session struct {
	board  *board.Board
	turn   board.Color
	engine rules.Engine
	plies  int
}

// New creates a session at the starting position with White to move.
func New(engine rules.Engine) *Session {
	return &Session{
		board:  board.New(),
		turn:   board.White,
		engine: engine,
	}
}

// FromFEN creates a session from a FEN placement and side to move.
func FromFEN(fen string, engine rules.Engine) (*Session, error) {
	b, side, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Session{
		board:  b,
		turn:   side,
		engine: engine,
	}, nil
}

// Submit validates text for the side to move. A legal move is applied and
// the turn passes to the other side. A rejected move leaves the board and
// turn untouched; the returned error says why (see rules.Reason).
func (s *Session) Submit(text string) (Outcome, error) {
	m, err := s.engine.Check(s.board, text, s.turn)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Move:     m,
		Piece:    s.board.PieceAt(m.From()),
		Captured: s.board.PieceAt(m.To()),
		Mover:    s.turn,
	}

	s.board.Apply(m)
	s.turn = s.turn.Other()
	s.plies++

	return out, nil
}

// Turn returns the side to move.
func (s *Session) Turn() board.Color {
	return s.turn
}

// Board returns a snapshot of the current position.
func (s *Session) Board() *board.Board {
	return s.board.Copy()
}

// Plies returns the number of accepted moves.
func (s *Session) Plies() int {
	return s.plies
}

// Strict reports whether the session rejects own-piece captures.
func (s *Session) Strict() bool {
	return s.engine.Strict
}

// FEN returns the current placement and side to move.
func (s *Session) FEN() string {
	return s.board.ToFEN(s.turn)
}
