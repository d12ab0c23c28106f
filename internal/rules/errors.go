package rules

import (
	"errors"

	"github.com/immadshahid/ifchess/internal/board"
)

// Rejection reasons, in the order they are checked.
var (
	ErrMalformed   = errors.New("malformed move")
	ErrOffBoard    = errors.New("square off the board")
	ErrNullMove    = errors.New("source and destination are the same")
	ErrEmptySource = errors.New("no piece on source square")
	ErrWrongColor  = errors.New("piece belongs to the other side")
	ErrIllegalMove = errors.New("piece cannot move that way")
	ErrPathBlocked = errors.New("path is blocked")
	ErrOwnPiece    = errors.New("destination holds own piece")
)

var reasons = []struct {
	err error
	key string
}{
	{ErrMalformed, "malformed"},
	{ErrOffBoard, "off_board"},
	{ErrNullMove, "null_move"},
	{ErrEmptySource, "empty_source"},
	{ErrWrongColor, "wrong_color"},
	{ErrPathBlocked, "path_blocked"},
	{ErrOwnPiece, "own_piece"},
	{ErrIllegalMove, "illegal_move"},
}

// Reason maps a rejection to a short stable key, e.g. "path_blocked".
// It returns "" for nil and "unknown" for errors not produced here.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.key
		}
	}
	return "unknown"
}

// Reasons lists every key Reason can return for a rejection.
func Reasons() []string {
	keys := make([]string, 0, len(reasons))
	for _, r := range reasons {
		keys = append(keys, r.key)
	}
	return keys
}

// geometryError reports which piece failed its movement rule.
type geometryError struct {
	piece board.Piece
	move  board.Move
	err   error
}

func (e *geometryError) Error() string {
	return e.piece.Type().String() + " " + e.move.String() + ": " + e.err.Error()
}

func (e *geometryError) Unwrap() error {
	return e.err
}
