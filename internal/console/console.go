// Package console runs a session over a line-oriented text stream: it
// shows the board, prompts the side to move, and submits each line as a
// move.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/immadshahid/ifchess/internal/board"
	"github.com/immadshahid/ifchess/internal/game"
	"github.com/immadshahid/ifchess/internal/rules"
	"github.com/immadshahid/ifchess/internal/storage"
)

// InvalidMove is printed for every rejected move, whatever the reason.
const InvalidMove = "Invalid move. Please try again."

// Snapshotter writes an image of the board somewhere.
type Snapshotter interface {
	SaveFile(path string, b *board.Board) error
}

// Options configures a Console.
type Options struct {
	Unicode      bool        // figurines instead of letters
	Banner       bool        // print the welcome banner first
	Verbose      bool        // log why each move was rejected
	Logger       *log.Logger // nil means log.Default()
	Snapshot     Snapshotter // nil disables snapshots
	SnapshotPath string
}

// Console drives a game.Session from a text stream.
type Console struct {
	session *game.Session
	in      io.Reader
	out     io.Writer
	opts    Options
	logger  *log.Logger

	started  time.Time
	accepted int
	rejected int
	reasons  map[string]int
	captures map[string]int
}

// New creates a console for s reading moves from in and writing to out.
func New(s *game.Session, in io.Reader, out io.Writer, opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Console{
		session:  s,
		in:       in,
		out:      out,
		opts:     opts,
		logger:   logger,
		reasons:  make(map[string]int),
		captures: make(map[string]int),
	}
}

// Run plays until the input ends or ctx is cancelled. Neither is an error;
// only a failing reader is.
func (c *Console) Run(ctx context.Context) error {
	c.started = time.Now()

	if c.opts.Banner {
		c.printBanner()
	}
	c.snapshot()

	lines, errc := readLines(ctx, c.in)

	for {
		c.printBoard()
		fmt.Fprintf(c.out, "%s's turn (%s): ", c.session.Turn(), example(c.session.Turn()))

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case err := <-errc:
			fmt.Fprintln(c.out)
			return err
		case line := <-lines:
			c.handle(line)
		}
	}
}

// readLines feeds lines from r until EOF. errc yields nil at EOF or the
// read error.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSuffix(scanner.Text(), "\r"):
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func (c *Console) handle(line string) {
	side := c.session.Turn()

	out, err := c.session.Submit(line)
	if err != nil {
		c.rejected++
		c.reasons[rules.Reason(err)]++
		if c.opts.Verbose {
			c.logger.Printf("rejected %q for %s: %v", line, side, err)
		}
		fmt.Fprintln(c.out, InvalidMove)
		return
	}

	c.accepted++
	if out.IsCapture() {
		c.captures[out.Captured.Type().String()]++
	}
	if c.opts.Verbose {
		if out.IsCapture() {
			c.logger.Printf("%s %s %s takes %s", out.Mover, out.Move, out.Piece.Type(), out.Captured.Type())
		} else {
			c.logger.Printf("%s %s %s", out.Mover, out.Move, out.Piece.Type())
		}
	}
	c.snapshot()
}

func (c *Console) snapshot() {
	if c.opts.Snapshot == nil || c.opts.SnapshotPath == "" {
		return
	}
	if err := c.opts.Snapshot.SaveFile(c.opts.SnapshotPath, c.session.Board()); err != nil {
		c.logger.Printf("Warning: snapshot not written: %v", err)
	}
}

// Result summarises the session so far.
func (c *Console) Result() storage.SessionResult {
	reasons := make(map[string]int, len(c.reasons))
	for k, v := range c.reasons {
		reasons[k] = v
	}
	captures := make(map[string]int, len(c.captures))
	for k, v := range c.captures {
		captures[k] = v
	}

	var d time.Duration
	if !c.started.IsZero() {
		d = time.Since(c.started)
	}

	return storage.SessionResult{
		Accepted:         c.accepted,
		Rejected:         c.rejected,
		RejectedByReason: reasons,
		CapturesByPiece:  captures,
		Duration:         d,
	}
}

func example(side board.Color) string {
	if side == board.White {
		return "e2e4"
	}
	return "e7e5"
}
