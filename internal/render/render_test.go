package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/immadshahid/ifchess/internal/board"
)

func TestRendererSprites(t *testing.T) {
	r, err := New(48, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.SquareSize() != 48 {
		t.Errorf("SquareSize() = %d, want 48", r.SquareSize())
	}
	if len(r.pieces) != 12 {
		t.Errorf("expected 12 sprites, got %d", len(r.pieces))
	}
	if _, ok := r.pieces[board.NoPiece]; ok {
		t.Error("empty squares should not have a sprite")
	}

	if _, err := New(4, nil); err == nil {
		t.Error("expected an error for a tiny square size")
	}
}

func TestWritePNG(t *testing.T) {
	const size = 48
	r, err := New(size, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, board.New()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8*size || b.Dy() != 8*size {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), 8*size, 8*size)
	}

	theme := DefaultTheme()

	// Corner of a8 lies outside the rook's disc: plain light square.
	if got := rgb(img.At(0, 0)); got != [3]uint8{theme.LightSquare.R, theme.LightSquare.G, theme.LightSquare.B} {
		t.Errorf("a8 corner = %v, want light square", got)
	}

	// e4 is empty and light, d4 empty and dark.
	center := func(sq board.Square) (int, int) {
		return sq.File()*size + size/2, sq.Row()*size + size/2
	}
	if x, y := center(board.E4); rgb(img.At(x, y)) != [3]uint8{theme.LightSquare.R, theme.LightSquare.G, theme.LightSquare.B} {
		t.Errorf("e4 is not a plain light square")
	}
	if x, y := center(board.D4); rgb(img.At(x, y)) != [3]uint8{theme.DarkSquare.R, theme.DarkSquare.G, theme.DarkSquare.B} {
		t.Errorf("d4 is not a plain dark square")
	}

	// Above the letter but inside the disc: piece fill color.
	x, y := center(board.E2)
	if c := rgb(img.At(x, y-size/4)); c[2] < 230 {
		t.Errorf("white pawn disc looks wrong: %v", c)
	}
	x, y = center(board.E7)
	if c := rgb(img.At(x, y-size/4)); c[0] > 80 {
		t.Errorf("black pawn disc looks wrong: %v", c)
	}
}

func TestSaveFile(t *testing.T) {
	r, err := New(16, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := r.SaveFile(path, board.New()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()

	if _, err := png.Decode(f); err != nil {
		t.Errorf("snapshot is not a PNG: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".snapshot-*"))
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func rgb(c interface{ RGBA() (r, g, b, a uint32) }) [3]uint8 {
	r, g, b, _ := c.RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
