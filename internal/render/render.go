// Package render draws board snapshots as PNG images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/immadshahid/ifchess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	WhitePiece  color.RGBA
	BlackPiece  color.RGBA
	Outline     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		WhitePiece:  color.RGBA{250, 250, 250, 255},
		BlackPiece:  color.RGBA{40, 40, 40, 255},
		Outline:     color.RGBA{20, 20, 20, 255},
	}
}

// Disc drawn under each piece letter, in a 100x100 viewBox.
const pieceSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<circle cx="50" cy="50" r="36" fill="%s" stroke="%s" stroke-width="5"/>
</svg>`

// Renderer draws boards with a fixed square size. Sprites are built once.
type Renderer struct {
	theme       *Theme
	squareSize  int
	renderScale float64 // sprites are drawn this much larger, then scaled down
	pieces      map[board.Piece]*image.RGBA
}

// New creates a renderer with squares of the given pixel size.
func New(squareSize int, theme *Theme) (*Renderer, error) {
	if squareSize < 8 {
		return nil, fmt.Errorf("square size %d too small", squareSize)
	}
	if theme == nil {
		theme = DefaultTheme()
	}

	r := &Renderer{
		theme:       theme,
		squareSize:  squareSize,
		renderScale: 3.0,
		pieces:      make(map[board.Piece]*image.RGBA),
	}
	if err := r.loadPieces(); err != nil {
		return nil, err
	}
	return r, nil
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// loadPieces rasterises a sprite for each of the twelve pieces.
func (r *Renderer) loadPieces() error {
	renderSize := int(float64(r.squareSize) * r.renderScale)

	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(renderSize) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	for _, c := range []board.Color{board.White, board.Black} {
		fill, ink := r.theme.WhitePiece, r.theme.BlackPiece
		if c == board.Black {
			fill, ink = r.theme.BlackPiece, r.theme.WhitePiece
		}

		svg := fmt.Sprintf(pieceSVG, hex(fill), hex(r.theme.Outline))

		for pt := board.Pawn; pt <= board.King; pt++ {
			icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)))
			if err != nil {
				return fmt.Errorf("parse piece svg: %w", err)
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			piece := board.NewPiece(pt, board.White)
			drawLetter(rgba, face, piece.String(), ink)

			sprite := image.NewRGBA(image.Rect(0, 0, r.squareSize, r.squareSize))
			draw.CatmullRom.Scale(sprite, sprite.Bounds(), rgba, rgba.Bounds(), draw.Over, nil)

			r.pieces[board.NewPiece(pt, c)] = sprite
		}
	}

	return nil
}

// drawLetter centres s on dst.
func drawLetter(dst *image.RGBA, face font.Face, s string, ink color.RGBA) {
	size := dst.Bounds().Dx()
	width := font.MeasureString(face, s).Ceil()
	bounds, _ := font.BoundString(face, s)
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P((size-width)/2, (size+height)/2),
	}
	d.DrawString(s)
}

// Image draws b, rank 8 at the top.
func (r *Renderer) Image(b *board.Board) *image.RGBA {
	size := r.SquareSize()
	img := image.NewRGBA(image.Rect(0, 0, 8*size, 8*size))

	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		x, y := sq.File()*size, sq.Row()*size
		rect := image.Rect(x, y, x+size, y+size)

		c := r.theme.LightSquare
		if (sq.File()+sq.Row())%2 == 1 {
			c = r.theme.DarkSquare
		}
		draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)

		if sprite, ok := r.pieces[b.PieceAt(sq)]; ok {
			draw.Draw(img, rect, sprite, image.Point{}, draw.Over)
		}
	}

	return img
}

// WritePNG encodes a snapshot of b to w.
func (r *Renderer) WritePNG(w io.Writer, b *board.Board) error {
	return png.Encode(w, r.Image(b))
}

// SaveFile writes a snapshot of b to path. The file is replaced atomically
// so viewers never see a half-written image.
func (r *Renderer) SaveFile(path string, b *board.Board) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := r.WritePNG(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
