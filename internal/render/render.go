// Package render draws character cells into a raster image using colours
// resolved and contrast-adjusted by a colour manager.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/rivo/uniseg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/celltint/internal/colour"
	"github.com/jmylchreest/celltint/internal/colourmanager"
)

// ErrOutOfBounds is returned when a cell lies outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// Renderer is a fixed grid of character cells backed by an RGBA image.
type Renderer struct {
	cols, rows   int
	cellW, cellH int
	ascent       int

	img     *image.RGBA
	face    font.Face
	manager *colourmanager.Manager
	logger  hclog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFace sets the font face. The cell size follows the face metrics.
func WithFace(face font.Face) Option {
	return func(r *Renderer) {
		r.face = face
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a cols x rows grid cleared to the theme background.
func New(cols, rows int, m *colourmanager.Manager, opts ...Option) (*Renderer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", cols, rows)
	}
	if m == nil {
		return nil, errors.New("colour manager is required")
	}

	r := &Renderer{
		cols:    cols,
		rows:    rows,
		face:    basicfont.Face7x13,
		manager: m,
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	metrics := r.face.Metrics()
	r.cellH = metrics.Height.Ceil()
	r.ascent = metrics.Ascent.Ceil()
	r.cellW = font.MeasureString(r.face, "M").Ceil()

	r.img = image.NewRGBA(image.Rect(0, 0, cols*r.cellW, rows*r.cellH))
	r.Clear()

	r.logger.Debug("renderer created", "cols", cols, "rows", rows, "cell_width", r.cellW, "cell_height", r.cellH)
	return r, nil
}

// Size returns the grid dimensions in cells.
func (r *Renderer) Size() (cols, rows int) {
	return r.cols, r.rows
}

// CellSize returns the pixel size of one cell.
func (r *Renderer) CellSize() (width, height int) {
	return r.cellW, r.cellH
}

// Image returns the backing image.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Clear fills the whole grid with the theme background.
func (r *Renderer) Clear() {
	bg := r.manager.Colors().Background
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg.ImageColor()), image.Point{}, draw.Src)
}

// DrawCell paints one character cell.
//
// A translucent bg is composited over the theme background and a translucent
// fg over the resulting cell background. The opaque fg is then adjusted by
// the manager to meet its minimum contrast ratio before the glyph is drawn.
func (r *Renderer) DrawCell(col, row int, ch rune, fg, bg colour.Color) error {
	if col < 0 || col >= r.cols || row < 0 || row >= r.rows {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, col, row, r.cols, r.rows)
	}

	cellBg := colour.Blend(r.manager.Colors().Background, bg)
	cellFg := r.manager.AdjustForeground(cellBg, colour.Blend(cellBg, fg))

	x, y := col*r.cellW, row*r.cellH
	rect := image.Rect(x, y, x+r.cellW, y+r.cellH)
	draw.Draw(r.img, rect, image.NewUniform(cellBg.ImageColor()), image.Point{}, draw.Src)

	if ch == ' ' || ch == 0 {
		return nil
	}
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(cellFg.ImageColor()),
		Face: r.face,
		Dot:  fixed.P(x, y+r.ascent),
	}
	d.DrawString(string(ch))
	return nil
}

// DrawString paints s from (col, row) rightwards and returns the number of
// cells used. Each grapheme cluster takes its display width in cells; a wide
// cluster draws its first rune in the left cell and blanks the right one.
// Text that does not fit on the row is dropped.
func (r *Renderer) DrawString(col, row int, s string, fg, bg colour.Color) (int, error) {
	n := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		width = max(width, 1)
		if col+n+width > r.cols {
			break
		}

		ch, _ := utf8.DecodeRuneInString(cluster)
		if err := r.DrawCell(col+n, row, ch, fg, bg); err != nil {
			return n, err
		}
		for i := 1; i < width; i++ {
			if err := r.DrawCell(col+n+i, row, ' ', fg, bg); err != nil {
				return n, err
			}
		}
		n += width
	}
	return n, nil
}

// StringCells returns the number of cells DrawString needs for s.
func StringCells(s string) int {
	n := 0
	state := -1
	for len(s) > 0 {
		var width int
		_, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		n += max(width, 1)
	}
	return n
}

// EncodePNG writes the image as PNG, upscaled by an integer factor.
// A scale below 2 writes the image at its native size.
func (r *Renderer) EncodePNG(w io.Writer, scale int) error {
	var out image.Image = r.img
	if scale > 1 {
		b := r.img.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), r.img, b, draw.Src, nil)
		out = scaled
	}
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
