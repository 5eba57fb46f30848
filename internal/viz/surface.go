package viz

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/vstick/internal/palette"
)

// TermSurface draws a stick onto its own braille canvas. Viewport pixels are
// braille sub-pixels: a terminal cell is 2 wide and 4 tall.
type TermSurface struct {
	Cols, Rows int

	logical    float64
	canvas     *Canvas
	pos        r2.Point
	background string
	opacity    float64
}

func NewTermSurface(cols, rows int, logical float64) *TermSurface {
	return &TermSurface{
		Cols:    cols,
		Rows:    rows,
		logical: logical,
		canvas:  NewCanvas(cols, rows),
		opacity: 1,
	}
}

func (s *TermSurface) Bounds() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: s.pos.X, Hi: s.pos.X + float64(2*s.Cols)},
		Y: r1.Interval{Lo: s.pos.Y, Hi: s.pos.Y + float64(4*s.Rows)},
	}
}

func (s *TermSurface) Position() r2.Point     { return s.pos }
func (s *TermSurface) SetPosition(p r2.Point) { s.pos = p }
func (s *TermSurface) Clear()                 { s.canvas.Clear() }

func (s *TermSurface) SetStyle(background, opacity string) {
	s.background = background
	s.opacity = palette.Opacity(opacity)
}

func (s *TermSurface) FillCircle(center r2.Point, radius float64, color string) {
	if s.logical <= 0 {
		return
	}
	sx := float64(2*s.Cols) / s.logical
	sy := float64(4*s.Rows) / s.logical
	for y := 0; y < 4*s.Rows; y++ {
		for x := 0; x < 2*s.Cols; x++ {
			lx := (float64(x) + 0.5) / sx
			ly := (float64(y) + 0.5) / sy
			if math.Hypot(lx-center.X, ly-center.Y) <= radius {
				s.canvas.Set(x, y, color)
			}
		}
	}
}

// Origin returns the terminal cell of the surface's top-left corner.
func (s *TermSurface) Origin() (col, row int) {
	return int(math.Floor(s.pos.X / 2)), int(math.Floor(s.pos.Y / 4))
}

// Covers reports whether the cell (col, row) belongs to the surface.
func (s *TermSurface) Covers(col, row int) bool {
	ox, oy := s.Origin()
	return col >= ox && col < ox+s.Cols && row >= oy && row < oy+s.Rows
}

// Cell returns the glyph and colors of a screen cell covered by the surface,
// blended over screenBg with the surface opacity.
func (s *TermSurface) Cell(col, row int, screenBg colorful.Color) (r rune, fg, bg string) {
	ox, oy := s.Origin()
	c, rr := col-ox, row-oy
	bg = palette.Over(palette.MustParse(s.background, screenBg), screenBg, s.opacity).Hex()
	if c < 0 || rr < 0 || c >= s.Cols || rr >= s.Rows {
		return ' ', "", bg
	}
	r = s.canvas.Grid[rr][c]
	if r == blank {
		return ' ', "", bg
	}
	ink := palette.MustParse(s.canvas.Color[rr][c], colorful.Color{})
	return r, palette.Over(ink, screenBg, s.opacity).Hex(), bg
}

// ClientPoint maps a terminal cell to the sub-pixel at its center.
func ClientPoint(col, row int) r2.Point {
	return r2.Point{X: float64(col*2) + 1, Y: float64(row*4) + 2}
}
