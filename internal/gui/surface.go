package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/san-kum/vstick/internal/palette"
)

type circle struct {
	center r2.Point
	radius float64
	color  rl.Color
}

// RaySurface buffers stick drawing and replays it inside the raylib frame.
// Logical units are scaled by Scale screen pixels.
type RaySurface struct {
	Scale float64

	logical    float64
	pos        r2.Point
	background rl.Color
	opacity    float32
	ops        []circle
}

func NewRaySurface(logical, scale float64) *RaySurface {
	return &RaySurface{
		Scale:      scale,
		logical:    logical,
		background: rl.Blank,
		opacity:    1,
	}
}

func (s *RaySurface) Bounds() r2.Rect {
	size := s.logical * s.Scale
	return r2.Rect{
		X: r1.Interval{Lo: s.pos.X, Hi: s.pos.X + size},
		Y: r1.Interval{Lo: s.pos.Y, Hi: s.pos.Y + size},
	}
}

func (s *RaySurface) Position() r2.Point     { return s.pos }
func (s *RaySurface) SetPosition(p r2.Point) { s.pos = p }
func (s *RaySurface) Clear()                 { s.ops = s.ops[:0] }

func (s *RaySurface) SetStyle(background, opacity string) {
	s.background = toColor(background, rl.Blank)
	s.opacity = float32(palette.Opacity(opacity))
}

func (s *RaySurface) FillCircle(center r2.Point, radius float64, color string) {
	s.ops = append(s.ops, circle{center: center, radius: radius, color: toColor(color, rl.Black)})
}

// Render draws the buffered frame. Call between BeginDrawing and EndDrawing.
func (s *RaySurface) Render() {
	size := float32(s.logical * s.Scale)
	origin := rl.NewVector2(float32(s.pos.X), float32(s.pos.Y))
	rl.DrawRectangleV(origin, rl.NewVector2(size, size), rl.Fade(s.background, s.opacity))

	for _, op := range s.ops {
		center := rl.NewVector2(
			origin.X+float32(op.center.X*s.Scale),
			origin.Y+float32(op.center.Y*s.Scale),
		)
		rl.DrawCircleV(center, float32(op.radius*s.Scale), rl.Fade(op.color, s.opacity))
	}
}

func toColor(name string, fallback rl.Color) rl.Color {
	c, ok := palette.Parse(name)
	if !ok {
		return fallback
	}
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255)
}
