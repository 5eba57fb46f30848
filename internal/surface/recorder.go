// Package surface provides a headless stick surface that records drawing.
package surface

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Op is one recorded fill.
type Op struct {
	Center r2.Point
	Radius float64
	Color  string
}

func (o Op) String() string {
	return fmt.Sprintf("circle(%.1f,%.1f r=%.1f %s)", o.Center.X, o.Center.Y, o.Radius, o.Color)
}

// Recorder renders a logical square of side Size at Scale viewport pixels
// per logical unit. Ops holds the fills since the last Clear.
type Recorder struct {
	Size       float64
	Scale      float64
	Background string
	Opacity    string
	Ops        []Op
	Clears     int

	pos r2.Point
}

// NewRecorder creates a recorder for a logical square of the given size.
func NewRecorder(size, scale float64) *Recorder {
	return &Recorder{Size: size, Scale: scale}
}

func (r *Recorder) Bounds() r2.Rect {
	side := r.Size * r.Scale
	return r2.Rect{
		X: r1.Interval{Lo: r.pos.X, Hi: r.pos.X + side},
		Y: r1.Interval{Lo: r.pos.Y, Hi: r.pos.Y + side},
	}
}

func (r *Recorder) Position() r2.Point     { return r.pos }
func (r *Recorder) SetPosition(p r2.Point) { r.pos = p }
func (r *Recorder) Clear()                 { r.Ops = r.Ops[:0]; r.Clears++ }
func (r *Recorder) SetStyle(bg, op string) { r.Background, r.Opacity = bg, op }

func (r *Recorder) FillCircle(center r2.Point, radius float64, color string) {
	r.Ops = append(r.Ops, Op{Center: center, Radius: radius, Color: color})
}

// Knob returns the last fill, which is the stick itself after a draw.
func (r *Recorder) Knob() (Op, bool) {
	if len(r.Ops) == 0 {
		return Op{}, false
	}
	return r.Ops[len(r.Ops)-1], true
}
