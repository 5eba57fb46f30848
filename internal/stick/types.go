package stick

import (
	"time"

	"github.com/golang/geo/r2"
)

// Direction is the coarse label derived from the stick displacement.
type Direction string

const (
	Up     Direction = "UP"
	Down   Direction = "DOWN"
	Left   Direction = "LEFT"
	Right  Direction = "RIGHT"
	Static Direction = "STATIC"
)

// Mode is the pointer state of a stick.
type Mode int

const (
	Idle Mode = iota
	Deflect
	Reposition
)

func (m Mode) String() string {
	switch m {
	case Deflect:
		return "DEFLECT"
	case Reposition:
		return "REPOSITION"
	default:
		return "IDLE"
	}
}

// Event is a pointer event in viewport pixel coordinates.
//
// Touches holds the client positions of the touch points, first contact
// first. Mouse is nil for pure touch input.
type Event struct {
	Touches []r2.Point
	Mouse   *r2.Point
	Time    time.Time
}

// MouseEvent builds an event from a mouse position.
func MouseEvent(x, y float64, at time.Time) Event {
	return Event{Mouse: &r2.Point{X: x, Y: y}, Time: at}
}

// TouchEvent builds an event from a single touch point.
func TouchEvent(x, y float64, at time.Time) Event {
	return Event{Touches: []r2.Point{{X: x, Y: y}}, Time: at}
}

// Reading is a per-frame snapshot of the stick outputs.
type Reading struct {
	DX, DY    float64
	Direction Direction
	Mode      Mode
	Pressed   bool
}
