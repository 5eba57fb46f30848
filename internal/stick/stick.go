package stick

import (
	"log"
	"math"
	"time"

	"github.com/golang/geo/r2"
)

const (
	// LogicalSize is the side of the logical surface, whatever its rendered size.
	LogicalSize   = 100.0
	Radius        = 30.0
	BorderRatio   = 1.6
	DefaultPlaceX = 0.7
	DefaultPlaceY = 0.65
)

// Geometry describes the logical layout of a stick. The layout is fixed: the
// clamp places a pushed stick at unit·Radius from (Border, Border), which
// stays inside the boundary disc only for this size, radius and ratio.
type Geometry struct {
	Radius      float64 // inner stick radius
	BorderRatio float64 // outer boundary radius as a multiple of Radius
}

// DefaultGeometry returns the 100×100 layout with a 30 unit stick.
func DefaultGeometry() Geometry {
	return Geometry{Radius: Radius, BorderRatio: BorderRatio}
}

// Border returns the outer boundary radius.
func (g Geometry) Border() float64 {
	return g.Radius * g.BorderRatio
}

// Center returns the midpoint of the logical surface.
func (g Geometry) Center() r2.Point {
	return r2.Point{X: LogicalSize / 2, Y: LogicalSize / 2}
}

// Stick is a virtual joystick bound to one surface.
type Stick struct {
	opts     Resolved
	geo      Geometry
	surface  Surface
	throttle *Throttle
	now      func() time.Time

	offset     r2.Point
	pressed    bool
	reposition bool
}

// Option customizes a Stick at construction.
type Option func(*settings)

type settings struct {
	interval time.Duration
	now      func() time.Time
	placeX   float64
	placeY   float64
}

// WithThrottle overrides the move event interval.
func WithThrottle(d time.Duration) Option {
	return func(s *settings) { s.interval = d }
}

// WithClock sets the time source used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithPlacement sets the initial position as fractions of the viewport.
func WithPlacement(fx, fy float64) Option {
	return func(s *settings) { s.placeX, s.placeY = fx, fy }
}

// New creates a stick on surface, places it inside a viewport of the given
// pixel size and draws it centered.
func New(opts Options, surface Surface, viewport r2.Point, options ...Option) *Stick {
	cfg := settings{
		interval: DefaultThrottle,
		now:      time.Now,
		placeX:   DefaultPlaceX,
		placeY:   DefaultPlaceY,
	}
	for _, o := range options {
		o(&cfg)
	}

	s := &Stick{
		opts:     opts.Resolve(),
		geo:      DefaultGeometry(),
		surface:  surface,
		throttle: NewThrottle(cfg.interval, cfg.now()),
		now:      cfg.now,
		offset:   DefaultGeometry().Center(),
	}

	surface.SetStyle(s.opts.StickBg, s.opts.StickOpacity)
	surface.SetPosition(r2.Point{X: viewport.X * cfg.placeX, Y: viewport.Y * cfg.placeY})
	s.Draw()
	return s
}

// Options returns the resolved construction options.
func (s *Stick) Options() Resolved { return s.opts }

// Geometry returns the logical layout.
func (s *Stick) Geometry() Geometry { return s.geo }

// Surface returns the surface the stick draws on.
func (s *Stick) Surface() Surface { return s.surface }

// Offset returns the stick position in logical units.
func (s *Stick) Offset() r2.Point { return s.offset }

// Pressed reports whether a pointer is currently held.
func (s *Stick) Pressed() bool { return s.pressed }

// Mode returns the current pointer state.
func (s *Stick) Mode() Mode {
	switch {
	case !s.pressed:
		return Idle
	case s.reposition:
		return Reposition
	default:
		return Deflect
	}
}

// PointerDown starts a gesture. It reports whether the host should suppress
// its default handling of the event; false means the event was unusable and
// nothing changed.
func (s *Stick) PointerDown(ev Event) bool {
	pos, err := s.Position(ev)
	if err != nil {
		log.Printf("stick: pointer down ignored: %v", err)
		return false
	}

	s.pressed = true
	s.offset = pos

	if pos.Sub(s.geo.Center()).Norm() < s.geo.Border() {
		s.reposition = false
		s.Draw()
	} else {
		s.reposition = true
	}
	return true
}

// PointerMove updates the gesture. Events are dropped when no pointer is
// held or when they arrive within the throttle interval. It reports whether
// the event changed the stick or its placement.
func (s *Stick) PointerMove(ev Event) bool {
	if !s.pressed {
		return false
	}
	if !s.throttle.ShouldProcess(s.eventTime(ev)) {
		return false
	}

	pos, err := s.Position(ev)
	if err != nil {
		log.Printf("stick: pointer move ignored: %v", err)
		return false
	}

	if s.reposition {
		// The grab point stays under the pointer: shift the surface by the
		// logical distance between the pointer and the grab offset.
		delta := s.toPixels(pos.Sub(s.offset))
		s.surface.SetPosition(s.surface.Position().Add(delta))
		return true
	}

	s.offset = s.clamp(pos)
	s.Draw()
	return true
}

// PointerUp ends the gesture and recenters the stick. It always succeeds.
func (s *Stick) PointerUp(Event) bool {
	s.pressed = false
	s.reposition = false
	s.offset = s.geo.Center()
	s.Draw()
	return true
}

// PointerCancel aborts the gesture the same way PointerUp ends it.
func (s *Stick) PointerCancel(ev Event) bool {
	return s.PointerUp(ev)
}

// Position converts the event position into logical coordinates. The first
// touch point wins over the mouse position.
func (s *Stick) Position(ev Event) (r2.Point, error) {
	var client r2.Point
	switch {
	case len(ev.Touches) > 0:
		client = ev.Touches[0]
	case ev.Mouse != nil:
		client = *ev.Mouse
	default:
		return r2.Point{}, ErrNoPointer
	}
	if !finite(client.X) || !finite(client.Y) {
		return r2.Point{}, ErrNonFinite
	}

	b := s.surface.Bounds()
	w, h := b.X.Length(), b.Y.Length()
	if b.IsEmpty() || w <= 0 || h <= 0 {
		return r2.Point{}, ErrDegenerateSurface
	}

	return r2.Point{
		X: (client.X - b.X.Lo) * (LogicalSize / w),
		Y: (client.Y - b.Y.Lo) * (LogicalSize / h),
	}, nil
}

// Draw paints the outer boundary disc and the stick.
func (s *Stick) Draw() {
	s.surface.Clear()
	s.surface.FillCircle(s.geo.Center(), s.geo.Border(), s.opts.StickBgColor)
	s.surface.FillCircle(s.offset, s.geo.Radius, s.opts.StickColor)
}

// DeltaX returns the horizontal displacement from center, or 0 while the
// control is being repositioned.
func (s *Stick) DeltaX() float64 {
	if s.reposition {
		return 0
	}
	return s.offset.X - s.geo.Center().X
}

// DeltaY returns the vertical displacement from center (positive is down),
// or 0 while the control is being repositioned.
func (s *Stick) DeltaY() float64 {
	if s.reposition {
		return 0
	}
	return s.offset.Y - s.geo.Center().Y
}

// Direction classifies the displacement by its dominant axis.
func (s *Stick) Direction() Direction {
	return Classify(s.DeltaX(), s.DeltaY())
}

// Read samples every output at once.
func (s *Stick) Read() Reading {
	dx, dy := s.DeltaX(), s.DeltaY()
	return Reading{
		DX:        dx,
		DY:        dy,
		Direction: Classify(dx, dy),
		Mode:      s.Mode(),
		Pressed:   s.pressed,
	}
}

// Classify returns the direction whose signed component strictly dominates.
// Ties, including the zero vector, are Static.
func Classify(dx, dy float64) Direction {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ax > ay && dx > 0:
		return Right
	case ay > ax && dy > 0:
		return Down
	case ax > ay && dx < 0:
		return Left
	case ay > ax && dy < 0:
		return Up
	}
	return Static
}

// clamp pulls p back inside the outer boundary. A clamped stick sits at
// unit·Radius measured from (Border, Border).
func (s *Stick) clamp(p r2.Point) r2.Point {
	d := p.Sub(s.geo.Center())
	dist := d.Norm()
	if dist <= s.geo.Border() {
		return p
	}
	unit := d.Mul(1 / dist)
	border := s.geo.Border()
	return r2.Point{X: unit.X*s.geo.Radius + border, Y: unit.Y*s.geo.Radius + border}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *Stick) toPixels(d r2.Point) r2.Point {
	b := s.surface.Bounds()
	return r2.Point{
		X: d.X * b.X.Length() / LogicalSize,
		Y: d.Y * b.Y.Length() / LogicalSize,
	}
}

func (s *Stick) eventTime(ev Event) time.Time {
	if ev.Time.IsZero() {
		return s.now()
	}
	return ev.Time
}
