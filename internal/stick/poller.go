package stick

import "github.com/golang/geo/r2"

// Poller adapts hosts that sample pointer state every frame instead of
// delivering events. Only the press edge is hit-tested against the surface;
// a held pointer keeps driving the stick wherever it goes.
type Poller struct {
	stick   *Stick
	wasDown bool
	held    bool
	last    r2.Point
}

// NewPoller wraps s.
func NewPoller(s *Stick) *Poller {
	return &Poller{stick: s}
}

// Held reports whether the current press was accepted by the stick.
func (p *Poller) Held() bool { return p.held }

// Poll feeds one frame of pointer state. down is the button or touch state
// and ev carries the pointer position for that frame.
func (p *Poller) Poll(down bool, ev Event) {
	at, ok := pointerOf(ev)

	switch {
	case down && !p.wasDown:
		if ok && p.stick.Surface().Bounds().ContainsPoint(at) {
			p.held = p.stick.PointerDown(ev)
		}
	case down && p.held:
		if ok && at != p.last {
			p.stick.PointerMove(ev)
		}
	case !down && p.held:
		p.stick.PointerUp(ev)
		p.held = false
	}

	p.wasDown = down
	if ok {
		p.last = at
	}
}

func pointerOf(ev Event) (r2.Point, bool) {
	switch {
	case len(ev.Touches) > 0:
		return ev.Touches[0], true
	case ev.Mouse != nil:
		return *ev.Mouse, true
	}
	return r2.Point{}, false
}
