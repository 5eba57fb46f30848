// Package script replays scripted pointer gestures against a headless stick.
package script

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/san-kum/vstick/internal/stick"
	"github.com/san-kum/vstick/internal/surface"
	"gopkg.in/yaml.v3"
)

const (
	DefaultViewport = 400.0
	tolerance       = 1e-6
)

var ErrUnknownKind = errors.New("script: unknown step kind")

// Scenario is a scripted gesture sequence.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Viewport    Size          `yaml:"viewport"`
	Scale       float64       `yaml:"scale"` // rendered pixels per logical unit
	ThrottleMs  int           `yaml:"throttle_ms"`
	Options     stick.Options `yaml:"options"`
	Steps       []Step        `yaml:"steps"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one pointer event. X and Y are viewport pixels.
type Step struct {
	AtMs   int64   `yaml:"at_ms"`
	Kind   string  `yaml:"kind"` // down, move, up, cancel
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Touch  bool    `yaml:"touch"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the outputs checked after a step. Empty fields are skipped.
type Expect struct {
	Direction string   `yaml:"direction,omitempty"`
	Mode      string   `yaml:"mode,omitempty"`
	DX        *float64 `yaml:"dx,omitempty"`
	DY        *float64 `yaml:"dy,omitempty"`
}

// Frame is the stick state observed after a step.
type Frame struct {
	Step    int
	AtMs    int64
	Kind    string
	Handled bool
	Reading stick.Reading
	Surface r2.Point
}

// Mismatch is an expectation a step did not meet.
type Mismatch struct {
	Step  int
	Field string
	Want  string
	Got   string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("step %d: %s: want %s, got %s", m.Step, m.Field, m.Want, m.Got)
}

type Result struct {
	Scenario   string
	Frames     []Frame
	Mismatches []Mismatch
}

func (r *Result) Passed() bool { return len(r.Mismatches) == 0 }

// Series returns the DX and DY values of every frame.
func (r *Result) Series() (dx, dy []float64) {
	dx = make([]float64, len(r.Frames))
	dy = make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		dx[i], dy[i] = f.Reading.DX, f.Reading.DY
	}
	return dx, dy
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sc, nil
}

// Parse decodes a scenario and fills in defaults.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	if sc.Viewport.Width <= 0 {
		sc.Viewport.Width = DefaultViewport
	}
	if sc.Viewport.Height <= 0 {
		sc.Viewport.Height = DefaultViewport
	}
	if sc.Scale <= 0 {
		sc.Scale = 1
	}
	if sc.ThrottleMs <= 0 {
		sc.ThrottleMs = int(stick.DefaultThrottle / time.Millisecond)
	}
	for i, st := range sc.Steps {
		switch st.Kind {
		case "down", "move", "up", "cancel":
		default:
			return nil, errors.Wrapf(ErrUnknownKind, "step %d: %q", i+1, st.Kind)
		}
	}
	return &sc, nil
}

// Run replays the scenario on a fresh stick. The stick's clock starts at
// zero, so a step's at_ms is also its distance from construction.
func Run(ctx context.Context, sc *Scenario) (*Result, error) {
	epoch := time.Unix(0, 0)
	rec := surface.NewRecorder(stick.LogicalSize, sc.Scale)
	s := stick.New(sc.Options, rec,
		r2.Point{X: sc.Viewport.Width, Y: sc.Viewport.Height},
		stick.WithThrottle(time.Duration(sc.ThrottleMs)*time.Millisecond),
		stick.WithClock(func() time.Time { return epoch }),
	)

	res := &Result{Scenario: sc.Name, Frames: make([]Frame, 0, len(sc.Steps))}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ev := event(st, epoch)
		var handled bool
		switch st.Kind {
		case "down":
			handled = s.PointerDown(ev)
		case "move":
			handled = s.PointerMove(ev)
		case "up":
			handled = s.PointerUp(ev)
		case "cancel":
			handled = s.PointerCancel(ev)
		default:
			return res, errors.Wrapf(ErrUnknownKind, "step %d: %q", i+1, st.Kind)
		}

		f := Frame{
			Step:    i + 1,
			AtMs:    st.AtMs,
			Kind:    st.Kind,
			Handled: handled,
			Reading: s.Read(),
			Surface: rec.Position(),
		}
		res.Frames = append(res.Frames, f)
		res.Mismatches = append(res.Mismatches, check(f, st.Expect)...)
	}
	return res, nil
}

func event(st Step, epoch time.Time) stick.Event {
	at := epoch.Add(time.Duration(st.AtMs) * time.Millisecond)
	if st.Touch {
		return stick.TouchEvent(st.X, st.Y, at)
	}
	return stick.MouseEvent(st.X, st.Y, at)
}

func check(f Frame, want *Expect) []Mismatch {
	if want == nil {
		return nil
	}
	var out []Mismatch
	miss := func(field, w, g string) {
		out = append(out, Mismatch{Step: f.Step, Field: field, Want: w, Got: g})
	}
	if want.Direction != "" && want.Direction != string(f.Reading.Direction) {
		miss("direction", want.Direction, string(f.Reading.Direction))
	}
	if want.Mode != "" && want.Mode != f.Reading.Mode.String() {
		miss("mode", want.Mode, f.Reading.Mode.String())
	}
	if want.DX != nil && math.Abs(*want.DX-f.Reading.DX) > tolerance {
		miss("dx", fmt.Sprintf("%.2f", *want.DX), fmt.Sprintf("%.2f", f.Reading.DX))
	}
	if want.DY != nil && math.Abs(*want.DY-f.Reading.DY) > tolerance {
		miss("dy", fmt.Sprintf("%.2f", *want.DY), fmt.Sprintf("%.2f", f.Reading.DY))
	}
	return out
}

// Duration returns the time of the last step in seconds.
func (r *Result) Duration() float64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return float64(r.Frames[len(r.Frames)-1].AtMs) / 1000
}

// Playback replays recorded frames as a stick source. The reading at time t
// is the one left by the last step at or before t.
type Playback struct {
	frames []Frame
	idx    int
}

func (r *Result) Playback() *Playback {
	return &Playback{frames: r.Frames, idx: -1}
}

// Seek moves to t seconds after the first step.
func (p *Playback) Seek(t float64) {
	ms := t * 1000
	p.idx = -1
	for i, f := range p.frames {
		if float64(f.AtMs) > ms {
			break
		}
		p.idx = i
	}
}

func (p *Playback) Read() stick.Reading {
	if p.idx < 0 {
		return stick.Reading{Direction: stick.Static}
	}
	return p.frames[p.idx].Reading
}
