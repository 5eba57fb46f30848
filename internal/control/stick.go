package control

import (
	"fmt"
	"math"

	"github.com/san-kum/vstick/internal/dynamo"
	"github.com/san-kum/vstick/internal/stick"
)

// Source is anything that can be sampled for a stick reading.
type Source interface {
	Read() stick.Reading
}

// Seeker is a Source whose reading depends on simulation time. Compute seeks
// it to t before reading.
type Seeker interface {
	Seek(t float64)
}

// Stick drives a two-input system from a virtual stick: pushing up is
// forward, pushing right turns clockwise.
type Stick struct {
	Source   Source
	Range    float64 // displacement that maps to full throttle
	Deadzone float64 // normalized throttle below which output is zero
}

func NewStick(src Source, rng, deadzone float64) *Stick {
	return &Stick{Source: src, Range: rng, Deadzone: deadzone}
}

func (c *Stick) Compute(x dynamo.State, t float64) dynamo.Control {
	if sk, ok := c.Source.(Seeker); ok {
		sk.Seek(t)
	}
	r := c.Source.Read()
	rng := c.Range
	if rng <= 0 {
		rng = stick.DefaultGeometry().Border()
	}
	return dynamo.Control{
		ScaleThrottle(-r.DY/rng, c.Deadzone),
		ScaleThrottle(-r.DX/rng, c.Deadzone),
	}
}

func (c *Stick) GetParams() map[string]float64 {
	return map[string]float64{"range": c.Range, "deadzone": c.Deadzone}
}

func (c *Stick) SetParam(name string, value float64) error {
	switch name {
	case "range":
		c.Range = value
	case "deadzone":
		c.Deadzone = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// ScaleThrottle clamps a to [-1, 1], zeroes it inside the deadzone and
// rounds its magnitude up to the next tenth.
func ScaleThrottle(a, deadzone float64) float64 {
	neg := a < 0
	a = math.Min(math.Abs(a), 1)
	if a <= deadzone {
		return 0
	}
	a = math.Ceil(a*10) / 10.0
	if neg {
		a = -a
	}
	return a
}
