package metrics

import (
	"math"

	"github.com/san-kum/vstick/internal/dynamo"
)

// Effort tracks how hard each control channel is driven. Value is the mean
// over steps of the summed absolute inputs; Channel breaks it down.
type Effort struct {
	channels []float64
	steps    int
}

func NewEffort() *Effort {
	return &Effort{}
}

func (e *Effort) Name() string { return "control_effort" }

func (e *Effort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(u) > len(e.channels) {
		e.channels = append(e.channels, make([]float64, len(u)-len(e.channels))...)
	}
	for i, v := range u {
		e.channels[i] += math.Abs(v)
	}
	e.steps++
}

// Channel returns the mean absolute input on channel i, or 0 for a channel
// that was never driven.
func (e *Effort) Channel(i int) float64 {
	if e.steps == 0 || i < 0 || i >= len(e.channels) {
		return 0
	}
	return e.channels[i] / float64(e.steps)
}

// Drive and Turn name the rover's throttle and turn channels.
func (e *Effort) Drive() float64 { return e.Channel(0) }
func (e *Effort) Turn() float64  { return e.Channel(1) }

func (e *Effort) Value() float64 {
	total := 0.0
	for i := range e.channels {
		total += e.Channel(i)
	}
	return total
}

func (e *Effort) Reset() {
	e.channels = e.channels[:0]
	e.steps = 0
}
