package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Advance integrates one step and validates the result. On failure the
// previous state is returned with a *StepError.
func Advance(dyn System, integ Integrator, ctrl Controller, x State, t, dt float64) (State, Control, error) {
	if len(x) != dyn.StateDim() {
		return x, nil, &StepError{Time: t, Wrapped: ErrDimensionMismatch}
	}
	u := ctrl.Compute(x, t)
	if len(u) != dyn.ControlDim() {
		return x, u, &StepError{Time: t, Wrapped: ErrDimensionMismatch}
	}
	next := integ.Step(dyn, x, u, t, dt)
	if !next.IsValid() {
		return x, u, &StepError{Time: t, Wrapped: ErrInvalidState}
	}
	return next, u, nil
}
