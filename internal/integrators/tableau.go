package integrators

import "github.com/san-kum/vstick/internal/dynamo"

// Tableau holds the coefficients of an explicit Runge-Kutta method. Row s of
// A weights the earlier stage slopes used to build stage s.
type Tableau struct {
	A [][]float64
	B []float64 // slope weights of the final update
	C []float64 // stage times as fractions of dt
}

var (
	EulerTableau = Tableau{
		A: [][]float64{{}},
		B: []float64{1},
		C: []float64{0},
	}
	MidpointTableau = Tableau{
		A: [][]float64{{}, {0.5}},
		B: []float64{0, 1},
		C: []float64{0, 0.5},
	}
	RK4Tableau = Tableau{
		A: [][]float64{{}, {0.5}, {0, 0.5}, {0, 0, 1}},
		B: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
		C: []float64{0, 0.5, 0.5, 1},
	}
)

// RungeKutta steps a system with an explicit tableau. Slope buffers are kept
// between steps and reallocated only when the state dimension changes.
type RungeKutta struct {
	tab    Tableau
	slopes []dynamo.State
	stage  dynamo.State
}

func NewRungeKutta(tab Tableau) *RungeKutta {
	return &RungeKutta{tab: tab}
}

func NewRK4() *RungeKutta      { return NewRungeKutta(RK4Tableau) }
func NewMidpoint() *RungeKutta { return NewRungeKutta(MidpointTableau) }
func NewEuler() *RungeKutta    { return NewRungeKutta(EulerTableau) }

// Stages returns the number of derivative evaluations per step.
func (r *RungeKutta) Stages() int { return len(r.tab.B) }

func (r *RungeKutta) resize(n int) {
	if len(r.stage) == n && len(r.slopes) == len(r.tab.B) {
		return
	}
	r.stage = make(dynamo.State, n)
	r.slopes = make([]dynamo.State, len(r.tab.B))
	for i := range r.slopes {
		r.slopes[i] = make(dynamo.State, n)
	}
}

func (r *RungeKutta) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.resize(len(x))

	for s, row := range r.tab.A {
		copy(r.stage, x)
		for j, a := range row {
			axpy(r.stage, dt*a, r.slopes[j])
		}
		copy(r.slopes[s], dyn.Derive(r.stage, u, t+r.tab.C[s]*dt))
	}

	next := x.Clone()
	for s, b := range r.tab.B {
		axpy(next, dt*b, r.slopes[s])
	}
	return next
}

// axpy adds a·x to y in place.
func axpy(y dynamo.State, a float64, x dynamo.State) {
	if a == 0 {
		return
	}
	for i := range y {
		y[i] += a * x[i]
	}
}
