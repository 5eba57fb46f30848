package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/vstick/internal/dynamo"
)

const DefaultResponse = 0.25

// Rover is a unicycle base. State is [x, y, heading, v, omega] with heading
// measured counterclockwise from +x; control is [linear, angular] throttle
// in [-1, 1]. Velocities follow their commanded values with a first-order
// lag of Response seconds.
type Rover struct {
	MaxSpeed float64
	TurnRate float64
	Response float64
}

func NewRover(maxSpeed, turnRate float64) *Rover {
	return &Rover{
		MaxSpeed: maxSpeed,
		TurnRate: turnRate,
		Response: DefaultResponse,
	}
}

func (r *Rover) StateDim() int   { return 5 }
func (r *Rover) ControlDim() int { return 2 }

func (r *Rover) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	heading, v, omega := x[2], x[3], x[4]

	linear, angular := 0.0, 0.0
	if len(u) >= 2 {
		linear, angular = clampUnit(u[0]), clampUnit(u[1])
	}

	tau := r.Response
	if tau <= 0 {
		tau = DefaultResponse
	}

	sin, cos := math.Sincos(heading)
	return dynamo.State{
		v * cos,
		v * sin,
		omega,
		(linear*r.MaxSpeed - v) / tau,
		(angular*r.TurnRate - omega) / tau,
	}
}

// Speed returns the forward speed in state x.
func (r *Rover) Speed(x dynamo.State) float64 {
	return x[3]
}

func (r *Rover) GetParams() map[string]float64 {
	return map[string]float64{
		"max_speed": r.MaxSpeed,
		"turn_rate": r.TurnRate,
		"response":  r.Response,
	}
}

func (r *Rover) SetParam(name string, value float64) error {
	switch name {
	case "max_speed":
		r.MaxSpeed = value
	case "turn_rate":
		r.TurnRate = value
	case "response":
		r.Response = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
