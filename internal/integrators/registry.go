package integrators

import (
	"fmt"

	"github.com/san-kum/vstick/internal/dynamo"
)

// Names lists the integrators accepted by New.
var Names = []string{"rk4", "midpoint", "euler"}

func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "midpoint":
		return NewMidpoint(), nil
	case "euler":
		return NewEuler(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names)
}
