// Package dynamo provides the simulation primitives behind the stick demo host.
//
// A host drives a small dynamical system with a stick every frame:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper
//   - [Controller]: turns the current stick reading into a control vector
//   - [Metric]: observes each step
//
// # Example
//
//	rover := physics.NewRover(4, 2.5)
//	ctrl := control.NewStick(s, 0.27)
//	x = integ.Step(rover, x, ctrl.Compute(x, t), t, dt)
package dynamo
