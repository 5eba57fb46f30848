// Package physics provides the models a stick can drive.
//
// Each model implements the [dynamo.System] interface:
//
//   - [Rover]: differential-drive base steered with linear/angular throttles
//
// Models also implement [dynamo.Configurable] for runtime parameter
// adjustment.
package physics
