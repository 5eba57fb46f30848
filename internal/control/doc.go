// Package control turns stick readings into control vectors.
//
// Controllers implement the [dynamo.Controller] interface:
//
//   - [Stick]: maps stick displacement to [linear, angular] throttles
//
// # Usage
//
//	ctrl := control.NewStick(s, s.Geometry().Border(), 0.27)
//	u := ctrl.Compute(x, t) // sampled once per frame
package control
