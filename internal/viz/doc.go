// Package viz is the terminal host for a virtual stick.
//
// [App] is a Bubble Tea program that draws a small rover arena on a braille
// [Canvas] and overlays a [TermSurface] holding the stick. Terminal mouse
// events are translated into stick events in braille sub-pixels, so a cell
// is 2 viewport pixels wide and 4 tall.
//
// # Key Bindings
//
//	Space - Pause/Resume the rover
//	R     - Reset the rover and its metrics
//	T     - Cycle color themes
//	Q     - Quit
package viz
