// Package gui is the raylib window host. It draws a rover on a 2D grid and
// a [RaySurface] holding the stick, fed by polled touch and mouse input.
package gui
