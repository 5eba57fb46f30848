// Package stick implements a virtual joystick driven by touch or mouse input.
//
// A [Stick] draws itself on an injected [Surface] and tracks one pointer:
//
//   - pointer-down inside the outer ring deflects the stick
//   - pointer-down outside the ring grabs the whole control (reposition mode)
//   - pointer-move deflects (clamped to the ring) or drags the control
//   - pointer-up recenters the stick
//
// All geometry works in a fixed 100×100 logical space. [Stick.Position]
// converts viewport pixels into that space using the surface's rendered
// bounding box, so hosts may draw the control at any size.
//
// # Usage
//
//	s := stick.New(opts, surf, r2.Point{X: 800, Y: 600})
//	s.PointerDown(ev)
//	// once per frame:
//	dx, dy, dir := s.DeltaX(), s.DeltaY(), s.Direction()
//
// A Stick is not safe for concurrent use; hosts call it from their event loop.
package stick
