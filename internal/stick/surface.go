package stick

import "github.com/golang/geo/r2"

// Surface is the drawing target of a stick.
//
// Drawing calls use logical coordinates. Bounds and placement use viewport
// pixels: Bounds is the rendered box (the equivalent of a bounding client
// rect), Position its top-left corner.
type Surface interface {
	Bounds() r2.Rect
	Position() r2.Point
	SetPosition(p r2.Point)
	SetStyle(background, opacity string)
	Clear()
	FillCircle(center r2.Point, radius float64, color string)
}
