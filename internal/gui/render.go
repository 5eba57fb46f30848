package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const pxPerUnit = 20.0

// toScreen maps world units to screen pixels with the origin at the window
// center and y pointing up.
func toScreen(x, y float64) rl.Vector2 {
	return rl.NewVector2(
		float32(screenWidth/2+x*pxPerUnit),
		float32(screenHeight/2-y*pxPerUnit),
	)
}

func (a *App) RenderGrid() {
	for x := int32(0); x <= screenWidth; x += pxPerUnit * 2 {
		rl.DrawLine(x, 0, x, screenHeight, ColGrid)
	}
	for y := int32(0); y <= screenHeight; y += pxPerUnit * 2 {
		rl.DrawLine(0, y, screenWidth, y, ColGrid)
	}
}

func (a *App) RenderTrail() {
	if len(a.Trail) < 2 {
		return
	}
	for i := 1; i < len(a.Trail); i++ {
		// Skip the jump when the rover wraps around an edge.
		if rl.Vector2Distance(a.Trail[i-1], a.Trail[i]) > pxPerUnit*4 {
			continue
		}
		alpha := float32(i) / float32(len(a.Trail))
		rl.DrawLineV(a.Trail[i-1], a.Trail[i], rl.Fade(ColAccent, alpha*0.6))
	}
}

func (a *App) RenderRover() {
	x, y, heading := a.State[0], a.State[1], a.State[2]
	sin, cos := math.Sincos(heading)

	nose := toScreen(x+cos*1.2, y+sin*1.2)
	left := toScreen(x-cos*0.8-sin*0.7, y-sin*0.8+cos*0.7)
	right := toScreen(x-cos*0.8+sin*0.7, y-sin*0.8-cos*0.7)

	// raylib culls triangles that are not counter-clockwise on screen.
	rl.DrawTriangle(nose, left, right, ColSelect)
	rl.DrawCircleV(toScreen(x, y), 3, ColBg)
}
