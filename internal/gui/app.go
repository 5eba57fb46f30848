package gui

import (
	"fmt"
	"log"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
	"github.com/san-kum/vstick/internal/config"
	"github.com/san-kum/vstick/internal/control"
	"github.com/san-kum/vstick/internal/dynamo"
	"github.com/san-kum/vstick/internal/integrators"
	"github.com/san-kum/vstick/internal/metrics"
	"github.com/san-kum/vstick/internal/physics"
	"github.com/san-kum/vstick/internal/stick"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // Barely visible grid
)

type App struct {
	Cfg     *config.Config
	Stick   *stick.Stick
	Surface *RaySurface

	Dyn    *physics.Rover
	Integ  dynamo.Integrator
	Ctrl   *control.Stick
	Effort *metrics.Effort
	Dwell  *metrics.Dwell
	State  dynamo.State
	Time   float64
	Dt     float64

	Running    bool
	Quit       bool
	Trail      []rl.Vector2
	Telemetry  []float64 // stick dy history
	MaxHistory int
	Font       rl.Font

	pointer *stick.Poller
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, "vstick")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the raylib
// default font otherwise.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		log.Printf("gui: %s unavailable, using default font", fontPath)
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the window host. The raylib window must already be open.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	scale := cfg.Display.WindowScale
	if scale <= 0 {
		scale = config.DefaultWindowScale
	}

	surface := NewRaySurface(stick.LogicalSize, scale)
	st := stick.New(cfg.Stick, surface, r2.Point{X: screenWidth, Y: screenHeight}, cfg.StickOptions()...)

	integ, err := integrators.New("rk4")
	if err != nil {
		integ = integrators.NewRK4()
	}

	a := &App{
		Cfg:        cfg,
		Stick:      st,
		Surface:    surface,
		Dyn:        physics.NewRover(cfg.Rover.MaxSpeed, cfg.Rover.TurnRate),
		Integ:      integ,
		Ctrl:       control.NewStick(st, st.Geometry().Border(), cfg.Rover.Deadzone),
		Effort:     metrics.NewEffort(),
		Dwell:      metrics.NewDwell(),
		Dt:         1.0 / 60,
		Running:    true,
		MaxHistory: 200,
		Font:       loadFont(),
		pointer:    stick.NewPoller(st),
	}
	a.Reset()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	initWindow()
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window not ready")
	}
	app := NewApp(cfg)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.Quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Reset() {
	a.State = make(dynamo.State, a.Dyn.StateDim())
	a.Time = 0
	a.Trail = make([]rl.Vector2, 0, a.MaxHistory)
	a.Telemetry = make([]float64, 0, a.MaxHistory)
	a.Effort.Reset()
	a.Dwell.Reset()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Reset()
	}

	a.handlePointer()

	if !a.Running {
		return
	}

	next, u, err := dynamo.Advance(a.Dyn, a.Integ, a.Ctrl, a.State, a.Time, a.Dt)
	if err != nil {
		log.Printf("gui: rover step failed: %v", err)
		a.Reset()
		return
	}
	a.State = next
	a.Time += a.Dt
	a.wrap()

	reading := a.Stick.Read()
	a.Effort.Observe(a.State, u, a.Time)
	a.Dwell.Observe(reading.Direction, a.Dt)

	a.Trail = appendCapped(a.Trail, toScreen(a.State[0], a.State[1]), a.MaxHistory)
	a.Telemetry = appendCapped(a.Telemetry, reading.DY, a.MaxHistory)
}

// handlePointer samples raylib's touch and mouse state for this frame. The
// first touch point wins over the mouse, as in stick.Position.
func (a *App) handlePointer() {
	var ev stick.Event
	down := false

	if n := rl.GetTouchPointCount(); n > 0 {
		for i := int32(0); i < n; i++ {
			p := rl.GetTouchPosition(i)
			ev.Touches = append(ev.Touches, r2.Point{X: float64(p.X), Y: float64(p.Y)})
		}
		down = true
	} else {
		p := rl.GetMousePosition()
		ev.Mouse = &r2.Point{X: float64(p.X), Y: float64(p.Y)}
		down = rl.IsMouseButtonDown(rl.MouseLeftButton)
	}

	a.pointer.Poll(down, ev)
}

func (a *App) wrap() {
	halfW := screenWidth / 2 / pxPerUnit
	halfH := screenHeight / 2 / pxPerUnit
	a.State[0] = wrapAxis(a.State[0], halfW)
	a.State[1] = wrapAxis(a.State[1], halfH)
}

func wrapAxis(v, half float64) float64 {
	span := 2 * half
	return math.Mod(math.Mod(v+half, span)+span, span) - half
}

func appendCapped[T any](h []T, v T, capacity int) []T {
	h = append(h, v)
	if len(h) > capacity {
		h = h[1:]
	}
	return h
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.RenderGrid()
	a.RenderTrail()
	a.RenderRover()
	a.Surface.Render()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("vstick", 30, 30, 24, ColSelect)

	r := a.Stick.Read()
	a.drawText(fmt.Sprintf(":: %s", r.Mode), 130, 34, 16, ColText)
	a.drawText(string(r.Direction), 30, 70, 40, ColAccent)
	a.drawText(fmt.Sprintf("dx %6.1f  dy %6.1f", r.DX, r.DY), 30, 120, 16, ColText)
	a.drawText(fmt.Sprintf("speed %5.2f  effort %4.2f  held %s",
		a.Dyn.Speed(a.State), a.Effort.Value(), a.Dwell.Dominant()), 30, 145, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	a.drawText("[DRAG] STEER  [SPACE] PAUSE  [R] RESET  [Q] QUIT", 800, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the stick's vertical deflection against its full range.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60
	limit := a.Stick.Geometry().Border()

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(a.MaxHistory))*float32(width)
		norm := (val + limit) / (2 * limit)
		py := float32(rectY) + float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLine(int32(rectX), int32(rectY+height/2), int32(rectX+width), int32(rectY+height/2), ColGrid)
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("dy %.1f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
