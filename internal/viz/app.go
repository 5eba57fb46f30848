package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/vstick/internal/config"
	"github.com/san-kum/vstick/internal/control"
	"github.com/san-kum/vstick/internal/dynamo"
	"github.com/san-kum/vstick/internal/integrators"
	"github.com/san-kum/vstick/internal/metrics"
	"github.com/san-kum/vstick/internal/palette"
	"github.com/san-kum/vstick/internal/physics"
	"github.com/san-kum/vstick/internal/stick"
)

const (
	headerRows      = 1
	graphHeight     = 4
	footerRows      = graphHeight + 4
	historyCapacity = 120
	trailCapacity   = 80
	pxPerUnit       = 4.0
)

type TickMsg time.Time

// App is the terminal host: a rover arena with a stick overlaid on it.
type App struct {
	cfg           *config.Config
	now           func() time.Time
	width, height int
	cols, rows    int

	arena   *Canvas
	surface *TermSurface
	stick   *stick.Stick

	rover  *physics.Rover
	integ  dynamo.Integrator
	ctrl   *control.Stick
	effort *metrics.Effort
	dwell  *metrics.Dwell
	state  dynamo.State
	u      dynamo.Control
	t      float64

	dxHistory []float64
	dyHistory []float64
	trail     []r2.Point
	paused    bool
}

func NewApp(cfg *config.Config) App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	SetTheme(cfg.Display.Theme)
	integ, err := integrators.New("rk4")
	if err != nil {
		integ = integrators.NewRK4()
	}
	return App{
		cfg:       cfg,
		now:       time.Now,
		rover:     physics.NewRover(cfg.Rover.MaxSpeed, cfg.Rover.TurnRate),
		integ:     integ,
		effort:    metrics.NewEffort(),
		dwell:     metrics.NewDwell(),
		state:     make(dynamo.State, 5),
		u:         make(dynamo.Control, 2),
		dxHistory: make([]float64, 0, historyCapacity),
		dyHistory: make([]float64, 0, historyCapacity),
		trail:     make([]r2.Point, 0, trailCapacity),
	}
}

// Stick returns the stick once the first window size is known.
func (m App) Stick() *stick.Stick { return m.stick }

func (m App) Init() tea.Cmd {
	return m.tick()
}

func (m App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate()), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "t":
			NextTheme()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if !m.paused && m.stick != nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// layout sizes the arena to the window and creates the stick on first use.
func (m *App) layout() {
	m.cols = max(m.width, 1)
	m.rows = max(m.height-headerRows-footerRows, 1)
	m.arena = NewCanvas(m.cols, m.rows)

	if m.stick != nil {
		return
	}

	cols, rows := m.cfg.Display.TermCols, m.cfg.Display.TermRows
	if cols <= 0 || rows <= 0 {
		cols, rows = config.DefaultTermCols, config.DefaultTermRows
	}
	m.surface = NewTermSurface(cols, rows, stick.LogicalSize)
	viewport := r2.Point{X: float64(2 * m.cols), Y: float64(4 * m.rows)}
	opts := append(m.cfg.StickOptions(), stick.WithClock(m.now))
	m.stick = stick.New(m.cfg.Stick, m.surface, viewport, opts...)
	m.ctrl = control.NewStick(m.stick, m.stick.Geometry().Border(), m.cfg.Rover.Deadzone)
	log.Printf("viz: stick placed at %v in %dx%d arena", m.surface.Position(), m.cols, m.rows)
}

// handleMouse forwards terminal mouse input to the stick. Presses only
// count over the stick surface; moves and releases are always forwarded so
// a drag that leaves the surface still ends cleanly.
func (m *App) handleMouse(msg tea.MouseMsg) {
	if m.stick == nil {
		return
	}
	col, row := msg.X, msg.Y-headerRows
	p := ClientPoint(col, row)
	ev := stick.Event{Mouse: &p, Time: m.now()}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.surface.Covers(col, row) {
			m.stick.PointerDown(ev)
		}
	case tea.MouseActionMotion:
		m.stick.PointerMove(ev)
	case tea.MouseActionRelease:
		m.stick.PointerUp(ev)
	}
}

func (m *App) step() {
	dt := 1.0 / float64(m.cfg.FrameRate())
	next, u, err := dynamo.Advance(m.rover, m.integ, m.ctrl, m.state, m.t, dt)
	if err != nil {
		log.Printf("viz: rover step failed at t=%.2f: %v", m.t, err)
		m.reset()
		return
	}
	m.state, m.u = next, u
	m.t += dt
	m.wrap()

	reading := m.stick.Read()
	m.effort.Observe(m.state, m.u, m.t)
	m.dwell.Observe(reading.Direction, dt)
	m.dxHistory = push(m.dxHistory, reading.DX, historyCapacity)
	m.dyHistory = push(m.dyHistory, reading.DY, historyCapacity)

	m.trail = append(m.trail, m.toScreen(m.state[0], m.state[1]))
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
}

// wrap keeps the rover on the arena, leaving one edge and entering the other.
func (m *App) wrap() {
	halfW := float64(2*m.cols) / 2 / pxPerUnit
	halfH := float64(4*m.rows) / 2 / pxPerUnit
	m.state[0] = wrapAxis(m.state[0], halfW)
	m.state[1] = wrapAxis(m.state[1], halfH)
}

func wrapAxis(v, half float64) float64 {
	if half <= 0 {
		return 0
	}
	span := 2 * half
	return math.Mod(math.Mod(v+half, span)+span, span) - half
}

func (m *App) reset() {
	for i := range m.state {
		m.state[i] = 0
	}
	m.t = 0
	m.effort.Reset()
	m.dwell.Reset()
	m.dxHistory = m.dxHistory[:0]
	m.dyHistory = m.dyHistory[:0]
	m.trail = m.trail[:0]
}

func (m *App) toScreen(x, y float64) r2.Point {
	return r2.Point{
		X: float64(2*m.cols)/2 + x*pxPerUnit,
		Y: float64(4*m.rows)/2 - y*pxPerUnit,
	}
}

func (m App) View() string {
	if m.stick == nil || m.arena == nil {
		return "starting..."
	}

	var b strings.Builder
	reading := m.stick.Read()

	b.WriteString(titleStyle().Render("vstick") + "  " +
		modeStyle(reading.Pressed).Render(reading.Mode.String()) + "  " +
		DirectionPad(string(reading.Direction)) + "\n")

	m.drawArena()
	b.WriteString(m.composite())

	b.WriteString(strings.Join([]string{
		stat("dx", fmt.Sprintf("%6.1f", reading.DX)),
		stat("dy", fmt.Sprintf("%6.1f", reading.DY)),
		stat("dir", reading.Direction),
		stat("speed", fmt.Sprintf("%5.2f", m.rover.Speed(m.state))),
		stat("effort", fmt.Sprintf("%4.2f", m.effort.Value())),
		stat("held", m.dwell.Dominant()),
	}, "  ") + "\n")

	if len(m.dxHistory) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.dxHistory, m.dyHistory},
			asciigraph.Height(graphHeight),
			asciigraph.Width(max(m.width-12, 10)),
			asciigraph.LowerBound(-m.stick.Geometry().Border()),
			asciigraph.UpperBound(m.stick.Geometry().Border()),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption("dx (red) / dy (blue)"),
		)
		b.WriteString(chart + "\n")
	} else {
		b.WriteString(strings.Repeat("\n", graphHeight+2))
	}

	b.WriteString(hintStyle().Render("[drag stick] deflect  [drag corner] move  [SPACE] pause  [R] reset  [T] theme  [Q] quit"))
	return b.String()
}

func (m App) drawArena() {
	m.arena.Clear()
	muted := string(CurrentTheme.Muted)
	for _, p := range m.trail {
		m.arena.Set(int(p.X), int(p.Y), muted)
	}

	pos := m.toScreen(m.state[0], m.state[1])
	primary := string(CurrentTheme.Primary)
	m.arena.FillDisc(pos.X, pos.Y, 3, primary)
	sin, cos := math.Sincos(m.state[2])
	m.arena.DrawLine(int(pos.X), int(pos.Y), int(pos.X+cos*6), int(pos.Y-sin*6), string(CurrentTheme.Accent))
}

// composite renders the arena with the stick surface drawn over it, grouping
// runs of equally styled cells into one lipgloss render.
func (m App) composite() string {
	screenBg := palette.MustParse(string(CurrentTheme.Background), colorful.Color{})
	var b strings.Builder

	for row := 0; row < m.rows; row++ {
		var run strings.Builder
		var runFg, runBg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle()
			if runFg != "" {
				style = style.Foreground(lipgloss.Color(runFg))
			}
			if runBg != "" {
				style = style.Background(lipgloss.Color(runBg))
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for col := 0; col < m.cols; col++ {
			var r rune
			var fg, bg string
			if m.surface.Covers(col, row) {
				r, fg, bg = m.surface.Cell(col, row, screenBg)
			} else if m.arena.Lit(col, row) {
				r, fg = m.arena.Grid[row][col], m.arena.Color[row][col]
			} else {
				r = ' '
			}
			if fg != runFg || bg != runBg {
				flush()
				runFg, runBg = fg, bg
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func push(h []float64, v float64, capacity int) []float64 {
	h = append(h, v)
	if len(h) > capacity {
		h = h[1:]
	}
	return h
}

// RunTerminal starts the terminal host and blocks until it exits.
func RunTerminal(cfg *config.Config) error {
	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
