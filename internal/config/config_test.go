package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/san-kum/vstick/internal/stick"
	"github.com/san-kum/vstick/internal/surface"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ThrottleMs != 10 {
		t.Errorf("expected throttle 10ms, got %d", cfg.ThrottleMs)
	}
	if cfg.Placement.X != 0.7 || cfg.Placement.Y != 0.65 {
		t.Errorf("expected placement 0.7/0.65, got %v/%v", cfg.Placement.X, cfg.Placement.Y)
	}
	if cfg.FrameRate() != DefaultFPS {
		t.Errorf("expected frame rate %d, got %d", DefaultFPS, cfg.FrameRate())
	}
	if got := cfg.Stick.Resolve().StickColor; got != "black" {
		t.Errorf("expected default stick color, got %s", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vstick.yaml")
	data := []byte(`
stick:
  stick_color: blue
  stick_opacity: ""
throttle_ms: 25
rover:
  max_speed: 9
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Stick.StickColor == nil || *cfg.Stick.StickColor != "blue" {
		t.Errorf("expected stick color blue, got %v", cfg.Stick.StickColor)
	}
	if !stick.IsSet(cfg.Stick.StickOpacity) {
		t.Error("expected explicit empty opacity to be set")
	}
	if cfg.Stick.Resolve().StickOpacity != "0.5" {
		t.Errorf("expected empty opacity to resolve to default, got %s", cfg.Stick.Resolve().StickOpacity)
	}
	if cfg.Throttle() != 25*time.Millisecond {
		t.Errorf("expected 25ms throttle, got %v", cfg.Throttle())
	}
	if cfg.Rover.MaxSpeed != 9 {
		t.Errorf("expected max speed 9, got %v", cfg.Rover.MaxSpeed)
	}
	if cfg.Rover.TurnRate != DefaultTurnRate {
		t.Errorf("expected default turn rate kept, got %v", cfg.Rover.TurnRate)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("throttle_ms: [oops"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Stick.StickBg = stick.String("gray")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Stick.StickBg == nil || *loaded.Stick.StickBg != "gray" {
		t.Errorf("expected bg gray after round trip, got %v", loaded.Stick.StickBg)
	}
	if loaded.Stick.StickColor != nil {
		t.Error("expected unset color to stay unset")
	}
}

func TestThrottle_FallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThrottleMs = 0
	if cfg.Throttle() != stick.DefaultThrottle {
		t.Errorf("expected default throttle, got %v", cfg.Throttle())
	}
}

func TestFrameRate(t *testing.T) {
	cfg := DefaultConfig()
	for _, tc := range []struct {
		fps  int
		want int
	}{
		{60, 60},
		{0, DefaultFPS},
		{-5, DefaultFPS},
	} {
		cfg.Display.FPS = tc.fps
		if got := cfg.FrameRate(); got != tc.want {
			t.Errorf("fps %d: expected frame rate %d, got %d", tc.fps, tc.want, got)
		}
	}
}

// Older config files carried a geometry section. It is ignored, so a stick
// built from such a file still clamps inside its boundary and reads the
// direction it was pushed.
func TestStickOptions_LegacyGeometryIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.yaml")
	data := []byte(`
geometry:
  size: 200
  radius: 20
  border_ratio: 2
throttle_ms: 10
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	t0 := time.Unix(1700000000, 0)
	opts := append(cfg.StickOptions(), stick.WithClock(func() time.Time { return t0 }))
	rec := surface.NewRecorder(stick.LogicalSize, 1)
	s := stick.New(cfg.Stick, rec, r2.Point{}, opts...)

	g := s.Geometry()
	center := g.Center()
	if center != (r2.Point{X: 50, Y: 50}) || g.Border() != 48 {
		t.Fatalf("unexpected geometry center %v border %v", center, g.Border())
	}

	pushes := []struct {
		dx, dy float64
		want   stick.Direction
	}{
		{500, 0, stick.Right},
		{-500, 0, stick.Left},
		{0, 500, stick.Down},
		{0, -500, stick.Up},
		{400, 100, stick.Right},
		{-100, -400, stick.Up},
	}
	for i, p := range pushes {
		at := t0.Add(time.Duration(20*(i+1)) * time.Millisecond)
		s.PointerDown(stick.MouseEvent(center.X, center.Y, at))
		if !s.PointerMove(stick.MouseEvent(center.X+p.dx, center.Y+p.dy, at.Add(20*time.Millisecond))) {
			t.Fatalf("push %d: move dropped", i)
		}
		if d := s.Offset().Sub(center).Norm(); d > g.Border()+1e-9 {
			t.Errorf("push %d: offset %v is %.2f from center, beyond border %v", i, s.Offset(), d, g.Border())
		}
		if got := s.Direction(); got != p.want {
			t.Errorf("push %d: expected %s, got %s", i, p.want, got)
		}
		s.PointerUp(stick.Event{})
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	names := ListPresets()
	if len(names) != len(Presets) || names[0] != "classic" {
		t.Errorf("expected sorted preset names, got %v", names)
	}

	cfg := DefaultConfig()
	cfg.Stick.StickColor = stick.String("orange")
	if err := cfg.ApplyPreset("neon"); err != nil {
		t.Fatal(err)
	}
	if *cfg.Stick.StickColor != "#ff00ff" {
		t.Errorf("expected preset color, got %s", *cfg.Stick.StickColor)
	}
	if cfg.Display.Theme != "cyberpunk" {
		t.Errorf("expected cyberpunk theme, got %s", cfg.Display.Theme)
	}
	if err := cfg.ApplyPreset("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
