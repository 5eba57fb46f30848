package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vstick/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, preset, debug, outFile, noPlot, drive = "", "", false, "", false, 0

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReplayScenarios(t *testing.T) {
	for _, name := range []string{"flick.yaml", "drag.yaml"} {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "replay", filepath.Join("..", "..", "scenarios", name))
			if err != nil {
				t.Fatalf("replay failed: %v\n%s", err, out)
			}
			if !strings.Contains(out, "STEP") {
				t.Errorf("expected frame table, got:\n%s", out)
			}
		})
	}
}

func TestReplayFailsOnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	src := "steps:\n  - {at_ms: 0, kind: down, x: 330, y: 310, expect: {mode: REPOSITION}}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "replay", "--no-plot", path)
	if err == nil {
		t.Fatal("expected replay to fail")
	}
	if !strings.Contains(out, "FAIL step 1: mode") {
		t.Errorf("expected mismatch report, got:\n%s", out)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("expected preset %s in output", name)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vstick.yaml")
	if _, err := execute(t, "config", "--preset", "neon", "--out", path); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Stick.Resolve().StickColor; got != "#ff00ff" {
		t.Errorf("expected neon stick color, got %s", got)
	}
	if cfg.Display.Theme != "cyberpunk" {
		t.Errorf("expected cyberpunk theme, got %s", cfg.Display.Theme)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := execute(t, "config", "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestReplayDrive(t *testing.T) {
	out, err := execute(t, "replay", "--no-plot", "--drive", "1", filepath.Join("..", "..", "scenarios", "flick.yaml"))
	if err != nil {
		t.Fatalf("replay failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "rover after") {
		t.Errorf("expected rover summary, got:\n%s", out)
	}
}
