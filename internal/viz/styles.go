package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Secondary)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true)
}

func modeStyle(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Success)
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func stat(label string, value any) string {
	return labelStyle().Render(label+" ") + valueStyle().Render(fmt.Sprint(value))
}

// DirectionPad renders a small cross with the active direction lit.
func DirectionPad(dir string) string {
	on := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
	off := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	cell := func(name, glyph string) string {
		if name == dir {
			return on.Render(glyph)
		}
		return off.Render(glyph)
	}
	return strings.Join([]string{
		cell("UP", "▲"), cell("LEFT", "◀"), cell("STATIC", "●"), cell("RIGHT", "▶"), cell("DOWN", "▼"),
	}, " ")
}
