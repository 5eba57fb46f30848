// Package palette turns the CSS-style color strings used in stick options
// into colors both terminal and window hosts can draw with.
package palette

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Parse accepts an SVG 1.1 color name, "#rgb" or "#rrggbb".
func Parse(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		// colorful.Hex scans "#12345" as three bytes; only the two CSS
		// lengths are colors.
		if len(s) != 4 && len(s) != 7 {
			return colorful.Color{}, false
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}
	rgba, ok := colornames.Map[s]
	if !ok {
		return colorful.Color{}, false
	}
	return colorful.MakeColor(rgba)
}

// MustParse is Parse with a fallback color for unknown input.
func MustParse(s string, fallback colorful.Color) colorful.Color {
	if c, ok := Parse(s); ok {
		return c
	}
	return fallback
}

// Opacity parses an opacity string, clamped to [0, 1]. Unparseable input
// is fully opaque.
func Opacity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 1
	}
	return clamp01(v)
}

// Over mixes c over bg with the given alpha.
func Over(c, bg colorful.Color, alpha float64) colorful.Color {
	return bg.BlendRgb(c, clamp01(alpha)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
