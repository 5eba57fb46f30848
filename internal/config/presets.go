package config

import (
	"sort"

	"github.com/san-kum/vstick/internal/stick"
)

type Preset struct {
	Stick stick.Options
	Theme string
}

var Presets = map[string]Preset{
	"classic": {
		Stick: stick.Options{},
		Theme: "classic",
	},
	"neon": {
		Stick: stick.Options{
			StickColor:   stick.String("#ff00ff"),
			StickBgColor: stick.String("#00ffff"),
			StickBg:      stick.String("#0a0a0a"),
			StickOpacity: stick.String("0.8"),
		},
		Theme: "cyberpunk",
	},
	"retro": {
		Stick: stick.Options{
			StickColor:   stick.String("#88ff88"),
			StickBgColor: stick.String("#005500"),
			StickBg:      stick.String("#001100"),
			StickOpacity: stick.String("0.9"),
		},
		Theme: "retro",
	},
	"ghost": {
		Stick: stick.Options{
			StickColor:   stick.String("white"),
			StickBgColor: stick.String("gray"),
			StickBg:      stick.String("black"),
			StickOpacity: stick.String("0.3"),
		},
		Theme: "minimal",
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
