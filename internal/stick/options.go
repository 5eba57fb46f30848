package stick

const (
	DefaultStickColor   = "black"
	DefaultStickBgColor = "red"
	DefaultStickBg      = "white"
	DefaultStickOpacity = "0.5"
)

// Options are the recognized construction options. A nil field is unset.
// Unset and empty fields both fall back to the defaults above.
type Options struct {
	StickColor   *string `yaml:"stick_color,omitempty"`
	StickBgColor *string `yaml:"stick_bg_color,omitempty"`
	StickBg      *string `yaml:"stick_bg,omitempty"`
	StickOpacity *string `yaml:"stick_opacity,omitempty"`
}

// Resolved holds options with every default applied.
type Resolved struct {
	StickColor   string
	StickBgColor string
	StickBg      string
	StickOpacity string
}

// String returns a pointer to s, for filling Options literals.
func String(s string) *string { return &s }

// IsSet reports whether an option field was given, even if empty.
func IsSet(v *string) bool { return v != nil }

func (o Options) Resolve() Resolved {
	return Resolved{
		StickColor:   orDefault(o.StickColor, DefaultStickColor),
		StickBgColor: orDefault(o.StickBgColor, DefaultStickBgColor),
		StickBg:      orDefault(o.StickBg, DefaultStickBg),
		StickOpacity: orDefault(o.StickOpacity, DefaultStickOpacity),
	}
}

// Merge returns o with every field set in other overriding it.
func (o Options) Merge(other Options) Options {
	if other.StickColor != nil {
		o.StickColor = other.StickColor
	}
	if other.StickBgColor != nil {
		o.StickBgColor = other.StickBgColor
	}
	if other.StickBg != nil {
		o.StickBg = other.StickBg
	}
	if other.StickOpacity != nil {
		o.StickOpacity = other.StickOpacity
	}
	return o
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
