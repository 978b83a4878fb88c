package canvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default colours of a fresh context.
var (
	DefaultFill   color.Color = color.Black
	DefaultStroke color.Color = color.Black
)

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff3b30",
	"green":  "#34c759",
	"blue":   "#007aff",
	"yellow": "#ffcc00",
	"orange": "#ff9500",
	"purple": "#af52de",
	"pink":   "#ff2d55",
	"gray":   "#8e8e93",
	"grey":   "#8e8e93",
}

// ParseColor resolves a colour name ("red") or a hex string ("#f00",
// "#ff0000").
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Clamped(), nil
}

// Hex formats c as "#rrggbb". Transparency is dropped.
func Hex(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent colours have no defined hue.
		return "#000000"
	}
	return cf.Hex()
}

// mustHex is ParseColor for trace replay, where colours were produced by Hex.
func mustHex(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return DefaultFill
	}
	return c
}
