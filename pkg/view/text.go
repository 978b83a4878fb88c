package view

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// DefaultFace is the face used by Text when none is set.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws a string with the current fill colour.
//
// Its ideal size is the string on one line. When offered less width it
// wraps at spaces; a single word wider than the proposal overflows rather
// than being broken.
type Text struct {
	Builtin

	String string
	Face   font.Face
}

var _ Primitive = Text{}

func (t Text) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	face := t.face()
	lines := wrapLines(face, t.String, proposed.Width)
	var width float64
	for _, line := range lines {
		width = math.Max(width, measureString(face, line))
	}
	height := lineHeight(face) * float64(len(lines))
	if proposed.Width != nil && width > *proposed.Width {
		width = math.Max(*proposed.Width, 0)
	}
	return geometry.Sz(width, height)
}

func (t Text) Render(ctx canvas.Context, size geometry.Size) {
	face := t.face()
	lh := lineHeight(face)
	for i, line := range wrapLines(face, t.String, &size.Width) {
		ctx.DrawText(line, geometry.Rect{
			Origin: geometry.Point{Y: float64(i) * lh},
			Size:   geometry.Sz(size.Width, lh),
		})
	}
}

func (t Text) Describe() string { return fmt.Sprintf("Text(%q)", t.String) }

func (t Text) face() font.Face {
	if t.Face == nil {
		return DefaultFace
	}
	return t.Face
}

func lineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height.Ceil())
}

func measureString(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s).Ceil())
}

// wrapLines splits s into lines no wider than width where spaces allow.
// A nil width keeps explicit line breaks only.
func wrapLines(face font.Face, s string, width *float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if width == nil {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measureString(face, candidate) > *width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}
