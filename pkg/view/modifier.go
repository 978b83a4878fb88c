package view

import (
	"image/color"

	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Modifier wraps a view in decorators through chained calls:
//
//	view.Modify(view.Rectangle{}).
//	    Frame(nil, geometry.Dim(100)).
//	    Foreground(color.RGBA{R: 255, A: 255}).
//	    Border(color.Black, 2)
//
// A Modifier is itself a composite view whose body is the decorated view.
type Modifier struct {
	view View
}

// Modify starts a modifier chain on v.
func Modify(v View) Modifier {
	if m, ok := v.(Modifier); ok {
		return m
	}
	return Modifier{view: v}
}

// Body returns the decorated view.
func (m Modifier) Body() View { return m.view }

// Frame fixes the given dimensions, centring the content.
func (m Modifier) Frame(width, height *float64) Modifier {
	return m.FrameAligned(width, height, geometry.Center)
}

// FrameAligned fixes the given dimensions and aligns the content.
func (m Modifier) FrameAligned(width, height *float64, a geometry.Alignment) Modifier {
	return Modifier{view: Frame{Width: width, Height: height, Alignment: a, Content: m.view}}
}

// Border strokes the content's edge.
func (m Modifier) Border(c color.Color, width float64) Modifier {
	return Modifier{view: Border{Color: c, Width: width, Content: m.view}}
}

// Overlay draws o on top of the content.
func (m Modifier) Overlay(o View, a geometry.Alignment) Modifier {
	return Modifier{view: Overlay{Content: m.view, Overlay: o, Alignment: a}}
}

// FixedSize lets the content take its ideal size along the selected axes.
func (m Modifier) FixedSize(horizontal, vertical bool) Modifier {
	return Modifier{view: FixedSize{Content: m.view, Horizontal: horizontal, Vertical: vertical}}
}

// Foreground sets the fill colour of the content.
func (m Modifier) Foreground(c color.Color) Modifier {
	return Modifier{view: ForegroundColor{Color: c, Content: m.view}}
}

// Erased returns the decorated view wrapped in an [AnyView].
func (m Modifier) Erased() AnyView { return Erase(m.view) }
