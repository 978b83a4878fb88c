// Package canvas defines the drawing context views render into and the
// render trace that records what they drew.
//
// # Context
//
// [Context] is the narrow surface contract used by the layout engine: state
// save/restore, origin translation, colour selection and a handful of
// drawing primitives. Every node that changes context state brackets the
// change with Save and Restore, so siblings never observe each other's
// translation or colours. [Scoped] packages that discipline.
//
// # Trace
//
// A [Recorder] is a Context that records operations into a [Trace]. A trace
// can be replayed onto any other Context with [Replay] (the sink package
// replays traces onto SVG and raster surfaces), flattened into absolute
// drawings with [Trace.Flatten], or exported as JSON.
package canvas

import (
	"image/color"

	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Context is the drawing surface collaborator.
type Context interface {
	// Save pushes the current origin and colours.
	Save()
	// Restore pops the most recently saved origin and colours.
	Restore()
	// Translate moves the origin by (dx, dy).
	Translate(dx, dy float64)
	// SetFillColor selects the colour used by FillRect, FillEllipse and DrawText.
	SetFillColor(c color.Color)
	// SetStrokeColor selects the colour used by StrokeRect.
	SetStrokeColor(c color.Color)
	// FillRect fills r with the fill colour.
	FillRect(r geometry.Rect)
	// FillEllipse fills the ellipse inscribed in r with the fill colour.
	FillEllipse(r geometry.Rect)
	// StrokeRect strokes the outline of r with the given line width.
	StrokeRect(r geometry.Rect, lineWidth float64)
	// DrawText draws s inside r with the fill colour.
	DrawText(s string, r geometry.Rect)
}

// Scoped runs fn between ctx.Save and ctx.Restore. Restore runs even when fn
// panics, so an aborted pass never leaves the context translated.
func Scoped(ctx Context, fn func()) {
	ctx.Save()
	defer ctx.Restore()
	fn()
}
