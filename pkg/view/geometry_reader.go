package view

import (
	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// GeometryReader builds its content from its final size. It has no size
// preference of its own: it takes the proposal, with unconstrained
// dimensions falling back to [geometry.DefaultDimension].
//
// Content is called only while drawing. The returned view is measured
// against the final size and centred in it. Drawing a reader without
// Content panics with a [*ProtocolError].
type GeometryReader struct {
	Builtin

	Content func(size geometry.Size) View
}

var _ Primitive = GeometryReader{}

func (g GeometryReader) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return proposed.OrDefault()
}

func (g GeometryReader) Render(ctx canvas.Context, size geometry.Size) {
	if g.Content == nil {
		panic(&ProtocolError{Op: "render", View: "GeometryReader", Reason: "nil content builder"})
	}
	child := g.Content(size)
	childSize := Measure(child, geometry.ProposedFrom(size))
	canvas.Scoped(ctx, func() {
		offset := geometry.Center.Offset(childSize, size)
		ctx.Translate(offset.X, offset.Y)
		Draw(child, ctx, childSize)
	})
}

func (g GeometryReader) Describe() string { return "GeometryReader" }
