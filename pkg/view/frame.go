package view

import (
	"fmt"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Frame gives its content a fixed width, height or both. A nil dimension
// passes the incoming proposal through and adopts the content's answer.
// The content is aligned inside the frame when the two differ.
type Frame struct {
	Builtin

	Width     *float64
	Height    *float64
	Alignment geometry.Alignment
	Content   View
}

var _ Primitive = Frame{}

func (f Frame) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	child := Measure(f.Content, geometry.ProposedSize{
		Width:  orProposed(f.Width, proposed.Width),
		Height: orProposed(f.Height, proposed.Height),
	})
	return geometry.Sz(orMeasured(f.Width, child.Width), orMeasured(f.Height, child.Height))
}

func (f Frame) Render(ctx canvas.Context, size geometry.Size) {
	childSize := Measure(f.Content, geometry.ProposedFrom(size))
	canvas.Scoped(ctx, func() {
		offset := f.Alignment.Offset(childSize, size)
		ctx.Translate(offset.X, offset.Y)
		Draw(f.Content, ctx, childSize)
	})
}

func (f Frame) Describe() string {
	return fmt.Sprintf("Frame(width: %s, height: %s)", fmtOptional(f.Width), fmtOptional(f.Height))
}

func (f Frame) Subviews() []View { return []View{f.Content} }

func orProposed(fixed, proposed *float64) *float64 {
	if fixed != nil {
		return fixed
	}
	return proposed
}

func orMeasured(fixed *float64, measured float64) float64 {
	if fixed != nil {
		return max(*fixed, 0)
	}
	return measured
}

func fmtOptional(d *float64) string {
	if d == nil {
		return "nil"
	}
	return fmt.Sprintf("%g", *d)
}
