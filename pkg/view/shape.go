package view

import (
	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Rectangle fills whatever size it is offered with the current fill colour.
// Unconstrained dimensions fall back to [geometry.DefaultDimension].
type Rectangle struct{ Builtin }

// Ellipse fills the ellipse inscribed in its size.
type Ellipse struct{ Builtin }

var (
	_ Primitive = Rectangle{}
	_ Primitive = Ellipse{}
)

func (Rectangle) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return proposed.OrDefault()
}

func (Rectangle) Render(ctx canvas.Context, size geometry.Size) {
	ctx.FillRect(geometry.RectOf(size))
}

func (Rectangle) Describe() string { return "Rectangle" }

func (Ellipse) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return proposed.OrDefault()
}

func (Ellipse) Render(ctx canvas.Context, size geometry.Size) {
	ctx.FillEllipse(geometry.RectOf(size))
}

func (Ellipse) Describe() string { return "Ellipse" }
