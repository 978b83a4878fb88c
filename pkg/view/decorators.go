package view

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Border strokes a rectangle along the edge of its content. It does not
// change the content's size; the stroke is inset by half its width so it
// stays inside the final bounds.
type Border struct {
	Builtin

	Color   color.Color
	Width   float64
	Content View
}

// Overlay draws a second view on top of its content. Only the content takes
// part in layout: the overlay is offered the content's final size and
// aligned inside it.
type Overlay struct {
	Builtin

	Content   View
	Overlay   View
	Alignment geometry.Alignment
}

// FixedSize measures its content with the selected proposal dimensions
// removed, so the content takes its ideal size along those axes.
type FixedSize struct {
	Builtin

	Content    View
	Horizontal bool
	Vertical   bool
}

// ForegroundColor sets the fill colour for its content.
type ForegroundColor struct {
	Builtin

	Color   color.Color
	Content View
}

var (
	_ Primitive = Border{}
	_ Primitive = Overlay{}
	_ Primitive = FixedSize{}
	_ Primitive = ForegroundColor{}
)

func (b Border) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return Measure(b.Content, proposed)
}

func (b Border) Render(ctx canvas.Context, size geometry.Size) {
	Draw(b.Content, ctx, size)
	canvas.Scoped(ctx, func() {
		ctx.SetStrokeColor(colorOr(b.Color, canvas.DefaultStroke))
		ctx.StrokeRect(geometry.RectOf(size).Inset(b.Width/2, b.Width/2), b.Width)
	})
}

func (b Border) Describe() string {
	return fmt.Sprintf("Border(%s, %g)", canvas.Hex(colorOr(b.Color, canvas.DefaultStroke)), b.Width)
}

func (b Border) Subviews() []View { return []View{b.Content} }

func (o Overlay) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return Measure(o.Content, proposed)
}

func (o Overlay) Render(ctx canvas.Context, size geometry.Size) {
	Draw(o.Content, ctx, size)
	childSize := Measure(o.Overlay, geometry.ProposedFrom(size))
	canvas.Scoped(ctx, func() {
		offset := o.Alignment.Offset(childSize, size)
		ctx.Translate(offset.X, offset.Y)
		Draw(o.Overlay, ctx, childSize)
	})
}

func (o Overlay) Describe() string { return fmt.Sprintf("Overlay(%s)", o.Alignment) }

func (o Overlay) Subviews() []View { return []View{o.Content, o.Overlay} }

func (f FixedSize) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	if f.Horizontal {
		proposed.Width = nil
	}
	if f.Vertical {
		proposed.Height = nil
	}
	return Measure(f.Content, proposed)
}

func (f FixedSize) Render(ctx canvas.Context, size geometry.Size) {
	Draw(f.Content, ctx, size)
}

func (f FixedSize) Describe() string {
	return fmt.Sprintf("FixedSize(horizontal: %t, vertical: %t)", f.Horizontal, f.Vertical)
}

func (f FixedSize) Subviews() []View { return []View{f.Content} }

func (c ForegroundColor) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return Measure(c.Content, proposed)
}

func (c ForegroundColor) Render(ctx canvas.Context, size geometry.Size) {
	canvas.Scoped(ctx, func() {
		ctx.SetFillColor(colorOr(c.Color, canvas.DefaultFill))
		Draw(c.Content, ctx, size)
	})
}

func (c ForegroundColor) Describe() string {
	return fmt.Sprintf("ForegroundColor(%s)", canvas.Hex(colorOr(c.Color, canvas.DefaultFill)))
}

func (c ForegroundColor) Subviews() []View { return []View{c.Content} }

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
