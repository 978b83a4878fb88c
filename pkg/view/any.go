package view

import (
	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// AnyView hides the concrete type of a view behind its layout functions.
// The zero value is not usable; construct one with [Erase].
type AnyView struct {
	Builtin

	view   View
	size   func(geometry.ProposedSize) geometry.Size
	render func(canvas.Context, geometry.Size)
}

var _ Primitive = AnyView{}

// Erase wraps v. Measuring or drawing the result behaves exactly like
// measuring or drawing v. Erasing an AnyView returns it unchanged.
func Erase(v View) AnyView {
	if a, ok := v.(AnyView); ok {
		return a
	}
	return AnyView{
		view: v,
		size: func(p geometry.ProposedSize) geometry.Size {
			return Measure(v, p)
		},
		render: func(ctx canvas.Context, s geometry.Size) {
			Draw(v, ctx, s)
		},
	}
}

// EraseAll wraps each view in vs.
func EraseAll(vs ...View) []AnyView {
	out := make([]AnyView, len(vs))
	for i, v := range vs {
		out[i] = Erase(v)
	}
	return out
}

// Unwrap returns the wrapped view.
func (a AnyView) Unwrap() View { return a.view }

func (a AnyView) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	if a.size == nil {
		panic(&ProtocolError{Op: "measure", View: "AnyView", Reason: "empty erased view"})
	}
	return a.size(proposed)
}

func (a AnyView) Render(ctx canvas.Context, size geometry.Size) {
	if a.render == nil {
		panic(&ProtocolError{Op: "render", View: "AnyView", Reason: "empty erased view"})
	}
	a.render(ctx, size)
}

func (a AnyView) Describe() string { return "AnyView" }

func (a AnyView) Subviews() []View {
	if a.view == nil {
		return nil
	}
	return []View{a.view}
}
