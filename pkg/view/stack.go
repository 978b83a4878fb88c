package view

import (
	"fmt"
	"math"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Axis is the direction a stack lays its children out along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Stack lays out children in sequence along one axis.
//
// The main-axis extent is distributed in one pass in child order. Each child
// is offered an equal share of what remains unclaimed and the extent it
// reports is subtracted before the next child is measured. A child that takes
// more than its share shrinks the shares of every later child; a child that
// takes less leaves the rest to them. Once the remaining extent goes negative,
// later children are offered zero.
//
// When the main axis is unconstrained every child is offered nil along it
// and takes its ideal extent.
type Stack struct {
	Builtin

	Axis Axis
	// Alignment positions children on the cross axis. Only the cross-axis
	// component is used. The zero value centres; use a top or leading
	// alignment to pin children to the cross-axis origin.
	Alignment geometry.Alignment
	Spacing   float64
	Children  []AnyView
}

var _ Primitive = Stack{}

// HStack lays children out left to right.
func HStack(children ...View) Stack {
	return Stack{Axis: Horizontal, Children: EraseAll(children...)}
}

// VStack lays children out top to bottom.
func VStack(children ...View) Stack {
	return Stack{Axis: Vertical, Children: EraseAll(children...)}
}

// WithAlignment returns a copy of s with the cross-axis alignment replaced.
func (s Stack) WithAlignment(a geometry.Alignment) Stack {
	s.Alignment = a
	return s
}

// WithSpacing returns a copy of s with the given gap between children.
// Negative or non-finite spacing is treated as zero.
func (s Stack) WithSpacing(spacing float64) Stack {
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		spacing = 0
	}
	s.Spacing = math.Max(spacing, 0)
	return s
}

// Layout measures every child against its share of proposed and returns the
// sizes in child order.
func (s Stack) Layout(proposed geometry.ProposedSize) []geometry.Size {
	n := len(s.Children)
	sizes := make([]geometry.Size, 0, n)
	if n == 0 {
		return sizes
	}

	main, cross := s.split(proposed)
	var remaining float64
	if main != nil {
		remaining = *main - s.gaps()
	}

	for i, child := range s.Children {
		var share *float64
		if main != nil {
			// Negative remaining offers zero rather than a negative share.
			share = geometry.Dim(math.Max(remaining/float64(n-i), 0))
		}
		size := child.SizeThatFits(s.join(share, cross))
		sizes = append(sizes, size)
		remaining -= s.mainOf(size)
	}
	return sizes
}

func (s Stack) SizeThatFits(proposed geometry.ProposedSize) geometry.Size {
	return s.total(s.Layout(proposed))
}

func (s Stack) Render(ctx canvas.Context, size geometry.Size) {
	sizes := s.Layout(geometry.ProposedFrom(size))
	var cursor float64
	for i, child := range s.Children {
		childSize := sizes[i]
		offset := s.crossOffset(childSize, size)
		canvas.Scoped(ctx, func() {
			if s.Axis == Vertical {
				ctx.Translate(offset, cursor)
			} else {
				ctx.Translate(cursor, offset)
			}
			child.Render(ctx, childSize)
		})
		cursor += s.mainOf(childSize) + s.Spacing
	}
}

func (s Stack) Describe() string {
	name := "HStack"
	if s.Axis == Vertical {
		name = "VStack"
	}
	if s.Spacing == 0 {
		return fmt.Sprintf("%s(alignment: %s)", name, s.crossAlignment())
	}
	return fmt.Sprintf("%s(alignment: %s, spacing: %g)", name, s.crossAlignment(), s.Spacing)
}

func (s Stack) Subviews() []View {
	out := make([]View, len(s.Children))
	for i, c := range s.Children {
		out[i] = c
	}
	return out
}

func (s Stack) total(sizes []geometry.Size) geometry.Size {
	var main, cross float64
	for _, sz := range sizes {
		main += s.mainOf(sz)
		cross = math.Max(cross, s.crossOf(sz))
	}
	if len(sizes) > 0 {
		main += s.gaps()
	}
	if s.Axis == Vertical {
		return geometry.Sz(cross, main)
	}
	return geometry.Sz(main, cross)
}

func (s Stack) gaps() float64 {
	if len(s.Children) < 2 {
		return 0
	}
	return s.Spacing * float64(len(s.Children)-1)
}

func (s Stack) split(p geometry.ProposedSize) (main, cross *float64) {
	if s.Axis == Vertical {
		return p.Height, p.Width
	}
	return p.Width, p.Height
}

func (s Stack) join(main, cross *float64) geometry.ProposedSize {
	if s.Axis == Vertical {
		return geometry.ProposedSize{Width: cross, Height: main}
	}
	return geometry.ProposedSize{Width: main, Height: cross}
}

func (s Stack) mainOf(sz geometry.Size) float64 {
	if s.Axis == Vertical {
		return sz.Height
	}
	return sz.Width
}

func (s Stack) crossOf(sz geometry.Size) float64 {
	if s.Axis == Vertical {
		return sz.Width
	}
	return sz.Height
}

// crossOffset aligns a child on the cross axis of a container of size
// parent.
func (s Stack) crossOffset(child, parent geometry.Size) float64 {
	if s.Axis == Vertical {
		slot := geometry.Sz(parent.Width, child.Height)
		return s.Alignment.Offset(child, slot).X
	}
	slot := geometry.Sz(child.Width, parent.Height)
	return s.Alignment.Offset(child, slot).Y
}

func (s Stack) crossAlignment() string {
	if s.Axis == Vertical {
		return s.Alignment.Horizontal.String()
	}
	return s.Alignment.Vertical.String()
}
