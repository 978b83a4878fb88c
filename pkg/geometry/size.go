// Package geometry provides the scalar value types shared by layout and
// rendering: proposed and concrete sizes, points, rectangles and alignments.
//
// # Proposals
//
// A [ProposedSize] is what a parent offers a child during measurement. Each
// dimension is optional: nil means "no constraint offered". A concrete value
// is a hint, not a mandate; the child may answer with a different [Size].
//
// Two readings turn a proposal into a concrete size:
//
//   - [ProposedSize.OrMax]: unconstrained dimensions become [Max], for
//     children that must not shrink.
//   - [ProposedSize.OrDefault]: unconstrained dimensions become
//     [DefaultDimension], for children with no intrinsic size.
//
// Both readings clamp negative values to zero, so degenerate proposals coming
// out of a container never produce negative sizes.
package geometry

import (
	"fmt"
	"math"
)

const (
	// Max is the unbounded sentinel used by OrMax.
	Max = math.MaxFloat64

	// DefaultDimension is the fallback used by OrDefault for an
	// unconstrained dimension.
	DefaultDimension = 10.0
)

// Size is a concrete, fully determined width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// Clamped returns s with negative or NaN dimensions replaced by zero.
func (s Size) Clamped() Size {
	return Size{Width: nonNegative(s.Width), Height: nonNegative(s.Height)}
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// IsFinite reports whether both dimensions are finite numbers.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsNaN(s.Width) &&
		!math.IsInf(s.Height, 0) && !math.IsNaN(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// ProposedSize is a pair of optional dimensions passed down during
// measurement. A nil dimension means no constraint is offered.
type ProposedSize struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Propose returns a proposal with both dimensions set.
func Propose(w, h float64) ProposedSize {
	return ProposedSize{Width: Dim(w), Height: Dim(h)}
}

// Unspecified returns a proposal with no constraint in either dimension.
func Unspecified() ProposedSize { return ProposedSize{} }

// ProposedFrom turns a concrete size into a fully constrained proposal.
func ProposedFrom(s Size) ProposedSize {
	return Propose(s.Width, s.Height)
}

// Dim returns a pointer to v, for building proposals and frames.
func Dim(v float64) *float64 { return &v }

// WithWidth returns a copy of p with the width replaced.
func (p ProposedSize) WithWidth(w *float64) ProposedSize {
	p.Width = w
	return p
}

// WithHeight returns a copy of p with the height replaced.
func (p ProposedSize) WithHeight(h *float64) ProposedSize {
	p.Height = h
	return p
}

// OrMax resolves unconstrained dimensions to Max.
func (p ProposedSize) OrMax() Size {
	return Size{Width: resolve(p.Width, Max), Height: resolve(p.Height, Max)}
}

// OrDefault resolves unconstrained dimensions to DefaultDimension.
func (p ProposedSize) OrDefault() Size {
	return Size{
		Width:  resolve(p.Width, DefaultDimension),
		Height: resolve(p.Height, DefaultDimension),
	}
}

// Equal reports whether two proposals carry the same constraints.
func (p ProposedSize) Equal(o ProposedSize) bool {
	return dimEqual(p.Width, o.Width) && dimEqual(p.Height, o.Height)
}

func (p ProposedSize) String() string {
	return fmt.Sprintf("%sx%s", fmtDim(p.Width), fmtDim(p.Height))
}

func resolve(d *float64, fallback float64) float64 {
	if d == nil {
		return fallback
	}
	return nonNegative(*d)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func dimEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtDim(d *float64) string {
	if d == nil {
		return "nil"
	}
	return fmt.Sprintf("%g", *d)
}
