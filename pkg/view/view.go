package view

import (
	"fmt"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// View is an immutable description of something to draw.
//
// Composite views return the view they are built from. Primitive views also
// satisfy View but implement [Primitive]; their Body is never called.
type View interface {
	Body() View
}

// Primitive is a view with its own layout and drawing.
type Primitive interface {
	View

	// SizeThatFits returns the size the view takes when offered proposed.
	// It must return a finite, non-negative size for every proposal,
	// including fully unconstrained and negative ones.
	SizeThatFits(proposed geometry.ProposedSize) geometry.Size

	// Render draws the view into ctx, occupying exactly size. The context's
	// state must be unchanged when Render returns.
	Render(ctx canvas.Context, size geometry.Size)
}

// Builtin is embedded by primitive views. Its Body reports protocol misuse.
type Builtin struct{}

// Body panics: primitives are measured and drawn directly.
func (Builtin) Body() View {
	panic(&ProtocolError{Op: "body", Reason: "primitive views have no body"})
}

// ProtocolError reports misuse of the layout protocol. It indicates a bug in
// a view implementation, not a runtime condition, and aborts the pass.
type ProtocolError struct {
	Op     string
	View   string
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("view protocol: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("view protocol: %s %s: %s", e.Op, e.View, e.Reason)
}

// Catch runs fn and converts a protocol misuse panic into an error. Other
// panics propagate unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ProtocolError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
