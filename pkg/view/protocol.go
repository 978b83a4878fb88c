package view

import (
	"fmt"
	"strings"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// maxBodyDepth bounds the chain of composite bodies followed before a
// primitive must be reached.
const maxBodyDepth = 1024

// Measure returns the size v takes when offered proposed.
func Measure(v View, proposed geometry.ProposedSize) geometry.Size {
	return Resolve(v, "measure").SizeThatFits(proposed).Clamped()
}

// Draw renders v into ctx at the committed size.
func Draw(v View, ctx canvas.Context, size geometry.Size) {
	Resolve(v, "render").Render(ctx, size.Clamped())
}

// Resolve follows composite bodies until it reaches a primitive. It panics
// with a [*ProtocolError] when a body is nil or the chain does not end.
func Resolve(v View, op string) Primitive {
	for depth := 0; depth < maxBodyDepth; depth++ {
		if v == nil {
			panic(&ProtocolError{Op: op, Reason: "nil view"})
		}
		if p, ok := v.(Primitive); ok {
			return p
		}
		body := v.Body()
		if body == nil {
			panic(&ProtocolError{Op: op, View: Name(v), Reason: "composite view returned a nil body"})
		}
		v = body
	}
	panic(&ProtocolError{Op: op, View: Name(v), Reason: fmt.Sprintf("body chain deeper than %d", maxBodyDepth)})
}

// Name returns a short label for v: its Describe output when it implements
// [Describer], otherwise its unqualified type name.
func Name(v View) string {
	if v == nil {
		return "<nil>"
	}
	if d, ok := v.(Describer); ok {
		return d.Describe()
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
