package view

// Describer is implemented by views that label themselves in tree dumps
// and diagrams.
type Describer interface {
	Describe() string
}

// Parent is implemented by primitives that wrap other views.
type Parent interface {
	Subviews() []View
}

// Node is one entry of an inspected view tree.
type Node struct {
	Label     string  `json:"label"`
	Primitive bool    `json:"primitive"`
	Children  []*Node `json:"children,omitempty"`
}

// Inspect walks v without measuring or drawing it. Composite views have
// their body as the single child; primitives list their [Parent] subviews.
// Content built at render time, such as a [GeometryReader]'s, is not
// visited.
//
// Inspect panics with a [*ProtocolError] on a nil body, like [Measure].
func Inspect(v View) *Node {
	return inspect(v, 0)
}

func inspect(v View, depth int) *Node {
	if v == nil {
		panic(&ProtocolError{Op: "inspect", Reason: "nil view"})
	}
	if depth > maxBodyDepth {
		panic(&ProtocolError{Op: "inspect", View: Name(v), Reason: "tree too deep"})
	}
	n := &Node{Label: Name(v)}
	if _, ok := v.(Primitive); ok {
		n.Primitive = true
		if p, ok := v.(Parent); ok {
			for _, child := range p.Subviews() {
				n.Children = append(n.Children, inspect(child, depth+1))
			}
		}
		return n
	}
	body := v.Body()
	if body == nil {
		panic(&ProtocolError{Op: "inspect", View: n.Label, Reason: "composite view returned a nil body"})
	}
	n.Children = []*Node{inspect(body, depth+1)}
	return n
}

// Walk calls fn for n and every descendant in depth-first order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) { count++ })
	return count
}
