package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Limits on scene trees accepted by [Build].
const (
	MaxNodes = 10000
	MaxDepth = 256
)

// Build converts the document's root into a view tree.
func Build(doc *Document) (view.View, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no root node")
	}
	return BuildNode(doc.Root)
}

// BuildNode converts a single scene node and its descendants.
func BuildNode(n *Node) (view.View, error) {
	b := &builder{}
	return b.build(n, "root", 0)
}

type builder struct {
	count int
}

func (b *builder) build(n *Node, path string, depth int) (view.View, error) {
	if n == nil {
		return nil, invalid(path, "missing node")
	}
	b.count++
	if b.count > MaxNodes {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has more than %d nodes", MaxNodes)
	}
	if depth > MaxDepth {
		return nil, invalid(path, "nesting deeper than %d", MaxDepth)
	}

	switch n.Type {
	case "rectangle", "ellipse", "text":
		return b.leaf(n, path)
	case "hstack", "vstack":
		return b.stack(n, path, depth)
	case "border", "overlay", "fixed", "frame", "color", "geometry":
		return b.decorator(n, path, depth)
	case "":
		return nil, invalid(path, "missing type")
	default:
		return nil, invalid(path, "unknown type %q", n.Type)
	}
}

func (b *builder) leaf(n *Node, path string) (view.View, error) {
	if len(n.Children) > 0 || n.Content != nil || n.Overlay != nil {
		return nil, invalid(path, "%s takes no children", n.Type)
	}

	var v view.View
	switch n.Type {
	case "rectangle":
		v = view.Rectangle{}
	case "ellipse":
		v = view.Ellipse{}
	default:
		v = view.Text{String: n.Text}
	}

	if n.Color == "" {
		return v, nil
	}
	c, err := parseColor(n.Color, path)
	if err != nil {
		return nil, err
	}
	return view.ForegroundColor{Color: c, Content: v}, nil
}

func (b *builder) stack(n *Node, path string, depth int) (view.View, error) {
	if n.Content != nil || n.Overlay != nil {
		return nil, invalid(path, "%s takes children, not content", n.Type)
	}
	if n.Spacing < 0 || math.IsNaN(n.Spacing) || math.IsInf(n.Spacing, 0) {
		return nil, invalid(path, "spacing must be finite and non-negative, got %g", n.Spacing)
	}
	align, err := parseAlignment(n.Alignment, path)
	if err != nil {
		return nil, err
	}

	children := make([]view.View, 0, len(n.Children))
	for i, c := range n.Children {
		child, err := b.build(c, fmt.Sprintf("%s.children[%d]", path, i), depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	s := view.HStack(children...)
	if n.Type == "vstack" {
		s = view.VStack(children...)
	}
	return s.WithAlignment(align).WithSpacing(n.Spacing), nil
}

func (b *builder) decorator(n *Node, path string, depth int) (view.View, error) {
	if len(n.Children) > 0 {
		return nil, invalid(path, "%s takes content, not children", n.Type)
	}
	if n.Overlay != nil && n.Type != "overlay" {
		return nil, invalid(path, "%s takes no overlay", n.Type)
	}
	content, err := b.build(n.Content, path+".content", depth+1)
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case "border":
		c := color.Color(color.Black)
		if n.Color != "" {
			if c, err = parseColor(n.Color, path); err != nil {
				return nil, err
			}
		}
		width := n.LineWidth
		if width == 0 {
			width = 1
		}
		if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
			return nil, invalid(path, "line_width must be positive, got %g", n.LineWidth)
		}
		return view.Border{Color: c, Width: width, Content: content}, nil

	case "overlay":
		overlay, err := b.build(n.Overlay, path+".overlay", depth+1)
		if err != nil {
			return nil, err
		}
		align, err := parseAlignment(n.Alignment, path)
		if err != nil {
			return nil, err
		}
		return view.Overlay{Content: content, Overlay: overlay, Alignment: align}, nil

	case "fixed":
		f := view.FixedSize{Content: content}
		switch n.Axes {
		case "", "both":
			f.Horizontal, f.Vertical = true, true
		case "horizontal":
			f.Horizontal = true
		case "vertical":
			f.Vertical = true
		default:
			return nil, invalid(path, "unknown axes %q", n.Axes)
		}
		return f, nil

	case "frame":
		for _, d := range []*float64{n.Width, n.Height} {
			if d != nil && (*d < 0 || math.IsNaN(*d) || math.IsInf(*d, 0)) {
				return nil, invalid(path, "frame dimensions must be finite and non-negative")
			}
		}
		align, err := parseAlignment(n.Alignment, path)
		if err != nil {
			return nil, err
		}
		return view.Frame{Width: n.Width, Height: n.Height, Alignment: align, Content: content}, nil

	case "color":
		if n.Color == "" {
			return nil, invalid(path, "color requires a color")
		}
		c, err := parseColor(n.Color, path)
		if err != nil {
			return nil, err
		}
		return view.ForegroundColor{Color: c, Content: content}, nil

	default: // geometry
		fraction := n.Fraction
		if fraction == 0 {
			fraction = 1
		}
		if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
			return nil, invalid(path, "fraction must be in (0, 1], got %g", n.Fraction)
		}
		return view.GeometryReader{Content: func(size geometry.Size) view.View {
			return view.Frame{
				Width:   geometry.Dim(size.Width * fraction),
				Height:  geometry.Dim(size.Height * fraction),
				Content: content,
			}
		}}, nil
	}
}

func parseColor(s, path string) (color.Color, error) {
	c, err := canvas.ParseColor(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", path)
	}
	return c, nil
}

func parseAlignment(s, path string) (geometry.Alignment, error) {
	a, err := geometry.ParseAlignment(s)
	if err != nil {
		return a, errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", path)
	}
	return a, nil
}

func invalid(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidScene, "%s: %s", path, fmt.Sprintf(format, args...))
}
