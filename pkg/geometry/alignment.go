package geometry

import "fmt"

// HorizontalAlignment positions a child along the x axis.
type HorizontalAlignment int

const (
	HCenter HorizontalAlignment = iota
	Leading
	Trailing
)

func (h HorizontalAlignment) String() string {
	switch h {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return "center"
	}
}

// factor returns the fraction of free space placed before the child.
func (h HorizontalAlignment) factor() float64 {
	switch h {
	case Leading:
		return 0
	case Trailing:
		return 1
	default:
		return 0.5
	}
}

// VerticalAlignment positions a child along the y axis.
type VerticalAlignment int

const (
	VCenter VerticalAlignment = iota
	Top
	Bottom
)

func (v VerticalAlignment) String() string {
	switch v {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "center"
	}
}

func (v VerticalAlignment) factor() float64 {
	switch v {
	case Top:
		return 0
	case Bottom:
		return 1
	default:
		return 0.5
	}
}

// Alignment combines a horizontal and a vertical alignment. The zero value
// is Center.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// Named alignments.
var (
	TopLeading     = Alignment{Leading, Top}
	TopCenter      = Alignment{HCenter, Top}
	TopTrailing    = Alignment{Trailing, Top}
	CenterLeading  = Alignment{Leading, VCenter}
	Center         = Alignment{HCenter, VCenter}
	CenterTrailing = Alignment{Trailing, VCenter}
	BottomLeading  = Alignment{Leading, Bottom}
	BottomCenter   = Alignment{HCenter, Bottom}
	BottomTrailing = Alignment{Trailing, Bottom}
)

var alignmentNames = map[string]Alignment{
	"topLeading":     TopLeading,
	"top":            TopCenter,
	"topTrailing":    TopTrailing,
	"leading":        CenterLeading,
	"center":         Center,
	"trailing":       CenterTrailing,
	"bottomLeading":  BottomLeading,
	"bottom":         BottomCenter,
	"bottomTrailing": BottomTrailing,
}

// ParseAlignment resolves a named alignment such as "topLeading" or
// "center". The empty string is Center.
func ParseAlignment(name string) (Alignment, error) {
	if name == "" {
		return Center, nil
	}
	if a, ok := alignmentNames[name]; ok {
		return a, nil
	}
	return Center, fmt.Errorf("unknown alignment %q", name)
}

// Offset returns the translation that places a child of size child inside a
// parent of size parent. When the child is larger than the parent the offset
// is negative along that axis.
func (a Alignment) Offset(child, parent Size) Point {
	return Point{
		X: (parent.Width - child.Width) * a.Horizontal.factor(),
		Y: (parent.Height - child.Height) * a.Vertical.factor(),
	}
}

func (a Alignment) String() string {
	for name, v := range alignmentNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("%s/%s", a.Vertical, a.Horizontal)
}
