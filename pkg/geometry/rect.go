package geometry

// Point represents an (X, Y) coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns a new Point offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns a new Point with other subtracted.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rect is an origin plus a size.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// RectOf returns the rectangle at the origin with the given size.
func RectOf(s Size) Rect { return Rect{Size: s} }

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// Inset shrinks the rectangle by dx on the left and right and dy on the top
// and bottom. The size never goes negative; a fully collapsed rectangle is
// centered on the original.
func (r Rect) Inset(dx, dy float64) Rect {
	w := r.Size.Width - 2*dx
	h := r.Size.Height - 2*dy
	out := Rect{Origin: Point{X: r.Origin.X + dx, Y: r.Origin.Y + dy}, Size: Size{Width: w, Height: h}}
	if w < 0 {
		out.Origin.X = r.Origin.X + r.Size.Width/2
		out.Size.Width = 0
	}
	if h < 0 {
		out.Origin.Y = r.Origin.Y + r.Size.Height/2
		out.Size.Height = 0
	}
	return out
}

// Offset returns the rectangle translated by p.
func (r Rect) Offset(p Point) Rect {
	r.Origin = r.Origin.Add(p)
	return r
}
