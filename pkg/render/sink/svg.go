package sink

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"math"
	"strconv"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

const svgFontFamily = "ui-monospace, Menlo, monospace"

type SVGOption func(*SVGSurface)

// WithBackground fills the surface with c before anything is drawn.
func WithBackground(c color.Color) SVGOption {
	return func(s *SVGSurface) { s.background = c }
}

// WithFontSize sets the font size used for text elements (default 13).
func WithFontSize(size float64) SVGOption {
	return func(s *SVGSurface) { s.fontSize = size }
}

// SVGSurface is a [canvas.Context] that writes SVG elements with absolute
// coordinates. State tracking is delegated to an embedded recorder.
type SVGSurface struct {
	*canvas.Recorder

	size       geometry.Size
	background color.Color
	fontSize   float64
	body       bytes.Buffer
}

var _ canvas.Context = (*SVGSurface)(nil)

// NewSVGSurface returns an empty surface of the given size.
func NewSVGSurface(size geometry.Size, opts ...SVGOption) *SVGSurface {
	s := &SVGSurface{
		Recorder: canvas.NewRecorder(size),
		size:     size,
		fontSize: 13,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVGSurface) FillRect(r geometry.Rect) {
	s.Recorder.FillRect(r)
	r = r.Offset(s.Origin())
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(r.MinX()), num(r.MinY()), num(r.Size.Width), num(r.Size.Height), s.Fill())
}

func (s *SVGSurface) FillEllipse(r geometry.Rect) {
	s.Recorder.FillEllipse(r)
	r = r.Offset(s.Origin())
	c := r.Center()
	fmt.Fprintf(&s.body, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="%s"/>`+"\n",
		num(c.X), num(c.Y), num(r.Size.Width/2), num(r.Size.Height/2), s.Fill())
}

func (s *SVGSurface) StrokeRect(r geometry.Rect, lineWidth float64) {
	s.Recorder.StrokeRect(r, lineWidth)
	r = r.Offset(s.Origin())
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(r.MinX()), num(r.MinY()), num(r.Size.Width), num(r.Size.Height), s.Stroke(), num(lineWidth))
}

func (s *SVGSurface) DrawText(text string, r geometry.Rect) {
	s.Recorder.DrawText(text, r)
	r = r.Offset(s.Origin())
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-family="%s" font-size="%s" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
		num(r.MinX()), num(r.Center().Y), svgFontFamily, num(s.fontSize), s.Fill(), html.EscapeString(text))
}

// Bytes returns the complete SVG document.
func (s *SVGSurface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.size.Width, s.size.Height, s.size.Width, s.size.Height)
	if s.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", canvas.Hex(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderSVG replays t onto a fresh SVG surface.
func RenderSVG(t *canvas.Trace, opts ...SVGOption) []byte {
	s := NewSVGSurface(t.Size, opts...)
	canvas.Replay(t, s)
	return s.Bytes()
}

// num formats a coordinate rounded to two decimals without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
