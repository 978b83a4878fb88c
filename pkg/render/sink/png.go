package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// MaxRasterPixels bounds the pixel count of a raster surface.
const MaxRasterPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
	face       font.Face
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground fills the image with c before drawing (default white).
// A nil colour leaves it transparent.
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithFace sets the font face used for text.
func WithFace(f font.Face) PNGOption {
	return func(r *pngRenderer) { r.face = f }
}

// PNGSurface is a [canvas.Context] backed by a gg raster context. Save and
// Restore map to the gg state stack, which also carries colours.
type PNGSurface struct {
	dc     *gg.Context
	fill   color.Color
	stroke color.Color
	stack  [][2]color.Color
}

var _ canvas.Context = (*PNGSurface)(nil)

// NewPNGSurface allocates a raster surface for size at the given scale.
func NewPNGSurface(size geometry.Size, opts ...PNGOption) (*PNGSurface, error) {
	r := pngRenderer{scale: 2.0, background: color.White, face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeSurface, "invalid scale %g", r.scale)
	}

	w := int(math.Ceil(size.Width * r.scale))
	h := int(math.Ceil(size.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeSurface, "cannot allocate %dx%d raster", w, h)
	}
	if float64(w)*float64(h) > MaxRasterPixels {
		return nil, errors.New(errors.ErrCodeSurface, "raster %dx%d exceeds %d pixels", w, h, MaxRasterPixels)
	}

	dc := gg.NewContext(w, h)
	if r.background != nil {
		dc.SetColor(r.background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(r.face)

	s := &PNGSurface{dc: dc}
	s.SetFillColor(canvas.DefaultFill)
	s.SetStrokeColor(canvas.DefaultStroke)
	return s, nil
}

func (s *PNGSurface) Save() {
	s.dc.Push()
	s.stack = append(s.stack, [2]color.Color{s.fill, s.stroke})
}

func (s *PNGSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.dc.Pop()
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.fill, s.stroke = top[0], top[1]
}

func (s *PNGSurface) Translate(dx, dy float64) { s.dc.Translate(dx, dy) }

func (s *PNGSurface) SetFillColor(c color.Color) { s.fill = c }

func (s *PNGSurface) SetStrokeColor(c color.Color) { s.stroke = c }

func (s *PNGSurface) FillRect(r geometry.Rect) {
	s.dc.DrawRectangle(r.MinX(), r.MinY(), r.Size.Width, r.Size.Height)
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
	s.dc.Fill()
}

func (s *PNGSurface) FillEllipse(r geometry.Rect) {
	c := r.Center()
	s.dc.DrawEllipse(c.X, c.Y, r.Size.Width/2, r.Size.Height/2)
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
	s.dc.Fill()
}

func (s *PNGSurface) StrokeRect(r geometry.Rect, lineWidth float64) {
	s.dc.DrawRectangle(r.MinX(), r.MinY(), r.Size.Width, r.Size.Height)
	s.dc.SetStrokeStyle(gg.NewSolidPattern(s.stroke))
	s.dc.SetLineWidth(lineWidth)
	s.dc.Stroke()
}

func (s *PNGSurface) DrawText(text string, r geometry.Rect) {
	s.dc.SetColor(s.fill)
	s.dc.DrawStringAnchored(text, r.MinX(), r.Center().Y, 0, 0.5)
}

// Encode writes the surface as PNG.
func (s *PNGSurface) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSurface, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderPNG rasterizes t.
func RenderPNG(t *canvas.Trace, opts ...PNGOption) ([]byte, error) {
	s, err := NewPNGSurface(t.Size, opts...)
	if err != nil {
		return nil, err
	}
	canvas.Replay(t, s)
	return s.Encode()
}
