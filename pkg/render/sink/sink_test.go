package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

func sampleTrace(t *testing.T) *canvas.Trace {
	t.Helper()
	rec := canvas.NewRecorder(geometry.Sz(300, 100))
	canvas.Scoped(rec, func() {
		rec.SetFillColor(color.RGBA{R: 255, A: 255})
		rec.FillRect(geometry.RectOf(geometry.Sz(150, 100)))
	})
	canvas.Scoped(rec, func() {
		rec.Translate(150, 25)
		rec.SetFillColor(color.RGBA{B: 255, A: 255})
		rec.FillEllipse(geometry.RectOf(geometry.Sz(150, 50)))
		rec.SetStrokeColor(color.Black)
		rec.StrokeRect(geometry.RectOf(geometry.Sz(150, 50)).Inset(1, 1), 2)
		rec.DrawText("a<b", geometry.RectOf(geometry.Sz(21, 13)))
	})
	trace, err := rec.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return trace
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleTrace(t), WithBackground(color.White)))

	wants := []string{
		`viewBox="0 0 300.0 100.0"`,
		`<rect width="100%" height="100%" fill="#ffffff"/>`,
		`<rect x="0" y="0" width="150" height="100" fill="#ff0000"/>`,
		`<ellipse cx="225" cy="50" rx="75" ry="25" fill="#0000ff"/>`,
		`<rect x="151" y="26" width="148" height="48" fill="none" stroke="#000000" stroke-width="2"/>`,
		`>a&lt;b</text>`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sampleTrace(t), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 100 {
		t.Errorf("bounds = %v, want 300x100", b)
	}
	r, g, b, _ := img.At(10, 50).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel (10,50) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGLimits(t *testing.T) {
	tests := []struct {
		name  string
		size  geometry.Size
		scale float64
	}{
		{"too many pixels", geometry.Sz(100000, 100000), 1},
		{"empty", geometry.Sz(0, 10), 1},
		{"bad scale", geometry.Sz(10, 10), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(&canvas.Trace{Size: tt.size}, WithScale(tt.scale))
			if !errors.Is(err, errors.ErrCodeSurface) {
				t.Errorf("RenderPNG() error = %v, want SURFACE_ERROR", err)
			}
		})
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	trace := sampleTrace(t)
	data, err := RenderJSON(trace, WithFlattened(), WithRenderID("abc"))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.ID != "abc" {
		t.Errorf("ID = %q, want abc", out.ID)
	}
	if out.Width != 300 || out.Height != 100 {
		t.Errorf("size = %vx%v, want 300x100", out.Width, out.Height)
	}
	if len(out.Drawings) != 4 {
		t.Errorf("Drawings = %d, want 4", len(out.Drawings))
	}

	decoded, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if decoded.Len() != trace.Len() {
		t.Errorf("decoded Len() = %d, want %d", decoded.Len(), trace.Len())
	}
	if !bytes.Equal(RenderSVG(decoded), RenderSVG(trace)) {
		t.Error("decoded trace renders differently")
	}
}

func TestDecodeJSONRejectsUnbalanced(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"width":1,"height":1,"ops":[{"op":"save"}]}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DecodeJSON() error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		if _, err := ParseFormat(f); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", f, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want INVALID_FORMAT", err)
	}
	if FormatPNG.ContentType() != "image/png" || FormatSVG.Ext() != ".svg" {
		t.Error("unexpected format metadata")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(context.Background(), Format("gif"), sampleTrace(t), EncodeOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode() error = %v, want INVALID_FORMAT", err)
	}
}
