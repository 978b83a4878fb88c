package sink

import (
	"context"
	"image/color"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{string(FormatSVG), string(FormatPNG), string(FormatPDF), string(FormatJSON)}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	if err := errors.ValidateFormat(s, Formats()...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// EncodeOptions holds the settings shared by every sink.
type EncodeOptions struct {
	Scale      float64
	Background color.Color
	RenderID   string
}

// Encode writes t in format f.
func Encode(ctx context.Context, f Format, t *canvas.Trace, opts EncodeOptions) ([]byte, error) {
	svgOpts := []SVGOption{}
	if opts.Background != nil {
		svgOpts = append(svgOpts, WithBackground(opts.Background))
	}

	switch f {
	case FormatSVG:
		return RenderSVG(t, svgOpts...), nil
	case FormatPNG:
		var pngOpts []PNGOption
		if opts.Background != nil {
			pngOpts = append(pngOpts, WithPNGBackground(opts.Background))
		}
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.Scale))
		}
		return RenderPNG(t, pngOpts...)
	case FormatPDF:
		return RenderPDF(ctx, t, WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return RenderJSON(t, WithFlattened(), WithRenderID(opts.RenderID))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
}
