package render

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Result is the output of one render pass.
type Result struct {
	// Data is the encoded surface.
	Data []byte
	// Format is the encoding of Data.
	Format sink.Format
	// Trace is the recorded drawing.
	Trace *canvas.Trace
	// Measured is the size the root asked for under the target size.
	Measured geometry.Size
	// Size is the surface size.
	Size geometry.Size
}

// Batch is the output of one render pass encoded in several formats.
type Batch struct {
	Artifacts map[sink.Format][]byte
	Trace     *canvas.Trace
	Measured  geometry.Size
	Size      geometry.Size
}

// Option configures a render pass.
type Option func(*config)

type config struct {
	format     sink.Format
	scale      float64
	background color.Color
	renderID   string
	logger     *log.Logger
}

// WithFormat selects the output encoding (default SVG).
func WithFormat(f sink.Format) Option { return func(c *config) { c.format = f } }

// WithScale sets the raster scale factor for PNG output.
func WithScale(s float64) Option { return func(c *config) { c.scale = s } }

// WithBackground fills the surface before drawing.
func WithBackground(bg color.Color) Option { return func(c *config) { c.background = bg } }

// WithRenderID tags JSON output with an identifier.
func WithRenderID(id string) Option { return func(c *config) { c.renderID = id } }

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// Render measures root against size, draws it into a surface of that size
// and encodes the surface.
func Render(ctx context.Context, root view.View, size geometry.Size, opts ...Option) (*Result, error) {
	b, err := RenderAll(ctx, root, size, nil, opts...)
	if err != nil {
		return nil, err
	}
	for f, data := range b.Artifacts {
		return &Result{
			Data:     data,
			Format:   f,
			Trace:    b.Trace,
			Measured: b.Measured,
			Size:     b.Size,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "render produced no output")
}

// RenderAll records root once and encodes the trace in every format of
// formats. An empty list encodes only the format chosen by [WithFormat].
func RenderAll(ctx context.Context, root view.View, size geometry.Size, formats []sink.Format, opts ...Option) (*Batch, error) {
	cfg := config{format: sink.FormatSVG, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(formats) == 0 {
		formats = []sink.Format{cfg.format}
	}

	trace, measured, err := Record(root, size)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		Artifacts: make(map[sink.Format][]byte, len(formats)),
		Trace:     trace,
		Measured:  measured,
		Size:      size,
	}
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "render canceled")
		}
		start := time.Now()
		data, err := sink.Encode(ctx, f, trace, sink.EncodeOptions{
			Scale:      cfg.scale,
			Background: cfg.background,
			RenderID:   cfg.renderID,
		})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f, err)
		}
		cfg.logger.Debug("encoded surface", "format", f, "bytes", len(data), "ops", trace.Len(), "elapsed", time.Since(start))
		b.Artifacts[f] = data
	}
	return b, nil
}

// Record runs the layout pass and returns the recorded trace without
// encoding it. The root is measured against exactly size and drawn centred
// in the surface at its measured size.
func Record(root view.View, size geometry.Size) (*canvas.Trace, geometry.Size, error) {
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		return nil, geometry.Size{}, err
	}

	rec := canvas.NewRecorder(size)
	var measured geometry.Size
	err := view.Catch(func() {
		measured = view.Measure(root, geometry.ProposedFrom(size))
		frame := view.Frame{
			Width:   geometry.Dim(size.Width),
			Height:  geometry.Dim(size.Height),
			Content: root,
		}
		view.Draw(frame, rec, size)
	})
	if err != nil {
		return nil, geometry.Size{}, errors.Wrap(errors.ErrCodeProtocol, err, "layout aborted")
	}

	trace, err := rec.Finish()
	if err != nil {
		return nil, geometry.Size{}, errors.Wrap(errors.ErrCodeProtocol, err, "unbalanced drawing")
	}
	return trace, measured, nil
}

// Measure reports the size root takes when offered size, without drawing.
func Measure(root view.View, proposed geometry.ProposedSize) (geometry.Size, error) {
	var measured geometry.Size
	err := view.Catch(func() {
		measured = view.Measure(root, proposed)
	})
	if err != nil {
		return geometry.Size{}, errors.Wrap(errors.ErrCodeProtocol, err, "layout aborted")
	}
	return measured, nil
}
