// Package pipeline runs scene documents through build, layout and render.
//
// The CLI and the HTTP server both go through this package, so defaults,
// validation and caching behave the same at every entry point.
//
// # Stages
//
//  1. Build: convert a [scene.Document] into a view tree
//  2. Layout: measure the tree against the target size
//  3. Render: draw the tree once and encode it in each requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Encoded artifacts are cached by scene hash and render options; the build
// and layout stages are cheap and always run.
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/scene"
)

// Defaults shared by the CLI and the server.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultScale  = 2.0
	DefaultFormat = string(sink.FormatSVG)
)

// Options configures a pipeline run.
type Options struct {
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// RenderID identifies this run in logs and JSON output.
	RenderID string
	// SceneHash is the content hash of the document's canonical form.
	SceneHash string
	// Size is the target surface size.
	Size geometry.Size
	// Measured is the size the root asked for under Size.
	Measured geometry.Size
	// Artifacts holds the encoded outputs keyed by format.
	Artifacts map[string][]byte
	// Trace is the recorded drawing. It is nil when every artifact came
	// from the cache.
	Trace *canvas.Trace

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains stage timings and tree size.
type Stats struct {
	NodeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	// RenderHit is true when every requested format was cached.
	RenderHit bool
	// Hits lists the formats served from the cache.
	Hits []string
}

// ValidateFormat checks that format is a supported output format.
func ValidateFormat(format string) error {
	_, err := sink.ParseFormat(format)
	return err
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDocument fills options the caller left unset from the document:
// its target size and background.
func (o *Options) ApplyDocument(doc *scene.Document) {
	if doc == nil {
		return
	}
	if o.Width == 0 {
		o.Width = doc.Width
	}
	if o.Height == 0 {
		o.Height = doc.Height
	}
	if o.Background == "" {
		o.Background = doc.Background
	}
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %g", o.Scale)
	}
	if _, err := o.BackgroundColor(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Size returns the target surface size.
func (o *Options) Size() geometry.Size {
	return geometry.Sz(o.Width, o.Height)
}

// BackgroundColor parses Background. An empty background is nil.
func (o *Options) BackgroundColor() (color.Color, error) {
	if o.Background == "" {
		return nil, nil
	}
	c, err := canvas.ParseColor(o.Background)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "background")
	}
	return c, nil
}

// ArtifactKeyOpts returns cache key options for one format. PNG is the only
// format whose bytes depend on the scale.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Background: o.Background,
	}
	if format == string(sink.FormatPNG) {
		k.Scale = o.Scale
	}
	return k
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

func (r *Result) String() string {
	return fmt.Sprintf("%s %v -> %v (%d nodes)", r.RenderID, r.Size, r.Measured, r.Stats.NodeCount)
}
