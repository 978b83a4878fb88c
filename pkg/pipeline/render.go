package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/render"
	"github.com/matzehuels/viewstack/pkg/render/nodelink"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Render draws root once and encodes the trace in each requested format.
func Render(ctx context.Context, root view.View, opts Options, renderID string) (map[string][]byte, *canvas.Trace, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, trace, err := renderFormats(ctx, root, opts, renderID)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, trace, err
}

func renderFormats(ctx context.Context, root view.View, opts Options, renderID string) (map[string][]byte, *canvas.Trace, error) {
	bg, _ := opts.BackgroundColor()
	formats := make([]sink.Format, len(opts.Formats))
	for i, f := range opts.Formats {
		formats[i] = sink.Format(f)
	}

	batch, err := render.RenderAll(ctx, root, opts.Size(), formats,
		render.WithScale(opts.Scale),
		render.WithBackground(bg),
		render.WithRenderID(renderID),
		render.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, nil, err
	}

	artifacts := make(map[string][]byte, len(batch.Artifacts))
	for f, data := range batch.Artifacts {
		artifacts[string(f)] = data
	}
	return artifacts, batch.Trace, nil
}

// Tree formats accepted by [RenderTree].
var TreeFormats = []string{"dot", "svg", "png", "pdf"}

// RenderTree draws root's structure as a node-link diagram.
func RenderTree(ctx context.Context, root view.View, format string, detailed bool) ([]byte, error) {
	if err := errors.ValidateFormat(format, TreeFormats...); err != nil {
		return nil, err
	}
	dot, err := nodelink.FromView(root, nodelink.Options{Detailed: detailed})
	if err != nil {
		return nil, err
	}
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, DefaultScale)
	default:
		return nodelink.RenderPDF(ctx, dot)
	}
}
