// Package nodelink renders view trees as node-link diagrams.
//
// # Overview
//
// This package draws the structure of a view tree with Graphviz: one box
// per view, with arrows from each view to the views it is built from. It
// complements the layout sinks in [sink], which draw what the tree looks
// like rather than how it is put together.
//
// # Usage
//
// Inspect a tree and convert it to DOT, then render to SVG:
//
//	dot, err := nodelink.FromView(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Styling
//
// Primitives are drawn as solid white boxes. Composite views, whose only
// job is to return a body, are dashed and grey. With [Options].Detailed set,
// each label also names the kind and depth of the view.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [sink]: github.com/matzehuels/viewstack/pkg/render/sink
package nodelink
