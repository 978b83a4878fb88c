// Package sink provides the drawing surfaces a render trace is encoded onto.
//
// # Overview
//
// A "sink" turns a [canvas.Trace] into a final output format. Each sink
// replays the trace onto a surface that implements [canvas.Context]:
//
//   - SVG: [SVGSurface], hand-written vector output
//   - PNG: [PNGSurface], rasterized with github.com/fogleman/gg
//   - PDF: SVG converted with rsvg-convert
//   - JSON: the trace itself plus its flattened absolute drawings
//
// Basic usage:
//
//	svg := sink.RenderSVG(trace, sink.WithBackground(color.White))
//	png, err := sink.RenderPNG(trace, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(ctx, trace)
//
// [Encode] dispatches on a [Format] name and is what the render entry point
// and the CLI use.
//
// # PDF Output
//
// [RenderPDF] generates SVG first, then converts it with [ToPDF]. This
// requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// The conversion functions are shared with [nodelink] so view-tree diagrams
// can export to PDF and PNG too.
//
// # Surface Limits
//
// Raster surfaces are bounded by [MaxRasterPixels]. A trace whose scaled
// size exceeds it fails with a SURFACE_ERROR instead of allocating.
//
// [nodelink]: github.com/matzehuels/viewstack/pkg/render/nodelink
package sink
