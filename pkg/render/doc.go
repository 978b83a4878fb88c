// Package render is the entry point that turns a view tree into bytes.
//
// # Overview
//
// [Render] runs one complete pass over a view tree:
//
//  1. Propose the target size to the root and measure it
//  2. Draw the root, centred in a surface of the target size, into a
//     [canvas.Recorder]
//  3. Encode the recorded trace with the requested sink
//
// The pass is synchronous and single-threaded. Separate calls share no
// state and may run concurrently.
//
//	res, err := render.Render(ctx, root, geometry.Sz(600, 400),
//	    render.WithFormat(sink.FormatPNG),
//	    render.WithLogger(logger),
//	)
//
// [RenderAll] does the same but encodes one recorded trace in several
// formats.
//
// # Failures
//
// A view that breaks the layout protocol aborts the pass with a
// PROTOCOL_VIOLATION error. Invalid target sizes fail with INVALID_SIZE and
// surfaces that cannot be created fail with SURFACE_ERROR. A failed pass
// never returns a partial trace.
//
// # Subpackages
//
//   - [sink]: Output formats (SVG, PNG, PDF, JSON)
//   - [nodelink]: Graphviz diagrams of view trees
//
// [sink]: github.com/matzehuels/viewstack/pkg/render/sink
// [nodelink]: github.com/matzehuels/viewstack/pkg/render/nodelink
package render
