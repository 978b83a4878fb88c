// Package pkg provides the libraries behind viewstack, a declarative view
// layout engine.
//
// # Overview
//
// A viewstack scene is a tree of views. Layout runs in two passes over the
// tree: a parent proposes a size to each child and the child answers with
// the size it wants, then the parent places and draws each child at that
// size. Views compose through stacks and decorators, and any view can be
// type-erased behind [view.AnyView].
//
// The data flow through viewstack:
//
//	Scene file (TOML, YAML, JSON)
//	         ↓
//	    [scene] package (decode + build a view tree)
//	         ↓
//	    [view] package (propose/measure, then draw)
//	         ↓
//	    [canvas] package (recorded drawing trace)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	root := view.HStack(
//	    view.Modify(view.Rectangle{}).Frame(nil, geometry.Dim(100)).Foreground(red),
//	    view.Modify(view.Rectangle{}).Frame(nil, geometry.Dim(50)).Foreground(blue),
//	)
//	res, err := render.Render(ctx, root, geometry.Sz(300, 300))
//
// # Main Packages
//
// [geometry] - Sizes, proposed sizes, rectangles and alignments.
//
// [view] - The layout protocol, primitive views, stacks, decorators and
// the fluent modifier API.
//
// [canvas] - The drawing context interface and the recorder that captures
// a balanced trace of drawing operations.
//
// [render] - One complete layout pass from a root view to encoded bytes.
// [render/sink] encodes traces; [render/nodelink] draws view trees with
// Graphviz.
//
// [scene] - Scene documents and the builder that turns them into views.
//
// [pipeline] - Orchestration (build → layout → render) with artifact
// caching and observability hooks.
//
// [cache] - Artifact caches backed by files, Redis or MongoDB.
//
// [observability] - Hook interfaces for pipeline, cache and server events.
//
// [errors] - Coded errors shared by every layer.
//
// [geometry]: github.com/matzehuels/viewstack/pkg/geometry
// [view]: github.com/matzehuels/viewstack/pkg/view
// [view.AnyView]: github.com/matzehuels/viewstack/pkg/view#AnyView
// [canvas]: github.com/matzehuels/viewstack/pkg/canvas
// [render]: github.com/matzehuels/viewstack/pkg/render
// [render/sink]: github.com/matzehuels/viewstack/pkg/render/sink
// [render/nodelink]: github.com/matzehuels/viewstack/pkg/render/nodelink
// [scene]: github.com/matzehuels/viewstack/pkg/scene
// [pipeline]: github.com/matzehuels/viewstack/pkg/pipeline
// [cache]: github.com/matzehuels/viewstack/pkg/cache
// [observability]: github.com/matzehuels/viewstack/pkg/observability
// [errors]: github.com/matzehuels/viewstack/pkg/errors
package pkg
