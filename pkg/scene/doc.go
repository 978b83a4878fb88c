// Package scene decodes declarative scene documents into view trees.
//
// # Overview
//
// A scene is a tree of typed nodes stored as TOML, YAML or JSON. [Parse]
// and [Load] decode a [Document]; [Build] turns its root into a
// [view.View] ready for [render.Render].
//
//	name   = "two rectangles"
//	width  = 300
//	height = 300
//
//	[root]
//	type = "hstack"
//
//	[[root.children]]
//	type   = "frame"
//	height = 100
//	[root.children.content]
//	type  = "rectangle"
//	color = "red"
//
// # Node Types
//
//   - rectangle, ellipse: flexible shapes filled with color
//   - text: a run of text, wrapped to the proposed width
//   - hstack, vstack: children with spacing and alignment
//   - border: strokes its content's bounds (color, line_width)
//   - overlay: draws overlay on top of content at alignment
//   - fixed: proposes nothing along axes ("both", "horizontal", "vertical")
//   - frame: fixes width and/or height, aligning content inside
//   - color: sets the fill color for content
//   - geometry: lays content out at fraction of the final size
//
// Unknown fields and unknown node types are rejected. Errors carry the
// INVALID_SCENE code and name the offending node by path, for example
// "root.children[1].content".
//
// [render.Render]: github.com/matzehuels/viewstack/pkg/render.Render
package scene
