package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/view"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node kind (primitive or composite) and depth to
	// each label. When false, only the view label is shown.
	Detailed bool
}

// ToDOT converts an inspected view tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Composite views are drawn with dashed outlines and grey fill to set them
// apart from primitives, which do the actual layout work.
func ToDOT(root *view.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	ids := make(map[*view.Node]string)
	var edges []string
	root.Walk(func(n *view.Node, depth int) {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id
		label := fmtLabel(n, depth, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, label), ", "))
	})
	root.Walk(func(n *view.Node, _ int) {
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", ids[n], ids[c]))
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// FromView inspects root and converts the result with [ToDOT]. A tree that
// breaks the layout protocol fails with PROTOCOL_VIOLATION.
func FromView(root view.View, opts Options) (string, error) {
	var tree *view.Node
	if err := view.Catch(func() { tree = view.Inspect(root) }); err != nil {
		return "", errors.Wrap(errors.ErrCodeProtocol, err, "inspect view tree")
	}
	return ToDOT(tree, opts), nil
}

func fmtLabel(n *view.Node, depth int, detailed bool) string {
	if !detailed {
		return n.Label
	}
	kind := "composite"
	if n.Primitive {
		kind = "primitive"
	}
	return fmt.Sprintf("%s\n%s, depth: %d", n.Label, kind, depth)
}

func fmtAttrs(n *view.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !n.Primitive {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [sink.ToPDF] or [sink.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSurface, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [sink.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return sink.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [sink.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return sink.ToPNG(ctx, svg, scale)
}
