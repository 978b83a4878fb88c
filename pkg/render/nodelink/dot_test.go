package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/view"
)

type badge struct{}

func (badge) Body() view.View {
	return view.Modify(view.Text{String: "new"}).Border(nil, 1)
}

type hollow struct{}

func (hollow) Body() view.View { return nil }

func TestToDOT_Basic(t *testing.T) {
	tree := view.Inspect(view.HStack(view.Rectangle{}, view.Ellipse{}))
	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{
		`"n0" [label="HStack(alignment: center)"]`,
		`"n1" [label="AnyView"]`,
		`"n2" [label="Rectangle"]`,
		`"n0" -> "n1"`,
		`"n1" -> "n2"`,
		`"n0" -> "n3"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_Composite(t *testing.T) {
	dot := ToDOT(view.Inspect(badge{}), Options{})

	if !strings.Contains(dot, `"n0" [label="badge", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT() composite missing dashed style\n%s", dot)
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() composite missing lightgrey fill")
	}
}

func TestToDOT_Nil(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if strings.Contains(dot, "->") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name     string
		node     view.Node
		depth    int
		detailed bool
		want     string
	}{
		{"simple", view.Node{Label: "Rectangle", Primitive: true}, 3, false, "Rectangle"},
		{"primitive", view.Node{Label: "Rectangle", Primitive: true}, 3, true, "Rectangle\nprimitive, depth: 3"},
		{"composite", view.Node{Label: "card"}, 0, true, "card\ncomposite, depth: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(&tt.node, tt.depth, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtAttrs(t *testing.T) {
	if attrs := fmtAttrs(&view.Node{Label: "Text", Primitive: true}, "x"); len(attrs) != 1 {
		t.Errorf("fmtAttrs() primitive should have 1 attr, got %d", len(attrs))
	}
	attrs := fmtAttrs(&view.Node{Label: "card"}, "x")
	if len(attrs) != 4 {
		t.Errorf("fmtAttrs() composite should have 4 attrs, got %d: %v", len(attrs), attrs)
	}
}

func TestFromView(t *testing.T) {
	dot, err := FromView(view.Modify(view.Rectangle{}).Frame(geometry.Dim(10), nil), Options{Detailed: true})
	if err != nil {
		t.Fatalf("FromView() error = %v", err)
	}
	if !strings.Contains(dot, `Frame(width: 10, height: nil)\nprimitive, depth: 1`) {
		t.Errorf("FromView() missing detailed frame label\n%s", dot)
	}

	if _, err := FromView(view.VStack(hollow{}), Options{}); !errors.Is(err, errors.ErrCodeProtocol) {
		t.Errorf("FromView(hollow) error = %v, want PROTOCOL_VIOLATION", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(view.Inspect(badge{}), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
