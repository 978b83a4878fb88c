package view

import (
	"math"
	"testing"

	"github.com/matzehuels/viewstack/pkg/geometry"
)

func widths(sizes []geometry.Size) []float64 {
	out := make([]float64, len(sizes))
	for i, s := range sizes {
		out[i] = s.Width
	}
	return out
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fixedWidth(w float64) View {
	return Modify(Rectangle{}).Frame(geometry.Dim(w), nil)
}

func TestStackLayoutOrderSensitivity(t *testing.T) {
	tests := []struct {
		name  string
		stack Stack
		want  []float64
	}{
		{
			name:  "equal demand",
			stack: HStack(Rectangle{}, Rectangle{}, Rectangle{}),
			want:  []float64{100, 100, 100},
		},
		{
			name:  "first child fixed at 200",
			stack: HStack(fixedWidth(200), Rectangle{}, Rectangle{}),
			want:  []float64{200, 50, 50},
		},
		{
			name:  "last child fixed at 200",
			stack: HStack(Rectangle{}, Rectangle{}, fixedWidth(200)),
			want:  []float64{100, 100, 200},
		},
		{
			name:  "narrow first child leaves the rest",
			stack: HStack(fixedWidth(20), Rectangle{}, Rectangle{}),
			want:  []float64{20, 140, 140},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := widths(tt.stack.Layout(geometry.Propose(300, 100)))
			if !equalFloats(got, tt.want) {
				t.Errorf("Layout() widths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStackNegativeRemainingOffersZero(t *testing.T) {
	stack := HStack(fixedWidth(200), Rectangle{}, Rectangle{})
	got := widths(stack.Layout(geometry.Propose(100, 10)))
	want := []float64{200, 0, 0}
	if !equalFloats(got, want) {
		t.Errorf("Layout() widths = %v, want %v", got, want)
	}
	if size := stack.SizeThatFits(geometry.Propose(100, 10)); size != geometry.Sz(200, 10) {
		t.Errorf("SizeThatFits() = %v, want 200x10", size)
	}
}

func TestStackSizeConservation(t *testing.T) {
	stacks := []Stack{
		HStack(Rectangle{}, Text{String: "hello"}, fixedWidth(40)),
		HStack(card{height: 20}, card{height: 60}),
		HStack(Text{String: "a b c d e f"}, Ellipse{}),
	}
	proposals := []geometry.ProposedSize{
		geometry.Propose(300, 300),
		geometry.Propose(31, 17),
		{Width: geometry.Dim(120)},
		geometry.Unspecified(),
	}

	for _, s := range stacks {
		for _, p := range proposals {
			sizes := s.Layout(p)
			var sum, tallest float64
			for _, sz := range sizes {
				sum += sz.Width
				tallest = max(tallest, sz.Height)
			}
			got := s.SizeThatFits(p)
			if got.Width != sum {
				t.Errorf("%s under %v: width = %v, want sum %v", s.Describe(), p, got.Width, sum)
			}
			if got.Height != tallest {
				t.Errorf("%s under %v: height = %v, want max %v", s.Describe(), p, got.Height, tallest)
			}
		}
	}
}

func TestStackUnconstrainedUsesIdealSizes(t *testing.T) {
	stack := HStack(Text{String: "ab"}, Text{String: "abc"})
	got := stack.SizeThatFits(geometry.Unspecified())
	if got != geometry.Sz(35, 13) {
		t.Errorf("SizeThatFits() = %v, want 35x13", got)
	}
}

func TestStackEmpty(t *testing.T) {
	if got := HStack().SizeThatFits(geometry.Propose(100, 100)); got != (geometry.Size{}) {
		t.Errorf("SizeThatFits() = %v, want 0x0", got)
	}
}

func TestStackSpacing(t *testing.T) {
	stack := HStack(Rectangle{}, Rectangle{}).WithSpacing(10)
	got := widths(stack.Layout(geometry.Propose(110, 20)))
	if !equalFloats(got, []float64{50, 50}) {
		t.Errorf("Layout() widths = %v, want [50 50]", got)
	}
	if size := stack.SizeThatFits(geometry.Propose(110, 20)); size != geometry.Sz(110, 20) {
		t.Errorf("SizeThatFits() = %v, want 110x20", size)
	}

	drawn := fills(drawTrace(t, stack, geometry.Sz(110, 20)))
	if len(drawn) != 2 || drawn[1].Rect.Origin.X != 60 {
		t.Errorf("second child drawn at %+v, want x=60", drawn)
	}

	for _, bad := range []float64{-3, math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := HStack().WithSpacing(bad).Spacing; got != 0 {
			t.Errorf("WithSpacing(%v).Spacing = %v, want 0", bad, got)
		}
	}
}

func TestVStackDistributesHeight(t *testing.T) {
	stack := VStack(Rectangle{}, Modify(Rectangle{}).Frame(geometry.Dim(10), nil)).
		WithAlignment(geometry.CenterLeading)
	sizes := stack.Layout(geometry.Propose(40, 100))
	if sizes[0] != geometry.Sz(40, 50) || sizes[1] != geometry.Sz(10, 50) {
		t.Errorf("Layout() = %v, want [40x50 10x50]", sizes)
	}

	drawn := fills(drawTrace(t, stack, geometry.Sz(40, 100)))
	if len(drawn) != 2 {
		t.Fatalf("fills = %d, want 2", len(drawn))
	}
	if drawn[1].Rect.Origin != (geometry.Point{X: 0, Y: 50}) {
		t.Errorf("second child origin = %v, want {0 50}", drawn[1].Rect.Origin)
	}
}

func TestStackCrossAlignment(t *testing.T) {
	tests := []struct {
		align geometry.Alignment
		wantY float64
	}{
		{geometry.Center, 25},
		{geometry.TopLeading, 0},
		{geometry.BottomTrailing, 50},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			stack := HStack(card{height: 100}, card{height: 50}).WithAlignment(tt.align)
			drawn := fills(drawTrace(t, stack, geometry.Sz(300, 100)))
			if len(drawn) != 2 {
				t.Fatalf("fills = %d, want 2", len(drawn))
			}
			if drawn[1].Rect.Origin.Y != tt.wantY {
				t.Errorf("second child y = %v, want %v", drawn[1].Rect.Origin.Y, tt.wantY)
			}
		})
	}
}

func TestStackEndToEnd(t *testing.T) {
	stack := HStack(
		Modify(Rectangle{}).Frame(nil, geometry.Dim(100)),
		Modify(Rectangle{}).Frame(nil, geometry.Dim(50)),
	)

	measured := Measure(stack, geometry.Propose(300, 300))
	if measured != geometry.Sz(300, 100) {
		t.Fatalf("Measure() = %v, want 300x100", measured)
	}

	drawn := fills(drawTrace(t, stack, measured))
	if len(drawn) != 2 {
		t.Fatalf("fills = %d, want 2", len(drawn))
	}
	want := []struct{ x, w, h float64 }{
		{0, 150, 100},
		{150, 150, 50},
	}
	for i, w := range want {
		r := drawn[i].Rect
		if r.Origin.X != w.x || r.Size.Width != w.w || r.Size.Height != w.h {
			t.Errorf("fill %d = %+v, want x=%v w=%v h=%v", i, r, w.x, w.w, w.h)
		}
	}
}

// Children of a top-aligned stack all start at the top edge; the default
// centres them instead.
func TestStackCrossAxisPlacement(t *testing.T) {
	children := func() []View {
		return []View{
			Modify(Rectangle{}).Frame(nil, geometry.Dim(100)),
			Modify(Rectangle{}).Frame(nil, geometry.Dim(50)),
		}
	}

	tests := []struct {
		name  string
		stack Stack
		wantY []float64
	}{
		{"default centre", HStack(children()...), []float64{0, 25}},
		{"top leading", HStack(children()...).WithAlignment(geometry.TopLeading), []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawn := fills(drawTrace(t, tt.stack, geometry.Sz(300, 100)))
			if len(drawn) != len(tt.wantY) {
				t.Fatalf("fills = %d, want %d", len(drawn), len(tt.wantY))
			}
			for i, y := range tt.wantY {
				if drawn[i].Rect.Origin.Y != y {
					t.Errorf("fill %d y = %v, want %v", i, drawn[i].Rect.Origin.Y, y)
				}
			}
		})
	}
}
