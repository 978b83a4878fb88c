package canvas

import (
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/viewstack/pkg/geometry"
)

func TestRecorderTracksOrigin(t *testing.T) {
	rec := NewRecorder(geometry.Sz(100, 100))
	rec.Save()
	rec.Translate(10, 20)
	rec.Save()
	rec.Translate(5, 5)
	if got := rec.Origin(); got != (geometry.Point{X: 15, Y: 25}) {
		t.Errorf("Origin() = %v, want {15 25}", got)
	}
	rec.Restore()
	if got := rec.Origin(); got != (geometry.Point{X: 10, Y: 20}) {
		t.Errorf("Origin() after restore = %v, want {10 20}", got)
	}
	rec.Restore()
	if rec.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", rec.Depth())
	}
	if _, err := rec.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
}

func TestRecorderRestoresColours(t *testing.T) {
	rec := NewRecorder(geometry.Sz(10, 10))
	before := rec.Fill()
	Scoped(rec, func() {
		rec.SetFillColor(color.RGBA{R: 255, A: 255})
		if rec.Fill() != "#ff0000" {
			t.Errorf("Fill() = %s, want #ff0000", rec.Fill())
		}
	})
	if rec.Fill() != before {
		t.Errorf("Fill() after scope = %s, want %s", rec.Fill(), before)
	}
}

func TestRecorderFinishUnbalanced(t *testing.T) {
	tests := []struct {
		name string
		ops  func(*Recorder)
		want string
	}{
		{"open save", func(r *Recorder) { r.Save() }, "unmatched save"},
		{"extra restore", func(r *Recorder) { r.Restore() }, "restore without matching save"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(geometry.Sz(10, 10))
			tt.ops(rec)
			_, err := rec.Finish()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Finish() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScopedRestoresOnPanic(t *testing.T) {
	rec := NewRecorder(geometry.Sz(10, 10))
	func() {
		defer func() { _ = recover() }()
		Scoped(rec, func() {
			rec.Translate(3, 3)
			panic("boom")
		})
	}()
	if rec.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", rec.Depth())
	}
	if rec.Origin() != (geometry.Point{}) {
		t.Errorf("Origin() = %v, want zero", rec.Origin())
	}
}

func TestTraceFlatten(t *testing.T) {
	rec := NewRecorder(geometry.Sz(300, 300))
	Scoped(rec, func() {
		rec.Translate(150, 0)
		rec.SetFillColor(color.RGBA{B: 255, A: 255})
		rec.FillRect(geometry.RectOf(geometry.Sz(150, 50)))
	})
	rec.FillRect(geometry.RectOf(geometry.Sz(20, 20)))
	trace, err := rec.Finish()
	if err != nil {
		t.Fatal(err)
	}

	got := trace.Flatten()
	if len(got) != 2 {
		t.Fatalf("Flatten() len = %d, want 2", len(got))
	}
	if got[0].Rect.Origin.X != 150 || got[0].Color != "#0000ff" {
		t.Errorf("first drawing = %+v, want x=150 blue", got[0])
	}
	if got[1].Rect.Origin.X != 0 || got[1].Color != "#000000" {
		t.Errorf("second drawing = %+v, want x=0 black", got[1])
	}
}

func TestTraceJSONRoundTripReplays(t *testing.T) {
	rec := NewRecorder(geometry.Sz(50, 50))
	Scoped(rec, func() {
		rec.Translate(1, 2)
		rec.SetStrokeColor(color.White)
		rec.StrokeRect(geometry.RectOf(geometry.Sz(10, 10)), 2)
		rec.DrawText("hi", geometry.RectOf(geometry.Sz(14, 13)))
	})
	trace, err := rec.Finish()
	if err != nil {
		t.Fatal(err)
	}
	data, err := trace.MarshalIndent()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := UnmarshalTrace(data)
	if err != nil {
		t.Fatalf("UnmarshalTrace() error = %v", err)
	}

	replayed := NewRecorder(decoded.Size)
	Replay(decoded, replayed)
	again, err := replayed.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if again.Len() != trace.Len() {
		t.Fatalf("replayed len = %d, want %d", again.Len(), trace.Len())
	}
	for i := range trace.Ops {
		if again.Ops[i].String() != trace.Ops[i].String() {
			t.Errorf("op %d = %s, want %s", i, again.Ops[i], trace.Ops[i])
		}
	}
}

func TestTraceValidate(t *testing.T) {
	bad := &Trace{Ops: []Op{{Kind: OpRestore}}}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() = nil, want error for leading restore")
	}
	missing := &Trace{Ops: []Op{{Kind: OpFillRect}}}
	if err := missing.Validate(); err == nil {
		t.Error("Validate() = nil, want error for fill without rect")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"red", "#ff3b30", false},
		{"#00ff00", "#00ff00", false},
		{"#fff", "#ffffff", false},
		{" Blue ", "#007aff", false},
		{"chartreuse-ish", "", true},
		{"#zzzzzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && Hex(c) != tt.want {
				t.Errorf("Hex(ParseColor(%q)) = %s, want %s", tt.in, Hex(c), tt.want)
			}
		})
	}
}
