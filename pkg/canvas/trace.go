package canvas

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/matzehuels/viewstack/pkg/geometry"
)

// OpKind identifies a recorded drawing operation.
type OpKind string

const (
	OpSave        OpKind = "save"
	OpRestore     OpKind = "restore"
	OpTranslate   OpKind = "translate"
	OpFillColor   OpKind = "fill-color"
	OpStrokeColor OpKind = "stroke-color"
	OpFillRect    OpKind = "fill-rect"
	OpFillEllipse OpKind = "fill-ellipse"
	OpStrokeRect  OpKind = "stroke-rect"
	OpText        OpKind = "text"
)

// Op is one recorded drawing operation. Only the fields relevant to Kind
// are set.
type Op struct {
	Kind      OpKind         `json:"op"`
	DX        float64        `json:"dx,omitempty"`
	DY        float64        `json:"dy,omitempty"`
	Color     string         `json:"color,omitempty"`
	Rect      *geometry.Rect `json:"rect,omitempty"`
	LineWidth float64        `json:"line_width,omitempty"`
	Text      string         `json:"text,omitempty"`
}

func (o Op) String() string {
	switch o.Kind {
	case OpTranslate:
		return fmt.Sprintf("translate(%g, %g)", o.DX, o.DY)
	case OpFillColor, OpStrokeColor:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Color)
	case OpFillRect, OpFillEllipse:
		return fmt.Sprintf("%s(%g, %g, %g, %g)", o.Kind, o.Rect.Origin.X, o.Rect.Origin.Y, o.Rect.Size.Width, o.Rect.Size.Height)
	case OpStrokeRect:
		return fmt.Sprintf("%s(%g, %g, %g, %g, w=%g)", o.Kind, o.Rect.Origin.X, o.Rect.Origin.Y, o.Rect.Size.Width, o.Rect.Size.Height, o.LineWidth)
	case OpText:
		return fmt.Sprintf("text(%q at %g, %g)", o.Text, o.Rect.Origin.X, o.Rect.Origin.Y)
	default:
		return string(o.Kind)
	}
}

// Trace is an ordered, balanced sequence of drawing operations for a
// surface of a given size.
type Trace struct {
	Size geometry.Size `json:"size"`
	Ops  []Op          `json:"ops"`
}

// Len returns the number of recorded operations.
func (t *Trace) Len() int { return len(t.Ops) }

// MarshalIndent encodes the trace as indented JSON.
func (t *Trace) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// UnmarshalTrace decodes a trace produced by MarshalIndent or json.Marshal.
func UnmarshalTrace(data []byte) (*Trace, error) {
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the nesting discipline: every save has a matching restore
// and no restore pops past the start of the trace.
func (t *Trace) Validate() error {
	depth := 0
	for i, op := range t.Ops {
		switch op.Kind {
		case OpSave:
			depth++
		case OpRestore:
			depth--
			if depth < 0 {
				return fmt.Errorf("op %d: restore without matching save", i)
			}
		case OpFillRect, OpFillEllipse, OpStrokeRect, OpText:
			if op.Rect == nil {
				return fmt.Errorf("op %d: %s without rect", i, op.Kind)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced trace: %d unmatched save(s)", depth)
	}
	return nil
}

// Replay executes the trace against ctx.
func Replay(t *Trace, ctx Context) {
	for _, op := range t.Ops {
		switch op.Kind {
		case OpSave:
			ctx.Save()
		case OpRestore:
			ctx.Restore()
		case OpTranslate:
			ctx.Translate(op.DX, op.DY)
		case OpFillColor:
			ctx.SetFillColor(mustHex(op.Color))
		case OpStrokeColor:
			ctx.SetStrokeColor(mustHex(op.Color))
		case OpFillRect:
			ctx.FillRect(*op.Rect)
		case OpFillEllipse:
			ctx.FillEllipse(*op.Rect)
		case OpStrokeRect:
			ctx.StrokeRect(*op.Rect, op.LineWidth)
		case OpText:
			ctx.DrawText(op.Text, *op.Rect)
		}
	}
}

// Drawing is a drawing operation resolved to absolute surface coordinates.
type Drawing struct {
	Kind      OpKind        `json:"op"`
	Rect      geometry.Rect `json:"rect"`
	Color     string        `json:"color"`
	LineWidth float64       `json:"line_width,omitempty"`
	Text      string        `json:"text,omitempty"`
}

// Flatten resolves every drawing operation to absolute coordinates and its
// effective colour, dropping state operations.
func (t *Trace) Flatten() []Drawing {
	rec := NewRecorder(t.Size)
	var out []Drawing
	for _, op := range t.Ops {
		switch op.Kind {
		case OpFillRect, OpFillEllipse, OpText:
			out = append(out, Drawing{
				Kind:  op.Kind,
				Rect:  op.Rect.Offset(rec.state.origin),
				Color: rec.state.fill,
				Text:  op.Text,
			})
			continue
		case OpStrokeRect:
			out = append(out, Drawing{
				Kind:      op.Kind,
				Rect:      op.Rect.Offset(rec.state.origin),
				Color:     rec.state.stroke,
				LineWidth: op.LineWidth,
			})
			continue
		}
		Replay(&Trace{Ops: []Op{op}}, rec)
	}
	return out
}

type state struct {
	origin geometry.Point
	fill   string
	stroke string
}

// Recorder is a Context that records every call into a Trace while
// tracking the current origin, colours and save depth.
type Recorder struct {
	size  geometry.Size
	ops   []Op
	state state
	stack []state
	err   error
}

// NewRecorder returns a recorder for a surface of the given size.
func NewRecorder(size geometry.Size) *Recorder {
	return &Recorder{
		size: size,
		state: state{
			fill:   Hex(DefaultFill),
			stroke: Hex(DefaultStroke),
		},
	}
}

var _ Context = (*Recorder)(nil)

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.ops = append(r.ops, Op{Kind: OpSave})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		if r.err == nil {
			r.err = fmt.Errorf("restore without matching save at op %d", len(r.ops))
		}
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.ops = append(r.ops, Op{Kind: OpRestore})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.state.origin = r.state.origin.Add(geometry.Point{X: dx, Y: dy})
	r.ops = append(r.ops, Op{Kind: OpTranslate, DX: dx, DY: dy})
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.state.fill = Hex(c)
	r.ops = append(r.ops, Op{Kind: OpFillColor, Color: r.state.fill})
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.state.stroke = Hex(c)
	r.ops = append(r.ops, Op{Kind: OpStrokeColor, Color: r.state.stroke})
}

func (r *Recorder) FillRect(rect geometry.Rect) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Rect: &rect})
}

func (r *Recorder) FillEllipse(rect geometry.Rect) {
	r.ops = append(r.ops, Op{Kind: OpFillEllipse, Rect: &rect})
}

func (r *Recorder) StrokeRect(rect geometry.Rect, lineWidth float64) {
	r.ops = append(r.ops, Op{Kind: OpStrokeRect, Rect: &rect, LineWidth: lineWidth})
}

func (r *Recorder) DrawText(s string, rect geometry.Rect) {
	r.ops = append(r.ops, Op{Kind: OpText, Rect: &rect, Text: s})
}

// Origin returns the current absolute translation.
func (r *Recorder) Origin() geometry.Point { return r.state.origin }

// Depth returns the number of unmatched saves.
func (r *Recorder) Depth() int { return len(r.stack) }

// Fill returns the current fill colour as hex.
func (r *Recorder) Fill() string { return r.state.fill }

// Stroke returns the current stroke colour as hex.
func (r *Recorder) Stroke() string { return r.state.stroke }

// Finish returns the recorded trace. It fails if a restore popped an empty
// stack or saves are still open.
func (r *Recorder) Finish() (*Trace, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.stack) != 0 {
		return nil, fmt.Errorf("unbalanced trace: %d unmatched save(s)", len(r.stack))
	}
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	return &Trace{Size: r.size, Ops: ops}, nil
}
