package sink

import (
	"encoding/json"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/errors"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	flatten bool
	id      string
}

// WithFlattened adds the absolute drawings produced by [canvas.Trace.Flatten]
// next to the raw operations, for consumers that do not want to track the
// save/restore stack themselves.
func WithFlattened() JSONOption { return func(r *jsonRenderer) { r.flatten = true } }

// WithRenderID records an identifier for the render in the output.
func WithRenderID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

type jsonOutput struct {
	ID       string           `json:"id,omitempty"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Ops      []canvas.Op      `json:"ops"`
	Drawings []canvas.Drawing `json:"drawings,omitempty"`
}

// RenderJSON exports the trace as a pretty-printed JSON document.
//
// The output can be decoded back with [DecodeJSON] and replayed onto any
// surface, so a trace computed once can be re-encoded in other formats
// without re-running layout.
func RenderJSON(t *canvas.Trace, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:     r.id,
		Width:  t.Size.Width,
		Height: t.Size.Height,
		Ops:    t.Ops,
	}
	if out.Ops == nil {
		out.Ops = []canvas.Op{}
	}
	if r.flatten {
		out.Drawings = t.Flatten()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode trace")
	}
	return data, nil
}

// DecodeJSON reads a document produced by [RenderJSON] back into a trace.
func DecodeJSON(data []byte) (*canvas.Trace, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode trace")
	}
	t := &canvas.Trace{Ops: in.Ops}
	t.Size.Width, t.Size.Height = in.Width, in.Height
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid trace")
	}
	return t, nil
}
