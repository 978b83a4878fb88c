package pipeline

import (
	"bytes"
	"context"
	"math"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/scene"
)

func twoRects() *scene.Document {
	return &scene.Document{
		Name:   "two rectangles",
		Width:  300,
		Height: 300,
		Root: &scene.Node{Type: "hstack", Children: []*scene.Node{
			{Type: "frame", Height: geometry.Dim(100), Content: &scene.Node{Type: "rectangle", Color: "red"}},
			{Type: "frame", Height: geometry.Dim(50), Content: &scene.Node{Type: "rectangle", Color: "blue"}},
		}},
	}
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}

	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Size() != geometry.Sz(DefaultWidth, DefaultHeight) {
		t.Errorf("Size() = %v, want 800x600", opts.Size())
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	opts.Width = -5
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Error("ValidateAndSetDefaults should be idempotent once validated")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidSize},
		{"huge height", Options{Height: 1e6}, errors.ErrCodeInvalidSize},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad scale", Options{Scale: 100}, errors.ErrCodeInvalidInput},
		{"bad background", Options{Background: "plaid"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApplyDocument(t *testing.T) {
	doc := &scene.Document{Width: 300, Height: 200, Background: "white"}

	opts := Options{Width: 500}
	opts.ApplyDocument(doc)
	if opts.Width != 500 || opts.Height != 200 || opts.Background != "white" {
		t.Errorf("ApplyDocument() = %+v, want explicit width kept, height and background from doc", opts)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Width: 10, Height: 20, Scale: 3}
	if k := opts.ArtifactKeyOpts("svg"); k.Scale != 0 {
		t.Errorf("svg key should ignore scale, got %v", k.Scale)
	}
	if k := opts.ArtifactKeyOpts("png"); k.Scale != 3 {
		t.Errorf("png key Scale = %v, want 3", k.Scale)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)

	res, err := r.Execute(ctx, twoRects(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Size != geometry.Sz(300, 300) || res.Measured != geometry.Sz(300, 100) {
		t.Errorf("Size, Measured = %v, %v; want 300x300, 300x100", res.Size, res.Measured)
	}
	if res.Stats.NodeCount == 0 || res.RenderID == "" || len(res.SceneHash) != 64 {
		t.Errorf("incomplete result: %+v", res)
	}
	if !strings.HasPrefix(string(res.Artifacts["svg"]), "<svg") {
		t.Errorf("svg artifact = %.30q", res.Artifacts["svg"])
	}
	if !strings.Contains(string(res.Artifacts["json"]), res.RenderID) {
		t.Error("json artifact should carry the render id")
	}
	if res.CacheInfo.RenderHit || res.Trace == nil {
		t.Error("first run should render")
	}

	again, err := r.Execute(ctx, twoRects(), Options{Formats: []string{"svg", "json"}})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit || again.Trace != nil {
		t.Errorf("second run CacheInfo = %+v, want full hit", again.CacheInfo)
	}
	if string(again.Artifacts["svg"]) != string(res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	partial, _ := r.Execute(ctx, twoRects(), Options{Formats: []string{"svg", "png"}, Scale: 1})
	if partial.CacheInfo.RenderHit || len(partial.CacheInfo.Hits) != 1 || partial.CacheInfo.Hits[0] != "svg" {
		t.Errorf("partial CacheInfo = %+v, want svg hit only", partial.CacheInfo)
	}

	fresh, _ := r.Execute(ctx, twoRects(), Options{Formats: []string{"svg"}, Refresh: true})
	if len(fresh.CacheInfo.Hits) != 0 {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	bad := &scene.Document{Root: &scene.Node{Type: "circle"}}
	if _, err := r.Execute(ctx, bad, Options{}); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Execute(bad scene) error = %v, want INVALID_SCENE", err)
	}
	if _, err := r.Execute(ctx, twoRects(), Options{Formats: []string{"bmp"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute(bmp) error = %v, want INVALID_FORMAT", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Execute(canceled, twoRects(), Options{}); !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Execute(canceled) error = %v, want TIMEOUT", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, _ string, n int, _ time.Duration, err error) {
	h.add("build")
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _, measured geometry.Size, _ time.Duration, err error) {
	h.add("layout " + measured.String())
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	h.add("render " + strings.Join(formats, ","))
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, err := quietRunner(nil).Execute(context.Background(), twoRects(), Options{}); err != nil {
		t.Fatal(err)
	}
	want := []string{"build", "layout 300x100", "render svg"}
	if strings.Join(hooks.events, "|") != strings.Join(want, "|") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestTree(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(c)

	dot, hit, err := r.Tree(ctx, twoRects(), "dot", false)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if hit || !strings.HasPrefix(string(dot), "digraph G") {
		t.Errorf("Tree() = %.20q, hit %v", dot, hit)
	}
	if _, hit, _ := r.Tree(ctx, twoRects(), "dot", false); !hit {
		t.Error("second Tree() should hit the cache")
	}
	if _, _, err := r.Tree(ctx, twoRects(), "gif", false); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Tree(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestExecuteRejectsInfiniteSpacing(t *testing.T) {
	doc, err := scene.Parse([]byte("root:\n  type: hstack\n  spacing: .inf\n  children:\n    - type: rectangle\n"), scene.FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !math.IsInf(doc.Root.Spacing, 1) {
		t.Fatalf("Spacing = %v, want +Inf", doc.Root.Spacing)
	}

	_, err = quietRunner(nil).Execute(context.Background(), doc, Options{Formats: []string{"svg", "json"}})
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Fatalf("Execute() error = %v, want INVALID_SCENE", err)
	}
	if got := errors.HTTPStatus(err); got != 400 {
		t.Errorf("HTTPStatus() = %d, want 400", got)
	}
}

func TestExecuteAppliesRenderOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	res, err := quietRunner(nil).Execute(context.Background(), twoRects(), Options{
		Formats:    []string{"svg", "json"},
		Background: "white",
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(string(res.Artifacts["svg"]), `<rect width="100%" height="100%" fill="#ffffff"/>`) {
		t.Error("svg artifact has no background")
	}
	if !strings.Contains(string(res.Artifacts["json"]), res.RenderID) {
		t.Error("json artifact should carry the render id")
	}
	if n := strings.Count(buf.String(), "encoded surface"); n != 2 {
		t.Errorf("encoded surface logged %d times, want 2", n)
	}
}
