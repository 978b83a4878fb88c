package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/pipeline"
)

const twoRects = `
name = "two rectangles"
width = 300
height = 300

[root]
type = "hstack"

[[root.children]]
type = "frame"
height = 100
[root.children.content]
type = "rectangle"
color = "red"

[[root.children]]
type = "frame"
height = 50
[root.children.content]
type = "rectangle"
color = "blue"
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(c, nil, logger), logger, Options{MaxBody: 4096})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want a UUID", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPassThrough(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/render?format=svg", "application/toml", twoRects)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Measured-Size"); got != "300x100" {
		t.Errorf("X-Measured-Size = %q, want 300x100", got)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "<svg") {
		t.Errorf("body = %.40q", body)
	}

	again := post(t, ts.URL+"/render?format=svg", "application/toml", twoRects)
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad format", "/render?format=gif", "application/toml", twoRects, 400, "INVALID_FORMAT"},
		{"bad width", "/render?width=wide", "application/toml", twoRects, 400, "INVALID_INPUT"},
		{"zero width", "/render?width=-3", "application/toml", twoRects, 400, "INVALID_SIZE"},
		{"bad scene", "/render", "application/json", `{"root": {"type": "circle"}}`, 400, "INVALID_SCENE"},
		{"empty body", "/render", "application/json", "", 400, "INVALID_INPUT"},
		{"too large", "/render", "application/json", strings.Repeat(" ", 5000), 400, "INVALID_INPUT"},
		{"bad scene param", "/render?scene=xml", "application/json", "{}", 400, "INVALID_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if e.Error != tt.code {
				t.Errorf("error = %q (%s), want %s", e.Error, e.Message, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body missing request_id")
			}
		})
	}
}

func TestRenderUnsupportedMediaType(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/render", "image/png", "x")
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestMeasure(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/measure?width=400", "application/toml", twoRects)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got measureResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Size != (sizeJSON{400, 300}) {
		t.Errorf("size = %+v, want 400x300", got.Size)
	}
	if got.Measured != (sizeJSON{400, 100}) {
		t.Errorf("measured = %+v, want 400x100", got.Measured)
	}
	if got.Scene != "two rectangles" || got.Nodes == 0 {
		t.Errorf("response = %+v", got)
	}
}

func TestTree(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/tree?scene=yaml", "text/plain", "root: {type: vstack, children: [{type: ellipse}]}\n")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "digraph G") || !strings.Contains(string(body), "Ellipse") {
		t.Errorf("body = %s", body)
	}
}

func TestConcurrentRenders(t *testing.T) {
	ts := newTestServer(t)

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url := ts.URL + "/measure?width=" + []string{"100", "200"}[i%2]
			resp, err := http.Post(url, "application/toml", strings.NewReader(twoRects))
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- resp.Status
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	if err := <-done; err != context.Canceled {
		t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
	}
}
