package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/viewstack/pkg/buildinfo"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/pipeline"
	"github.com/matzehuels/viewstack/pkg/render/sink"
	"github.com/matzehuels/viewstack/pkg/scene"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readScene(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", sink.Format(format).ContentType())
	w.Header().Set("X-Render-ID", res.RenderID)
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	w.Header().Set("X-Measured-Size", res.Measured.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type sizeJSON struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type measureResponse struct {
	Scene    string   `json:"scene,omitempty"`
	Size     sizeJSON `json:"size"`
	Measured sizeJSON `json:"measured"`
	Nodes    int      `json:"nodes"`
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readScene(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := sizeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.ApplyDocument(doc)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	root, count, err := pipeline.Build(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	measured, err := pipeline.Layout(r.Context(), root, opts.Size())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, measureResponse{
		Scene:    doc.Name,
		Size:     toJSON(opts.Size()),
		Measured: toJSON(measured),
		Nodes:    count,
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readScene(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "dot"
	}
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))

	data, hit, err := s.runner.Tree(r.Context(), doc, format, detailed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	contentType := "text/vnd.graphviz"
	if format != "dot" {
		contentType = sink.Format(format).ContentType()
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) readScene(r *http.Request) (*scene.Document, error) {
	format, err := sceneFormat(r)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, s.opts.MaxBody+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if int64(len(body)) > s.opts.MaxBody {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene larger than %d bytes", s.opts.MaxBody)
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty scene body")
	}
	return scene.Parse(body, format)
}

func sceneFormat(r *http.Request) (scene.Format, error) {
	if f := r.URL.Query().Get("scene"); f != "" {
		switch scene.Format(f) {
		case scene.FormatTOML, scene.FormatYAML, scene.FormatJSON:
			return scene.Format(f), nil
		case "yml":
			return scene.FormatYAML, nil
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.HasSuffix(mt, "toml"):
		return scene.FormatTOML, nil
	case strings.HasSuffix(mt, "yaml"):
		return scene.FormatYAML, nil
	default:
		return scene.FormatJSON, nil
	}
}

func sizeOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &opts.Width}, {"height", &opts.Height}, {"scale", &opts.Scale}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", p.name, v)
		}
		*p.dst = f
	}
	return opts, nil
}

func renderOptions(r *http.Request) (pipeline.Options, error) {
	opts, err := sizeOptions(r)
	if err != nil {
		return opts, err
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts.Formats = []string{format}
	opts.Background = q.Get("background")
	opts.Refresh, _ = strconv.ParseBool(q.Get("refresh"))
	return opts, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func toJSON(s geometry.Size) sizeJSON {
	return sizeJSON{Width: s.Width, Height: s.Height}
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintln(w, `{"error":"INTERNAL_ERROR"}`)
	}
}
