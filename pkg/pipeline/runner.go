package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/observability"
	"github.com/matzehuels/viewstack/pkg/scene"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so several goroutines may share one
// Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build, layout and render for doc.
func (r *Runner) Execute(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	opts.ApplyDocument(doc)
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{
		RenderID:  uuid.NewString(),
		Size:      opts.Size(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	logger = logger.With("render_id", result.RenderID)

	start := time.Now()
	root, count, err := Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.NodeCount = count
	result.Stats.BuildTime = time.Since(start)
	if result.SceneHash, err = SceneHash(doc); err != nil {
		return nil, fmt.Errorf("hash scene: %w", err)
	}
	logger.Debug("built view tree", "nodes", count, "duration", result.Stats.BuildTime)

	start = time.Now()
	if result.Measured, err = Layout(ctx, root, result.Size); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(start)
	logger.Debug("measured", "size", result.Size, "measured", result.Measured, "duration", result.Stats.LayoutTime)

	start = time.Now()
	var missing []string
	for _, f := range opts.Formats {
		if data, ok := r.cached(ctx, result.SceneHash, f, opts); ok {
			result.Artifacts[f] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, f)
			continue
		}
		missing = append(missing, f)
	}

	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
	} else {
		sub := opts
		sub.Formats = missing
		artifacts, trace, err := Render(ctx, root, sub, result.RenderID)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Trace = trace
		for f, data := range artifacts {
			result.Artifacts[f] = data
			r.store(ctx, r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(f)), data)
		}
	}
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Tree renders doc's view tree as a node-link diagram, with caching.
func (r *Runner) Tree(ctx context.Context, doc *scene.Document, format string, detailed bool) ([]byte, bool, error) {
	hash, err := SceneHash(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash scene: %w", err)
	}
	key := r.Keyer.TreeKey(hash, format, detailed)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "tree")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	root, _, err := Build(ctx, doc)
	if err != nil {
		return nil, false, fmt.Errorf("build: %w", err)
	}
	data, err := RenderTree(ctx, root, format, detailed)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TreeTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "tree", len(data))
	}
	return data, false, nil
}

func (r *Runner) cached(ctx context.Context, hash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
	if err != nil {
		r.Logger.Warn("cache get failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache set failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
