// Package cache stores rendered artifacts keyed by scene and options.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing
//
// # Keys
//
// A [Keyer] derives keys from content hashes rather than file names, so the
// same scene rendered twice with the same options hits the cache no matter
// where it came from. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	ArtifactTTL = 7 * 24 * time.Hour
	TreeTTL     = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts holds the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one encoded render of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
	// TreeKey identifies a node-link diagram of a scene's view tree.
	TreeKey(sceneHash, format string, detailed bool) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

func (DefaultKeyer) TreeKey(sceneHash, format string, detailed bool) string {
	return hashKey("tree", sceneHash, format, detailed)
}

var _ Keyer = DefaultKeyer{}
