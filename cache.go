package relmodel

import (
	"context"
	"strings"

	"github.com/syssam/relmodel/compiler/gen"
	"github.com/syssam/relmodel/compiler/load"
)

// Cache is the interface for storing built model snapshots.
// Users should implement this interface with their preferred store
// (e.g. a build-cache directory, Redis, in-memory). Invalidation on
// source changes is the implementation's concern; a stale or corrupt
// entry only costs a rebuild.
type Cache interface {
	// Get retrieves a snapshot from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a snapshot in the cache.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a snapshot from the cache.
	Delete(ctx context.Context, key string) error
}

// CacheKey identifies one build configuration.
type CacheKey struct {
	Patterns   []string
	Tag        string
	RelTag     string
	BuildFlags []string
	Dir        string
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return strings.Join([]string{
		strings.Join(k.Patterns, ","),
		k.Tag,
		k.RelTag,
		strings.Join(k.BuildFlags, ","),
		k.Dir,
	}, ":")
}

func keyOf(cfg *load.Config) CacheKey {
	return CacheKey{
		Patterns:   cfg.Patterns,
		Tag:        cfg.Tag,
		RelTag:     cfg.RelTag,
		BuildFlags: cfg.BuildFlags,
		Dir:        cfg.Dir,
	}
}

// LoadCached is LoadConfig backed by a snapshot cache. A hit decodes
// the stored snapshot without parsing any source; a miss or an
// undecodable entry rebuilds from source and stores the result.
func LoadCached(ctx context.Context, c Cache, cfg *load.Config) (*gen.Graphs, error) {
	key := keyOf(cfg).String()
	if buf, err := c.Get(ctx, key); err == nil && buf != nil {
		if graphs, err := gen.UnmarshalGraphs(buf); err == nil {
			return graphs, nil
		}
		_ = c.Delete(ctx, key)
	}
	graphs, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	if buf, err := graphs.MarshalBinary(); err == nil {
		_ = c.Set(ctx, key, buf)
	}
	return graphs, nil
}
