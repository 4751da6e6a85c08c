package relmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmodel/compiler/gen"
	"github.com/syssam/relmodel/compiler/load"
	"github.com/syssam/relmodel/schema/field"
)

const modelsPkg = "github.com/syssam/relmodel/compiler/load/testdata/models"

// memCache is a map-backed Cache for tests.
type memCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.entries[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.sets++
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.deletes++
	delete(c.entries, key)
	return nil
}

func TestLoad(t *testing.T) {
	graphs, err := Load("./compiler/load/testdata/models")
	require.NoError(t, err)
	require.Equal(t, 3, graphs.Len())

	customer, ok := graphs.Lookup(modelsPkg + ".Customer")
	require.True(t, ok)
	assert.Equal(t, "customers", customer.Table)
	require.NotNil(t, customer.ID)
	assert.Equal(t, field.IDUUID, customer.ID.Type)
	assert.True(t, customer.ID.Generated)

	// Customer.Orders is paired with Order.Customer, so nothing is
	// synthesized on the order side.
	order, ok := graphs.Lookup(modelsPkg + ".Order")
	require.True(t, ok)
	assert.Empty(t, order.SyntheticEdges())
}

func TestLoadError(t *testing.T) {
	_, err := Load("./does/not/exist")
	require.Error(t, err)
}

func TestCacheKeyString(t *testing.T) {
	k := CacheKey{
		Patterns: []string{"./models", "./auth"},
		Tag:      "db",
		RelTag:   "rel",
		Dir:      "src",
	}
	assert.Equal(t, "./models,./auth:db:rel::src", k.String())
}

func TestLoadCached(t *testing.T) {
	ctx := context.Background()

	t.Run("miss builds and stores", func(t *testing.T) {
		c := newMemCache()
		cfg := &load.Config{Patterns: []string{"./compiler/load/testdata/models"}}
		graphs, err := LoadCached(ctx, c, cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, graphs.Len())
		assert.Equal(t, 1, c.sets)
	})

	t.Run("hit skips parsing entirely", func(t *testing.T) {
		// The configured pattern matches nothing; only a cache hit can
		// satisfy the call.
		cfg := &load.Config{Patterns: []string{"./does/not/exist"}}
		graphs, err := gen.Build(&load.Declarations{
			Entities: []*load.Entity{{Namespace: "store", Name: "Order"}},
			IDs: []*load.Member{
				{Entity: "store.Order", Name: "ID", Type: &load.TypeRef{Ident: "int"}},
			},
		})
		require.NoError(t, err)
		buf, err := graphs.MarshalBinary()
		require.NoError(t, err)

		c := newMemCache()
		c.entries[keyOf(cfg).String()] = buf

		got, err := LoadCached(ctx, c, cfg)
		require.NoError(t, err)
		_, ok := got.Lookup("store.Order")
		assert.True(t, ok)
		assert.Zero(t, c.sets)
	})

	t.Run("corrupt entry is dropped and rebuilt", func(t *testing.T) {
		cfg := &load.Config{Patterns: []string{"./compiler/load/testdata/models"}}
		c := newMemCache()
		c.entries[keyOf(cfg).String()] = []byte("garbage")

		graphs, err := LoadCached(ctx, c, cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, graphs.Len())
		assert.Equal(t, 1, c.deletes)
		assert.Equal(t, 1, c.sets)
	})
}
