package stitch

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// SchemaCache is a per-endpoint, fetch-once cache of schema descriptions.
// The first caller for an endpoint performs the introspection; concurrent
// callers for the same endpoint share that one in-flight fetch, while
// callers for different endpoints proceed independently. Successful results
// are cached for the life of the cache and never evicted. Failed fetches
// leave the endpoint unpopulated, so a later call retries.
type SchemaCache struct {
	group singleflight.Group

	mu      sync.RWMutex
	schemas map[string]*introspection.Schema
}

// NewSchemaCache creates an empty schema cache.
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		schemas: make(map[string]*introspection.Schema),
	}
}

// GetOrFetch returns the cached schema description for ep, fetching it with
// fetcher on first use. Fetch failures are returned as *FetchError and are
// not cached.
func (c *SchemaCache) GetOrFetch(ctx context.Context, ep Endpoint, fetcher introspection.Fetcher) (*introspection.Schema, error) {
	c.mu.RLock()
	schema, ok := c.schemas[ep.Key()]
	c.mu.RUnlock()
	if ok {
		return schema, nil
	}

	v, err, _ := c.group.Do(ep.Key(), func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have populated
		// the entry between our read and joining this one.
		c.mu.RLock()
		schema, ok := c.schemas[ep.Key()]
		c.mu.RUnlock()
		if ok {
			return schema, nil
		}

		schema, fetchErr := fetcher.Fetch(ctx, ep.URL)
		if fetchErr != nil {
			return nil, &FetchError{Endpoint: ep.URL, Err: fetchErr}
		}

		c.mu.Lock()
		c.schemas[ep.Key()] = schema
		c.mu.Unlock()
		return schema, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*introspection.Schema), nil
}

// Get returns the cached schema for ep without fetching.
func (c *SchemaCache) Get(ep Endpoint) (*introspection.Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	schema, ok := c.schemas[ep.Key()]
	return schema, ok
}
