package stitch

import (
	"io"
	"log/slog"
	"sync"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// Registry tracks the remote-backed types constructed for a single
// endpoint. It guarantees at most one RemoteType per type name for its
// lifetime. Registries for different endpoints are independent; no
// cross-endpoint locking exists.
type Registry struct {
	endpoint Endpoint
	cache    *SchemaCache
	fetcher  introspection.Fetcher
	logger   *slog.Logger

	mu    sync.Mutex
	types map[string]*RemoteType
}

// NewRegistry creates a registry for ep backed by the given cache and
// fetcher.
func NewRegistry(ep Endpoint, cache *SchemaCache, fetcher introspection.Fetcher, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		endpoint: ep,
		cache:    cache,
		fetcher:  fetcher,
		logger:   logger,
		types:    make(map[string]*RemoteType),
	}
}

// Endpoint returns the endpoint this registry serves.
func (r *Registry) Endpoint() Endpoint {
	return r.endpoint
}

// GetOrCreate returns this endpoint's remote-backed type for name, creating
// it on first use. Concurrent calls for the same name return the same
// instance. Creation never materializes fields, so mutually referential
// remote types cannot recurse. An unknown name is not an error here; it
// surfaces as ErrTypeNotFound when the type's fields are first requested.
func (r *Registry) GetOrCreate(name string) *RemoteType {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.types[name]; ok {
		return t
	}
	t := newRemoteType(r, name)
	r.types[name] = t
	return t
}
