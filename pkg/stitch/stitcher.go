package stitch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// Options configures a Stitcher.
type Options struct {
	// Fetcher performs introspection requests. Defaults to an HTTPFetcher
	// over http.DefaultClient.
	Fetcher introspection.Fetcher
	// Filter selects which remote types become local types. Defaults to
	// DefaultTypeFilter.
	Filter TypeFilter
	// Logger receives stitching progress at info/debug level. Nil disables
	// logging.
	Logger *slog.Logger
}

// Stitcher stitches remote GraphQL endpoints into a local type graph. It
// owns the schema cache and the per-endpoint type registries, scoping their
// lifetime to itself; there is no hidden process-wide state.
type Stitcher struct {
	fetcher introspection.Fetcher
	filter  TypeFilter
	logger  *slog.Logger
	cache   *SchemaCache

	mu         sync.Mutex
	registries map[string]*Registry
}

// New creates a Stitcher with the given options.
func New(opts Options) *Stitcher {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = introspection.NewHTTPFetcher(nil)
	}
	filter := opts.Filter
	if filter == nil {
		filter = DefaultTypeFilter
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Stitcher{
		fetcher:    fetcher,
		filter:     filter,
		logger:     logger,
		cache:      NewSchemaCache(),
		registries: make(map[string]*Registry),
	}
}

// registry returns the registry for ep, creating it on first use.
func (s *Stitcher) registry(ep Endpoint) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.registries[ep.Key()]; ok {
		return reg
	}
	reg := NewRegistry(ep, s.cache, s.fetcher, s.logger)
	s.registries[ep.Key()] = reg
	return reg
}

// Stitch introspects every endpoint with one worker per endpoint, joins all
// workers, and returns the flattened collection of remote-backed types that
// pass the type filter, in endpoint submission order. Types are
// created but not materialized; their fields resolve on first access.
//
// A failed endpoint does not disturb the others: types from endpoints that
// stitched successfully are still returned, alongside the first endpoint's
// error. The failed endpoint's cache entry stays unpopulated, so calling
// Stitch again retries it.
func (s *Stitcher) Stitch(ctx context.Context, endpoints ...Endpoint) ([]*RemoteType, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	results := make([][]*RemoteType, len(endpoints))
	var g errgroup.Group
	for i, ep := range endpoints {
		i, ep := i, ep
		g.Go(func() error {
			types, err := s.stitchEndpoint(ctx, ep)
			if err != nil {
				s.logger.Warn("stitching endpoint failed",
					"endpoint", ep.Identifier(), "error", err)
				return err
			}
			results[i] = types
			return nil
		})
	}
	err := g.Wait()

	var flat []*RemoteType
	for _, types := range results {
		flat = append(flat, types...)
	}
	return flat, err
}

func (s *Stitcher) stitchEndpoint(ctx context.Context, ep Endpoint) ([]*RemoteType, error) {
	schema, err := s.cache.GetOrFetch(ctx, ep, s.fetcher)
	if err != nil {
		return nil, err
	}

	reg := s.registry(ep)
	var types []*RemoteType
	for i := range schema.Types {
		t := &schema.Types[i]
		if !s.filter(t.Name, t.Kind) {
			continue
		}
		types = append(types, reg.GetOrCreate(t.Name))
	}

	s.logger.Info("stitched endpoint",
		"endpoint", ep.Identifier(),
		"remoteTypes", len(schema.Types),
		"localTypes", len(types))
	return types, nil
}

// Type returns the remote-backed type for (ep, name), creating it lazily if
// needed. The name is not validated against the endpoint's schema here;
// unknown names surface as ErrTypeNotFound at first field access.
func (s *Stitcher) Type(ep Endpoint, name string) *RemoteType {
	return s.registry(ep).GetOrCreate(name)
}

// Schema returns ep's schema description, fetching and caching it if the
// endpoint has not been introspected yet.
func (s *Stitcher) Schema(ctx context.Context, ep Endpoint) (*introspection.Schema, error) {
	return s.cache.GetOrFetch(ctx, ep, s.fetcher)
}
