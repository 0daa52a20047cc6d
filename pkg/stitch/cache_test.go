package stitch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSchemaCache_GetOrFetch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.schemas["https://x/graphql"] = postSchema()

	cache := NewSchemaCache()
	ep := Endpoint{URL: "https://x/graphql"}

	schema, err := cache.GetOrFetch(context.Background(), ep, fetcher)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if schema.TypeByName("Post") == nil {
		t.Error("fetched schema is missing type Post")
	}

	// Second call must hit the cache.
	again, err := cache.GetOrFetch(context.Background(), ep, fetcher)
	if err != nil {
		t.Fatalf("GetOrFetch() second call error = %v", err)
	}
	if again != schema {
		t.Error("second call returned a different schema instance")
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
}

func TestSchemaCache_ConcurrentSameEndpoint(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.schemas["https://x/graphql"] = postSchema()
	fetcher.delay = 20 * time.Millisecond

	cache := NewSchemaCache()
	ep := Endpoint{URL: "https://x/graphql"}

	const n = 16
	results := make([]interface{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			schema, err := cache.GetOrFetch(context.Background(), ep, fetcher)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = schema
		}(i)
	}
	wg.Wait()

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d observed a different result", i)
		}
	}
}

func TestSchemaCache_ConcurrentDistinctEndpoints(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.schemas["https://a/graphql"] = postSchema()
	fetcher.schemas["https://b/graphql"] = cyclicSchema()

	cache := NewSchemaCache()

	var wg sync.WaitGroup
	for _, url := range []string{"https://a/graphql", "https://b/graphql"} {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			if _, err := cache.GetOrFetch(context.Background(), Endpoint{URL: url}, fetcher); err != nil {
				t.Errorf("GetOrFetch(%s) error = %v", url, err)
			}
		}(url)
	}
	wg.Wait()

	if got := fetcher.calls.Load(); got != 2 {
		t.Errorf("fetch count = %d, want 2", got)
	}
}

func TestSchemaCache_FailureNotCached(t *testing.T) {
	fetcher := newFakeFetcher()
	boom := errors.New("connection refused")
	fetcher.errs["https://x/graphql"] = boom

	cache := NewSchemaCache()
	ep := Endpoint{URL: "https://x/graphql"}

	_, err := cache.GetOrFetch(context.Background(), ep, fetcher)
	if err == nil {
		t.Fatal("GetOrFetch() expected error, got nil")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fetchErr.Endpoint != ep.URL {
		t.Errorf("FetchError.Endpoint = %q, want %q", fetchErr.Endpoint, ep.URL)
	}
	if !errors.Is(err, boom) {
		t.Error("FetchError does not wrap the underlying failure")
	}

	// The failure must not be cached: once the endpoint recovers, a later
	// call fetches successfully.
	fetcher.mu.Lock()
	delete(fetcher.errs, ep.URL)
	fetcher.schemas[ep.URL] = postSchema()
	fetcher.mu.Unlock()

	schema, err := cache.GetOrFetch(context.Background(), ep, fetcher)
	if err != nil {
		t.Fatalf("GetOrFetch() after recovery error = %v", err)
	}
	if schema == nil {
		t.Fatal("GetOrFetch() after recovery returned nil schema")
	}
	if got := fetcher.calls.Load(); got != 2 {
		t.Errorf("fetch count = %d, want 2", got)
	}
}
