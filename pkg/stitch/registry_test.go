package stitch

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRegistry_GetOrCreateIdempotent(t *testing.T) {
	reg := testRegistry(postSchema())

	a := reg.GetOrCreate("Post")
	b := reg.GetOrCreate("Post")
	if a != b {
		t.Error("GetOrCreate returned distinct instances for the same name")
	}
	if reg.GetOrCreate("Author") == a {
		t.Error("distinct names share an instance")
	}
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	reg := testRegistry(postSchema())

	const n = 32
	instances := make([]*RemoteType, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = reg.GetOrCreate("Post")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if instances[i] != instances[0] {
			t.Fatal("concurrent GetOrCreate produced distinct instances")
		}
	}
}

func TestRemoteType_MaterializeOnce(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.schemas["https://x/graphql"] = postSchema()
	reg := NewRegistry(Endpoint{URL: "https://x/graphql"}, NewSchemaCache(), fetcher, nil)

	post := reg.GetOrCreate("Post")

	const n = 16
	results := make([][]FieldDef, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fields, err := post.Fields(context.Background())
			if err != nil {
				t.Errorf("Fields() error = %v", err)
				return
			}
			results[i] = fields
		}(i)
	}
	wg.Wait()

	// All callers must observe the same materialized field list (same
	// backing array, i.e. one materialization).
	for i := 1; i < n; i++ {
		if len(results[i]) == 0 || &results[i][0] != &results[0][0] {
			t.Fatal("concurrent first access materialized more than once")
		}
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
}

func TestRemoteType_Name(t *testing.T) {
	reg := NewRegistry(Endpoint{Moniker: "posts", URL: "https://x/graphql"}, NewSchemaCache(), newFakeFetcher(), nil)
	if got := reg.GetOrCreate("Post").Name(); got != "posts.Post" {
		t.Errorf("Name() = %q, want %q", got, "posts.Post")
	}

	unnamed := NewRegistry(Endpoint{URL: "https://x/graphql"}, NewSchemaCache(), newFakeFetcher(), nil)
	if got := unnamed.GetOrCreate("Post").Name(); got != "https://x/graphql.Post" {
		t.Errorf("Name() without moniker = %q, want URL prefix", got)
	}
}

func TestRemoteType_TypeNotFound(t *testing.T) {
	reg := testRegistry(postSchema())

	// Creation succeeds for any name; the failure surfaces at first field
	// access.
	missing := reg.GetOrCreate("Missing")
	_, err := missing.Fields(context.Background())
	if !errors.Is(err, ErrTypeNotFound) {
		t.Fatalf("Fields() error = %v, want ErrTypeNotFound", err)
	}

	// The failure corrupts nothing: other types still materialize.
	if _, err := reg.GetOrCreate("Post").Fields(context.Background()); err != nil {
		t.Errorf("Fields() on valid type after failure error = %v", err)
	}
}

func TestRemoteType_FailedMaterializationRetries(t *testing.T) {
	fetcher := newFakeFetcher()
	boom := errors.New("connection refused")
	fetcher.errs["https://x/graphql"] = boom
	reg := NewRegistry(Endpoint{URL: "https://x/graphql"}, NewSchemaCache(), fetcher, nil)

	post := reg.GetOrCreate("Post")
	if _, err := post.Fields(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Fields() error = %v, want wrapped fetch failure", err)
	}

	fetcher.mu.Lock()
	delete(fetcher.errs, "https://x/graphql")
	fetcher.schemas["https://x/graphql"] = postSchema()
	fetcher.mu.Unlock()

	fields, err := post.Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields() after recovery error = %v", err)
	}
	if len(fields) != 3 {
		t.Errorf("Fields() after recovery returned %d fields, want 3", len(fields))
	}
}

func TestRemoteType_CyclicSchema(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.schemas["https://x/graphql"] = cyclicSchema()
	reg := NewRegistry(Endpoint{URL: "https://x/graphql"}, NewSchemaCache(), fetcher, nil)

	a := reg.GetOrCreate("A")
	b := reg.GetOrCreate("B")

	// Materializing both sides of the cycle must terminate.
	aFields, err := a.Fields(context.Background())
	if err != nil {
		t.Fatalf("A.Fields() error = %v", err)
	}
	bFields, err := b.Fields(context.Background())
	if err != nil {
		t.Fatalf("B.Fields() error = %v", err)
	}

	if len(aFields) != 2 || len(bFields) != 2 {
		t.Fatalf("field counts = %d/%d, want 2/2", len(aFields), len(bFields))
	}
	if aFields[1].Object != b {
		t.Error("A.b does not reference the registry's B instance")
	}
	if bFields[1].Object != a {
		t.Error("B.a does not reference the registry's A instance")
	}
}
