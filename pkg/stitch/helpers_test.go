package stitch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getstitchd/stitchd/pkg/introspection"
)

// fakeFetcher serves canned schemas keyed by URL and counts Fetch calls.
type fakeFetcher struct {
	mu      sync.Mutex
	schemas map[string]*introspection.Schema
	errs    map[string]error
	delay   time.Duration
	calls   atomic.Int32
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		schemas: make(map[string]*introspection.Schema),
		errs:    make(map[string]error),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*introspection.Schema, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if s, ok := f.schemas[url]; ok {
		return s, nil
	}
	return nil, introspection.ErrMissingSchema
}

func namedRef(kind, name string) introspection.TypeRef {
	return introspection.TypeRef{Kind: kind, Name: name}
}

func scalarRef(name string) introspection.TypeRef {
	return namedRef(introspection.KindScalar, name)
}

func objectRef(name string) introspection.TypeRef {
	return namedRef(introspection.KindObject, name)
}

func nonNullRef(inner introspection.TypeRef) introspection.TypeRef {
	return introspection.TypeRef{Kind: introspection.KindNonNull, OfType: &inner}
}

func listRef(inner introspection.TypeRef) introspection.TypeRef {
	return introspection.TypeRef{Kind: introspection.KindList, OfType: &inner}
}

// postSchema is the schema used by most stitching tests:
//
//	type Query  { post: Post }
//	type Post   { id: ID, title: String, author: Author }
//	type Author { name: String }
func postSchema() *introspection.Schema {
	return &introspection.Schema{
		QueryType: &introspection.RootType{Name: "Query"},
		Types: []introspection.Type{
			{Kind: introspection.KindObject, Name: "Query", Fields: []introspection.Field{
				{Name: "post", Type: objectRef("Post")},
			}},
			{Kind: introspection.KindObject, Name: "Post", Fields: []introspection.Field{
				{Name: "id", Type: scalarRef("ID")},
				{Name: "title", Type: scalarRef("String")},
				{Name: "author", Type: objectRef("Author")},
			}},
			{Kind: introspection.KindObject, Name: "Author", Fields: []introspection.Field{
				{Name: "name", Type: scalarRef("String")},
			}},
			{Kind: introspection.KindScalar, Name: "String"},
			{Kind: introspection.KindScalar, Name: "ID"},
		},
	}
}

// cyclicSchema defines two mutually referential object types:
//
//	type A { name: String, b: B }
//	type B { name: String, a: A }
func cyclicSchema() *introspection.Schema {
	return &introspection.Schema{
		Types: []introspection.Type{
			{Kind: introspection.KindObject, Name: "A", Fields: []introspection.Field{
				{Name: "name", Type: scalarRef("String")},
				{Name: "b", Type: objectRef("B")},
			}},
			{Kind: introspection.KindObject, Name: "B", Fields: []introspection.Field{
				{Name: "name", Type: scalarRef("String")},
				{Name: "a", Type: objectRef("A")},
			}},
		},
	}
}
