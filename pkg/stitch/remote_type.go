package stitch

import (
	"context"
	"fmt"
	"sync"
)

// RemoteType is the local runtime representation of one remote object type.
// Its field definitions are materialized lazily, exactly once, on first
// structural access, even under concurrent first access from multiple
// goroutines. A RemoteType lives as long as its registry.
type RemoteType struct {
	registry *Registry
	name     string

	mu           sync.Mutex
	materialized bool
	fields       []FieldDef
}

func newRemoteType(reg *Registry, name string) *RemoteType {
	return &RemoteType{registry: reg, name: name}
}

// Name returns the type's exposed name: the endpoint identifier joined with
// the remote type name, so that types of the same name on different
// endpoints cannot collide.
func (t *RemoteType) Name() string {
	return t.registry.endpoint.Identifier() + "." + t.name
}

// RemoteName returns the type's name in the remote schema.
func (t *RemoteType) RemoteName() string {
	return t.name
}

// Endpoint returns the endpoint backing this type.
func (t *RemoteType) Endpoint() Endpoint {
	return t.registry.endpoint
}

// Fields returns the type's field definitions, materializing them on first
// call: the endpoint's schema is looked up through the cache, the type's
// entry located (ErrTypeNotFound if absent), and its fields translated. The
// per-instance critical section makes concurrent first calls materialize
// exactly once; a failed materialization leaves the type unmaterialized so
// a later call can retry.
func (t *RemoteType) Fields(ctx context.Context) ([]FieldDef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.materialized {
		return t.fields, nil
	}

	schema, err := t.registry.cache.GetOrFetch(ctx, t.registry.endpoint, t.registry.fetcher)
	if err != nil {
		return nil, err
	}

	desc := schema.TypeByName(t.name)
	if desc == nil {
		return nil, fmt.Errorf("%w: %q on %s", ErrTypeNotFound, t.name, t.registry.endpoint.Identifier())
	}

	t.fields = translateFields(t.registry, desc)
	t.materialized = true

	t.registry.logger.Debug("materialized remote type",
		"type", t.Name(),
		"fields", len(t.fields))
	return t.fields, nil
}

// Field returns the named field definition, materializing the field list on
// first use. The second return reports whether the field exists locally;
// fields dropped as unresolvable do not.
func (t *RemoteType) Field(ctx context.Context, name string) (FieldDef, bool, error) {
	fields, err := t.Fields(ctx)
	if err != nil {
		return FieldDef{}, false, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true, nil
		}
	}
	return FieldDef{}, false, nil
}
