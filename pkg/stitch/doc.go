// Package stitch implements the schema-stitching engine: it turns remote
// GraphQL schemas acquired through introspection into a graph of locally
// usable, remote-backed types.
//
// The engine is built from a small number of cooperating pieces:
//
//   - SchemaCache caches one schema description per endpoint with
//     fetch-once semantics under concurrent access.
//   - ResolveTypeRef normalizes a raw introspected type reference chain
//     (NON_NULL/LIST wrappers around a named type) into a flat
//     TypeDescriptor.
//   - The field translator turns an introspected object type's fields into
//     FieldDefs whose resolvers read values out of a semi-structured
//     execution payload.
//   - Registry guarantees at most one RemoteType per (endpoint, type name)
//     pair; creation never resolves fields, which is what lets mutually
//     referential remote types terminate.
//   - RemoteType materializes its field list lazily, exactly once, on first
//     structural access.
//   - Stitcher ties it together: one worker per endpoint, a join barrier,
//     and a type filter deciding which remote types become local types.
//
// Known limitation, preserved deliberately: fields whose remote type cannot
// be mapped to a local semantic kind (custom scalars, unions, interfaces,
// enums, input objects) are silently elided from the local type rather than
// failing the stitch.
package stitch
