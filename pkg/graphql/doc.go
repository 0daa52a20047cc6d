// Package graphql executes GraphQL queries against a stitched remote-backed
// type graph.
//
// The Executor is the host-side engine: it parses a query document with
// gqlparser and walks its selection set against a stitch.RemoteType, invoking
// each field's resolver with the execution payload, a semi-structured
// (parsed JSON) object whose keys match remote field names. Complex fields
// recurse with the nested payload object (or element-wise over arrays for
// list fields). Scalar coercion and unresolvable-field elision happen inside
// the stitched types themselves.
//
// The Handler is a small gateway surface on top of the Executor: it forwards
// an incoming query to the upstream endpoint, takes the upstream's data
// document as the execution payload, and shapes the response through the
// stitched types.
//
// Only queries are executed; mutations and subscriptions are out of scope.
// Field arguments are accepted syntactically but ignored: the payload has
// already been produced by the upstream service.
package graphql
