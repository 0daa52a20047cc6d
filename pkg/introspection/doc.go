// Package introspection implements the GraphQL introspection protocol used to
// acquire remote schema descriptions.
//
// It defines the wire format of an introspection response (the recursive
// kind/name/ofType type reference chain), the standard introspection query
// document, and an HTTP fetcher that issues a single introspection request
// against a remote endpoint and parses the result into a Schema.
//
// The fetcher performs no retries and carries no timeout of its own; retry
// policy belongs to the caller and timeouts belong to the injected HTTP
// client.
package introspection
