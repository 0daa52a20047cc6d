package stitch

// Endpoint identifies one remote GraphQL service. Endpoints are immutable
// values; the URL is the cache and registry key.
type Endpoint struct {
	// Moniker is an optional human-readable name for the endpoint. It is
	// used to disambiguate exposed type names when set; it plays no part in
	// cache or registry identity.
	Moniker string
	// URL is the endpoint's introspection and query URL.
	URL string
}

// Key returns the endpoint's cache/registry key.
func (e Endpoint) Key() string {
	return e.URL
}

// Identifier returns the name used to prefix the endpoint's exposed types:
// the moniker when set, otherwise the URL.
func (e Endpoint) Identifier() string {
	if e.Moniker != "" {
		return e.Moniker
	}
	return e.URL
}
