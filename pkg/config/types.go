package config

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr = ":4480"
	DefaultPath = "/graphql"
)

// Config is the top-level stitchd configuration.
type Config struct {
	// Endpoints are the remote GraphQL services to stitch.
	Endpoints []EndpointConfig `json:"endpoints" yaml:"endpoints"`
	// Filter is an optional expr predicate over {name, kind} selecting
	// which remote types are stitched. Empty means the default filter
	// (exclude "__"-prefixed names and scalar kinds).
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
	// Serve configures the gateway HTTP surface.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`
	// Log configures logging output.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
}

// EndpointConfig describes one remote endpoint.
type EndpointConfig struct {
	// Moniker is an optional human-readable name. When set it prefixes the
	// endpoint's exposed type names and must be unique across endpoints.
	Moniker string `json:"moniker,omitempty" yaml:"moniker,omitempty"`
	// URL is the endpoint's GraphQL URL.
	URL string `json:"url" yaml:"url"`
	// Headers are extra request headers sent with introspection and query
	// requests to this endpoint (typically authorization).
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// ServeConfig configures the gateway HTTP server.
type ServeConfig struct {
	// Addr is the listen address. Defaults to ":4480".
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Path is the URL path the gateway serves. Defaults to "/graphql".
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Upstream selects the endpoint backing the gateway, by moniker.
	// Defaults to the first configured endpoint.
	Upstream string `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	// RootType overrides the root query type name. Defaults to the
	// upstream schema's declared query type.
	RootType string `json:"rootType,omitempty" yaml:"rootType,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format: text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ApplyDefaults fills zero-valued serve options.
func (c *Config) ApplyDefaults() {
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.Path == "" {
		c.Serve.Path = DefaultPath
	}
}

// EndpointByMoniker returns the endpoint configuration with the given
// moniker.
func (c *Config) EndpointByMoniker(moniker string) (EndpointConfig, bool) {
	for _, ep := range c.Endpoints {
		if ep.Moniker == moniker {
			return ep, true
		}
	}
	return EndpointConfig{}, false
}
