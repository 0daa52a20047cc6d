package cli

import (
	"log/slog"

	"github.com/getstitchd/stitchd/pkg/config"
	"github.com/getstitchd/stitchd/pkg/introspection"
	"github.com/getstitchd/stitchd/pkg/logging"
	"github.com/getstitchd/stitchd/pkg/stitch"
)

// buildLogger constructs the process logger from configuration, with flag
// overrides applied by the caller beforehand.
func buildLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})
}

// buildStitcher constructs the stitcher and its endpoint set from
// configuration: an HTTP fetcher carrying each endpoint's extra headers, the
// configured (or default) type filter, and one stitch.Endpoint per
// configured endpoint.
func buildStitcher(cfg *config.Config, logger *slog.Logger) (*stitch.Stitcher, []stitch.Endpoint, error) {
	fetcher := introspection.NewHTTPFetcher(nil)

	endpoints := make([]stitch.Endpoint, 0, len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		if len(ep.Headers) > 0 {
			fetcher.SetHeaders(ep.URL, ep.Headers)
		}
		endpoints = append(endpoints, stitch.Endpoint{Moniker: ep.Moniker, URL: ep.URL})
	}

	filter := stitch.TypeFilter(nil)
	if cfg.Filter != "" {
		var err error
		filter, err = stitch.ExprTypeFilter(cfg.Filter)
		if err != nil {
			return nil, nil, err
		}
	}

	stitcher := stitch.New(stitch.Options{
		Fetcher: fetcher,
		Filter:  filter,
		Logger:  logger,
	})
	return stitcher, endpoints, nil
}

// upstreamEndpoint selects the endpoint backing the gateway: the one named
// by serve.upstream, or the first configured endpoint.
func upstreamEndpoint(cfg *config.Config) (config.EndpointConfig, stitch.Endpoint) {
	epCfg := cfg.Endpoints[0]
	if cfg.Serve.Upstream != "" {
		if named, ok := cfg.EndpointByMoniker(cfg.Serve.Upstream); ok {
			epCfg = named
		}
	}
	return epCfg, stitch.Endpoint{Moniker: epCfg.Moniker, URL: epCfg.URL}
}
