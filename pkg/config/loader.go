package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getstitchd/stitchd/pkg/stitch"
)

// Common errors for configuration loading and validation.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrNoEndpoints      = errors.New("no endpoints configured")
	ErrEmptyEndpointURL = errors.New("endpoint URL is empty")
	ErrDuplicateMoniker = errors.New("duplicate endpoint moniker")
	ErrUnknownUpstream  = errors.New("serve.upstream does not name a configured endpoint")
)

// Load reads, defaults, and validates a configuration file. The format is
// detected from the file extension (.yaml/.yml for YAML, otherwise JSON).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for structural problems: at least one
// endpoint, non-empty URLs, unique monikers, a compilable filter expression,
// and a resolvable serve.upstream.
func (c *Config) Validate() error {
	if len(c.Endpoints) == 0 {
		return ErrNoEndpoints
	}

	monikers := make(map[string]bool, len(c.Endpoints))
	for i, ep := range c.Endpoints {
		if ep.URL == "" {
			return fmt.Errorf("%w: endpoint %d", ErrEmptyEndpointURL, i)
		}
		if ep.Moniker == "" {
			continue
		}
		if monikers[ep.Moniker] {
			return fmt.Errorf("%w: %q", ErrDuplicateMoniker, ep.Moniker)
		}
		monikers[ep.Moniker] = true
	}

	if c.Filter != "" {
		if _, err := stitch.ExprTypeFilter(c.Filter); err != nil {
			return err
		}
	}

	if c.Serve.Upstream != "" && !monikers[c.Serve.Upstream] {
		return fmt.Errorf("%w: %q", ErrUnknownUpstream, c.Serve.Upstream)
	}
	return nil
}
