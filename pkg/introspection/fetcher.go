package introspection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Common fetch errors.
var (
	ErrEmptyURL      = errors.New("endpoint URL is empty")
	ErrMissingSchema = errors.New("response carries no __schema payload")
)

// MaxResponseSize is the maximum introspection response size read from a
// remote endpoint (8MB).
const MaxResponseSize = 8 << 20

// Fetcher obtains a structured schema description from a remote endpoint.
// Implementations must not retry; retry policy belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Schema, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Schema, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Schema, error) {
	return f(ctx, url)
}

// HTTPFetcher performs introspection queries over HTTP POST. The zero value
// is usable; it introspects with http.DefaultClient and no extra headers.
type HTTPFetcher struct {
	client *http.Client

	mu      sync.RWMutex
	headers map[string]map[string]string // endpoint URL -> extra request headers
}

// NewHTTPFetcher creates an HTTPFetcher using the given client. A nil client
// falls back to http.DefaultClient; timeouts are the client's concern.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// SetHeaders registers extra request headers (typically authorization) to be
// sent when introspecting the given endpoint URL.
func (f *HTTPFetcher) SetHeaders(url string, headers map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.headers == nil {
		f.headers = make(map[string]map[string]string)
	}
	f.headers[url] = headers
}

// Fetch issues a single introspection request against url and parses the
// response. Network failures, non-2xx statuses, malformed JSON, and missing
// __schema payloads all return an error without partial results.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Schema, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	body, err := json.Marshal(map[string]string{"query": Query})
	if err != nil {
		return nil, fmt.Errorf("encode introspection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	f.mu.RLock()
	for k, v := range f.headers[url] {
		req.Header.Set(k, v)
	}
	f.mu.RUnlock()

	client := f.client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("introspection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("introspection request returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read introspection response: %w", err)
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode introspection response: %w", err)
	}
	if envelope.Data == nil || envelope.Data.Schema == nil {
		return nil, ErrMissingSchema
	}

	schema := envelope.Data.Schema
	schema.index()
	return schema, nil
}
