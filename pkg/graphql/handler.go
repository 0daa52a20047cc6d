package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ohler55/ojg/oj"

	"github.com/getstitchd/stitchd/pkg/httputil"
)

// Interface compliance check
var _ http.Handler = (*Handler)(nil)

// MaxRequestBodySize is the maximum allowed request body size (1MB).
const MaxRequestBodySize = 1 << 20

// MaxUpstreamBodySize is the maximum upstream response size read by the
// gateway (8MB).
const MaxUpstreamBodySize = 8 << 20

// HandlerOptions configures a gateway Handler.
type HandlerOptions struct {
	// Client performs upstream requests. Nil falls back to
	// http.DefaultClient.
	Client *http.Client
	// Headers are extra request headers (typically authorization) sent with
	// every upstream request.
	Headers map[string]string
	// Logger receives request handling events. Nil disables logging.
	Logger *slog.Logger
}

// Handler is the gateway surface for one stitched endpoint: it accepts
// GraphQL POST requests, forwards the query to the upstream service, and
// executes the selection locally against the stitched types with the
// upstream's data document as the payload. Scalar coercion and
// unresolvable-field elision are applied on the way out.
type Handler struct {
	executor    *Executor
	upstreamURL string
	client      *http.Client
	headers     map[string]string
	logger      *slog.Logger
}

// NewHandler creates a gateway handler forwarding to upstreamURL and shaping
// responses through executor's stitched root type.
func NewHandler(executor *Executor, upstreamURL string, opts HandlerOptions) *Handler {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		executor:    executor,
		upstreamURL: upstreamURL,
		client:      client,
		headers:     opts.Headers,
		logger:      logger,
	}
}

// ServeHTTP handles POST requests carrying a JSON GraphQL request body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only POST is supported")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "read_failed", "failed to read request body")
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	if req.Query == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing_query", "query is required")
		return
	}

	payload, upstreamErrs, err := h.fetchUpstream(r.Context(), &req)
	if err != nil {
		h.logger.Warn("upstream query failed", "upstream", h.upstreamURL, "error", err)
		httputil.WriteJSON(w, http.StatusBadGateway, &Response{
			Errors: []Error{{Message: fmt.Sprintf("upstream query failed: %v", err)}},
		})
		return
	}

	resp := h.executor.Execute(r.Context(), &req, payload)
	// Upstream execution errors are passed through ahead of local ones.
	resp.Errors = append(upstreamErrs, resp.Errors...)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// fetchUpstream forwards the request to the upstream endpoint and returns
// the parsed data document plus any upstream-reported errors.
func (h *Handler) fetchUpstream(ctx context.Context, req *Request) (map[string]interface{}, []Error, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("encode upstream request: %w", err)
	}

	upReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.upstreamURL, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build upstream request: %w", err)
	}
	upReq.Header.Set("Content-Type", "application/json")
	upReq.Header.Set("Accept", "application/json")
	for k, v := range h.headers {
		upReq.Header.Set(k, v)
	}

	upResp, err := h.client.Do(upReq)
	if err != nil {
		return nil, nil, err
	}
	defer upResp.Body.Close()

	if upResp.StatusCode < 200 || upResp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("upstream returned status %d", upResp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(upResp.Body, MaxUpstreamBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("read upstream response: %w", err)
	}

	parsed, err := oj.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode upstream response: %w", err)
	}
	envelope, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("upstream response is not an object")
	}

	var upstreamErrs []Error
	if rawErrs, ok := envelope["errors"].([]interface{}); ok {
		for _, rawErr := range rawErrs {
			if obj, ok := rawErr.(map[string]interface{}); ok {
				msg, _ := obj["message"].(string)
				path, _ := obj["path"].([]interface{})
				upstreamErrs = append(upstreamErrs, Error{Message: msg, Path: path})
			}
		}
	}

	data, _ := envelope["data"].(map[string]interface{})
	return data, upstreamErrs, nil
}
