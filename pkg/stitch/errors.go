package stitch

import (
	"errors"
	"fmt"
)

// Common stitching errors.
var (
	// ErrTypeNotFound reports a type name absent from an endpoint's schema.
	// It surfaces lazily, at first field access, never at registry-creation
	// time.
	ErrTypeNotFound = errors.New("type not found in remote schema")
	// ErrNoEndpoints reports a stitch request with no endpoints.
	ErrNoEndpoints = errors.New("no endpoints to stitch")
)

// FetchError reports a failed introspection of one endpoint: a transport
// error, a malformed response, or a missing schema payload. A FetchError is
// fatal to stitching its endpoint but leaves the shared cache unpopulated,
// so a later call may retry.
type FetchError struct {
	// Endpoint is the URL of the endpoint whose introspection failed.
	Endpoint string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("introspect %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying failure.
func (e *FetchError) Unwrap() error {
	return e.Err
}
