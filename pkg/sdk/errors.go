package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from API error responses.
// Use errors.Is() to check.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRateLimited        = errors.New("rate limited")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// APIError is an error response from the loupe service.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("loupe: %s (%s, http %d)", e.Message, e.Code, e.Status)
}

// Unwrap maps the response onto a sentinel error.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	switch e.Code {
	case "bad_request", "validation_failed":
		return ErrBadRequest
	case "rate_limited":
		return ErrRateLimited
	case "catalog_unavailable":
		return ErrCatalogUnavailable
	default:
		return nil
	}
}
