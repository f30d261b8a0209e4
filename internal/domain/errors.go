package domain

import "errors"

var (
	// ErrEmptyQuery signals a match query with no identifying field. The
	// transport layer must reject such requests before they reach the engine.
	ErrEmptyQuery = errors.New("query has no identifying fields")
	// ErrCatalogNotLoaded signals that no catalog snapshot has been published.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrNamesUnavailable signals that the auxiliary name dataset could not be
	// loaded. It disables the name-only fallback tier; it is never surfaced to
	// callers as a request failure.
	ErrNamesUnavailable = errors.New("name dataset unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
