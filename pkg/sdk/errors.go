package shopdex

import "github.com/kailas-cloud/shopdex/internal/domain"

// Sentinel errors surfaced by the SDK. Use errors.Is to match.
var (
	// ErrValidation signals malformed or contradictory query input.
	ErrValidation = domain.ErrValidation
	// ErrCatalogUnavailable signals a catalog fetch timeout or outage. Retryable.
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)
