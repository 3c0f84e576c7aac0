package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed or contradictory query input.
	ErrValidation = errors.New("validation failed")
	// ErrCatalogUnavailable signals a catalog fetch timeout or outage. Retryable.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrShopNotFound signals a missing shop record.
	ErrShopNotFound = errors.New("shop not found")
)

// Stable validation codes surfaced to API clients.
const (
	CodeMissingQuery                 = "MISSING_QUERY"
	CodeInvalidCoordinates           = "INVALID_COORDINATES"
	CodeInvalidRadius                = "INVALID_RADIUS"
	CodeInvalidBoundingBox           = "INVALID_BOUNDING_BOX"
	CodeInvalidCategory              = "INVALID_CATEGORY"
	CodeInvalidSortBy                = "INVALID_SORT_BY"
	CodeInvalidSortOrder             = "INVALID_SORT_ORDER"
	CodeInvalidPriceRange            = "INVALID_PRICE_RANGE"
	CodeInvalidRating                = "INVALID_RATING"
	CodeInvalidPage                  = "INVALID_PAGE"
	CodeDistanceSortRequiresLocation = "DISTANCE_SORT_REQUIRES_LOCATION"
)

// ValidationError wraps ErrValidation with a stable code and the offending field.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (field %q)", e.Code, e.Message, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error with a stable code.
func NewValidation(code, field, message string) error {
	return &ValidationError{Code: code, Field: field, Message: message}
}
