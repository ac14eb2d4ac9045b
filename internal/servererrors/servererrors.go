package servererrors

import (
	"errors"
	"net/http"
)

var (
	// upstream catalog boundary
	ErrUpstreamNotConfigured = errors.New("AIRTABLE_API_KEY environment variable is not set")
	ErrUpstreamFetchFailed   = errors.New("failed to fetch catalog from upstream")
	ErrUpstreamTimeout       = errors.New("catalog fetch timed out")

	// local cache. Never crosses a handler boundary, logged and swallowed
	// by the cache writer.
	ErrCacheUnavailable = errors.New("local cache unavailable")

	// storefront
	ErrProductNotFound       = errors.New("product not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrInsufficientStock     = errors.New("insufficient stock for one or more items")
	ErrNoBillYet             = errors.New("no bill has been generated yet")
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")
)

type ServerError struct {
	StatusCode int
	Message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}

// NotFound is a shorthand for the common 404 case.
func NotFound(message string) *ServerError {
	return New(http.StatusNotFound, message, nil)
}
