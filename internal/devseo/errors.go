package devseo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Client-side validation failures, rejected before any network call.
var (
	// ErrEmptyURL is returned when a website URL is blank.
	ErrEmptyURL = errors.New("website url must not be empty")
	// ErrInvalidMaxPages is returned when a scan is started with a
	// non-positive page budget.
	ErrInvalidMaxPages = errors.New("max_pages must be a positive integer")
	// ErrEmptyOptimizeInput is returned when an optimize request carries
	// neither text nor a URL.
	ErrEmptyOptimizeInput = errors.New("either text or url must be provided")
)

// APIError is the backend's structured error body. Every non-2xx response is
// normalized into one of these so callers always see a single error shape
// with a human-readable message.
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

// Error returns the backend-supplied detail message verbatim.
func (e *APIError) Error() string {
	return e.Detail
}

// decodeAPIError builds an APIError from a non-2xx response. When the body is
// not the expected JSON shape, the error is synthesized from the status line
// so transport and API failures look the same to callers.
func decodeAPIError(statusCode int, status string, body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = statusCode
		}
		return &apiErr
	}
	return &APIError{
		Detail:     fmt.Sprintf("HTTP %s", status),
		StatusCode: statusCode,
	}
}
