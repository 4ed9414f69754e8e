package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Veraticus/compras/internal/common"
)

// HTTPError is returned for any non-2xx response. Client errors and server
// errors are not told apart.
type HTTPError struct {
	Method     string
	Path       string
	Body       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Temporary reports whether a later attempt may succeed: rate limiting
// and server-side failures.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Unwrap exposes common.ErrRateLimit for 429 responses. The request was
// refused before it was handled.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return common.ErrRateLimit
	}
	return nil
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
