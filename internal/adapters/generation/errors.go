package generation

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("generation API key is not configured")

// UpstreamError is returned when the generation API answers with a non-2xx status.
// Body holds the raw response text for server-side logging only.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation API request failed with status %d", e.StatusCode)
}

// IsUpstreamError reports whether err carries an upstream status failure
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}
