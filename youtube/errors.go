package youtube

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is returned before any request is made when no API key is configured.
	ErrMissingKey = errors.New("YouTube API key not configured")

	// ErrNoResults is returned when the API answered successfully with zero items.
	ErrNoResults = errors.New("no videos found")
)

// RequestError is a non-2xx answer from the search endpoint.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}
