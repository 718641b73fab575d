package openlibrary

import (
	"errors"
	"fmt"
)

// Sentinel errors for authoritative absence (HTTP 404) of a resource.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrCoverNotFound  = errors.New("cover not found")
	ErrAuthorNotFound = errors.New("author not found")
)

// ConnectionError reports that the endpoint could not be reached at all:
// DNS failure, refused connection, or a timeout before any response.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("openlibrary: %s not reachable: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// WebRequestError reports a non-2xx, non-404 response, or a successful
// response whose body could not be decoded into the expected shape.
type WebRequestError struct {
	StatusCode int
	Err        error
}

func (e *WebRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("openlibrary: request failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("openlibrary: request failed (status %d)", e.StatusCode)
}

func (e *WebRequestError) Unwrap() error { return e.Err }
