package extract

import (
	"errors"
	"fmt"
)

// NoMatchError is returned when no extractor handles a URL.
type NoMatchError struct {
	URL string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("unsupported URL: %s", e.URL)
}

// DownloadError wraps a transport or HTTP status failure while fetching metadata.
// StatusCode is zero when no response was received.
type DownloadError struct {
	ID         string
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unable to download JSON metadata: HTTP %d", e.ID, e.StatusCode)
	}
	return fmt.Sprintf("%s: unable to download JSON metadata: %v", e.ID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// NotFoundError means the API answered but carried no track.
// It is an expected condition, reported without further detail.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: Track not found", e.ID)
}

// ExtractionError is an unexpected failure interpreting a response.
type ExtractionError struct {
	ID  string
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.ID, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.ID, e.Msg)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsExpected reports whether err is a clean user-facing condition
// that should be printed without diagnostics.
func IsExpected(err error) bool {
	var notFound *NotFoundError
	var noMatch *NoMatchError
	return errors.As(err, &notFound) || errors.As(err, &noMatch)
}
