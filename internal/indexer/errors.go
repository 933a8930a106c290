package indexer

import (
	"fmt"
	"net/http"
)

// UpstreamError reports an indexer call that failed: transport errors,
// non-2xx responses or a payload that could not be decoded.
type UpstreamError struct {
	Op         string // "fetch address stats", "fetch transactions"
	StatusCode int    // 0 when no response was received
	Message    string // upstream body or decode detail
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: upstream status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: upstream status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the indexer rejected the address itself.
func (e *UpstreamError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusBadRequest
}

// retryable reports whether another attempt could succeed.
func (e *UpstreamError) retryable() bool {
	if e.Err != nil && e.StatusCode == 0 {
		return true // transport failure or timeout
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
