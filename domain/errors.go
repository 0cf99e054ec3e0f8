package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates the stock search API key is not configured.
	ErrMissingAPIKey = errors.New("stock api key not configured")

	// ErrUnexpectedStatus indicates the server answered with a status the
	// caller does not treat as success.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// FetchError reports a failed page load.
type FetchError struct {
	Op     string // e.g. "fetch reels page 2"
	Status int    // HTTP status, 0 for transport or decode failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LikeError reports a failed like mutation. Callers log it and move on.
type LikeError struct {
	ReelID string
	Status int
	Err    error
}

func (e *LikeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("like reel %s: status %d: %v", e.ReelID, e.Status, e.Err)
	}
	return fmt.Sprintf("like reel %s: %v", e.ReelID, e.Err)
}

func (e *LikeError) Unwrap() error { return e.Err }
