package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailTaken is returned when a user with the same email already exists
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrListNotFound is returned when the referenced shopping list does not exist
	ErrListNotFound = errors.New("shopping list not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// FetchKind classifies a failed page fetch.
type FetchKind int

const (
	FetchNetwork FetchKind = iota
	FetchBadStatus
	FetchTimeout
)

// String returns a human-readable name for the fetch failure kind.
func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchBadStatus:
		return "bad_status"
	case FetchTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// FetchError describes a failed page fetch. It is pair-scoped: the
// comparison engine converts it into a missing price for that single
// (source, product) pair, never into a request-level failure.
type FetchError struct {
	Kind   FetchKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchBadStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	case FetchTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
