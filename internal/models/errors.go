package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrRemoteUnavailable = errors.New("remote provider unavailable")
	ErrStoreStale        = errors.New("player store stale")
	ErrInvalidRequest    = errors.New("invalid request")
)

// ProviderError records which provider request failed. Err wraps
// ErrRemoteUnavailable or ErrNotFound.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
