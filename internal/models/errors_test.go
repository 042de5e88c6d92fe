package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestProviderError(t *testing.T) {
	err := fmt.Errorf("fetching rosters: %w", &ProviderError{Op: "GET /league/L1/rosters", StatusCode: 502, Err: ErrRemoteUnavailable})

	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Error("should unwrap to ErrRemoteUnavailable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("should not match ErrNotFound")
	}
	want := "fetching rosters: GET /league/L1/rosters (status 502): remote provider unavailable"
	if err.Error() != want {
		t.Errorf("got %q want %q", err.Error(), want)
	}
}
