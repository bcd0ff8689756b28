package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindFetchFailed, "fetch", "request failed",
				errors.New("connection refused")),
			contains: []string{"[fetch_failed:fetch]", "request failed", "connection refused"},
		},
		{
			name:     "error without cause",
			err:      New(KindInvalidURL, "validate", "host not allowlisted"),
			contains: []string{"[invalid_url:validate]", "host not allowlisted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(KindDecodeFailed, "decode", "wrapped", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Unwrap should return the original error")
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "direct error kind match",
			err:      New(KindFetchTimeout, "fetch", "deadline exceeded"),
			kind:     KindFetchTimeout,
			expected: true,
		},
		{
			name:     "wrapped error kind match",
			err:      fmt.Errorf("outer: %w", New(KindUnsafeRedirect, "fetch", "redirect target rejected")),
			kind:     KindUnsafeRedirect,
			expected: true,
		},
		{
			name:     "error kind mismatch",
			err:      New(KindNoMatch, "match", "catalog exhausted"),
			kind:     KindNoColors,
			expected: false,
		},
		{
			name:     "non-typed error",
			err:      errors.New("plain error"),
			kind:     KindFetchFailed,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsKind(tt.err, tt.kind)
			if result != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(KindRasterize, "render", "svg parse failed")); got != KindRasterize {
		t.Errorf("KindOf() = %v, expected %v", got, KindRasterize)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf() = %v, expected %v", got, KindUnknown)
	}
}

func TestStatusOf(t *testing.T) {
	err := Wrap(KindFetchFailed, "fetch", "unexpected status", &StatusError{Code: 503})
	code, ok := StatusOf(err)
	if !ok || code != 503 {
		t.Errorf("StatusOf() = %d, %v, expected 503, true", code, ok)
	}

	if _, ok := StatusOf(New(KindFetchFailed, "fetch", "no status")); ok {
		t.Error("StatusOf() should report false without a StatusError cause")
	}
}

func TestLimitOf(t *testing.T) {
	err := Wrap(KindTooLarge, "validate", "image too large",
		&LimitError{Limit: LimitPixelCount, Detail: "pixel count 17000000 exceeds maximum 16000000"})

	limit, ok := LimitOf(err)
	if !ok || limit != LimitPixelCount {
		t.Errorf("LimitOf() = %v, %v, expected %v, true", limit, ok, LimitPixelCount)
	}
}
