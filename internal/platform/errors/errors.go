package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to vary behaviour (HTTP
// status, user-facing copy, retry hints) without matching message strings.
type Kind string

const (
	KindConfig    Kind = "config"
	KindTransport Kind = "transport"

	KindInvalidURL        Kind = "invalid_url"
	KindUnsafeRedirect    Kind = "unsafe_redirect"
	KindFetchTimeout      Kind = "fetch_timeout"
	KindFetchFailed       Kind = "fetch_failed"
	KindTooLarge          Kind = "too_large"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindDecodeFailed      Kind = "decode_failed"
	KindNoColors          Kind = "no_colors"
	KindNoMatch           Kind = "no_match"
	KindRasterize         Kind = "rasterize"

	KindUnknown Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}

// KindOf returns the kind of the first typed error in the chain.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindUnknown
}

// StatusError carries the HTTP status behind a fetch_failed error.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

// StatusOf extracts the HTTP status from a fetch_failed chain.
func StatusOf(err error) (int, bool) {
	var target *StatusError
	if errors.As(err, &target) {
		return target.Code, true
	}
	return 0, false
}

// LimitKind names which bound a too_large error tripped.
type LimitKind string

const (
	LimitBytes      LimitKind = "bytes"
	LimitDimensions LimitKind = "dimensions"
	LimitPixelCount LimitKind = "pixel_count"
)

// LimitError carries the tripped bound behind a too_large error.
type LimitError struct {
	Limit  LimitKind
	Detail string
}

func (e *LimitError) Error() string {
	return e.Detail
}

// LimitOf extracts the tripped bound from a too_large chain.
func LimitOf(err error) (LimitKind, bool) {
	var target *LimitError
	if errors.As(err, &target) {
		return target.Limit, true
	}
	return "", false
}
