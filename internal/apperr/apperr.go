// Package apperr defines the error taxonomy surfaced across package
// boundaries by the indexing and retrieval pipeline.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies one of the error categories callers can branch on.
type Kind string

const (
	// InvalidInput marks malformed arguments (bad query, bad option value).
	InvalidInput Kind = "invalid_input"
	// PathNotFound marks a deps/explain target that does not resolve.
	PathNotFound Kind = "path_not_found"
	// IndexNotReady marks a query made before the initial sweep completed.
	IndexNotReady Kind = "index_not_ready"
	// EmbedderUnavailable marks the semantic sub-search as disabled for this call.
	EmbedderUnavailable Kind = "embedder_unavailable"
	// EmbedderTransient marks an embedding batch that failed but may succeed on retry.
	EmbedderTransient Kind = "embedder_transient"
	// ParserInternal marks a grammar failure; the file is skipped, never fatal to the sweep.
	ParserInternal Kind = "parser_internal"
	// Timeout marks a call that returned partial results under a deadline.
	Timeout Kind = "timeout"
	// Internal marks an unexpected condition; always carries a correlation id.
	Internal Kind = "internal"
)

// Error is the concrete error type returned across the core's public API.
type Error struct {
	Kind          Kind
	Message       string
	CorrelationID string
	Cause         error
}

func (e *Error) Error() string {
	if e.CorrelationID != "" {
		return fmt.Sprintf("%s: %s (correlation_id=%s)", e.Kind, e.Message, e.CorrelationID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a non-internal error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a non-internal error of the given kind, preserving cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Internalf builds an Internal error with a fresh correlation id, suitable
// for logging alongside the id so an operator can grep one failure across
// every layer it touched.
func Internalf(cause error, format string, args ...any) *Error {
	return &Error{
		Kind:          Internal,
		Message:       fmt.Sprintf(format, args...),
		CorrelationID: uuid.NewString(),
		Cause:         cause,
	}
}

// Is reports whether err (or any error it wraps) has the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf extracts the Kind of err, defaulting to Internal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if err == nil {
		return ""
	}
	return Internal
}
