package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict: resource already exists")
	ErrInternal       = errors.New("internal server error")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Kind classifies a database call failure.
type Kind int

const (
	// KindStore means the backing store itself raised the error (a RAISE in a
	// procedure, a constraint violation). The message is store-authored and
	// safe to show to callers.
	KindStore Kind = iota
	// KindTransport covers connection, timeout and protocol failures. The
	// message is generic; store internals are not exposed.
	KindTransport
	// KindMapping means a row mapper hit a missing column or a type mismatch
	// on an integer field. Treated as schema drift, never degraded silently.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindStore:
		return "store"
	case KindTransport:
		return "transport"
	case KindMapping:
		return "mapping"
	}
	return "unknown"
}

// StoreError is the single error type surfaced by the execution engine.
type StoreError struct {
	Kind    Kind
	Op      string // procedure, view or query that failed
	Message string // caller-facing message
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s error: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError of the given kind.
func NewStoreError(kind Kind, op, message string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Message: message, Err: err}
}

// StoreMessage returns the store-authored message when err is a KindStore
// failure. For every other error it reports false: those messages must not
// reach callers.
func StoreMessage(err error) (string, bool) {
	var se *StoreError
	if errors.As(err, &se) && se.Kind == KindStore {
		return se.Message, true
	}
	return "", false
}

// IsMapping reports whether err is a mapping (schema drift) failure.
func IsMapping(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindMapping
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
