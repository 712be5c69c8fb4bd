package errors

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Kind classifies an error so the HTTP boundary can map it to a status code
// without inspecting message text.
type Kind int

const (
	// KindUnknown is the zero kind; wrapping with it preserves the inner kind.
	KindUnknown Kind = iota
	// KindInvalidRequest means the caller broke the contract. Never retried.
	KindInvalidRequest
	// KindProvider covers transport, auth and rate-limit failures from a
	// model provider. Retryable.
	KindProvider
	// KindSchema means the provider returned output that failed validation.
	// Treated like a provider failure for retry purposes.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindProvider:
		return "provider"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	msg  string
	err  error
}

func (e *kindError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() error { return e.err }

// New creates a new error of the given kind with file and line number information.
func New(kind Kind, format string, a ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf("[%s] %s", caller(), fmt.Sprintf(format, a...))}
}

// Wrapf adds context (including file and line number) to an existing error.
// The wrapped error's kind, if any, stays visible through HasKind.
// If the provided error is nil, Wrapf returns nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: KindUnknown, msg: fmt.Sprintf("[%s] %s", caller(), fmt.Sprintf(format, a...)), err: err}
}

// WrapKind is Wrapf with an explicit kind for the new layer.
func WrapKind(kind Kind, err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, msg: fmt.Sprintf("[%s] %s", caller(), fmt.Sprintf(format, a...)), err: err}
}

// HasKind reports whether any error in the chain carries the given kind.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		if ke, ok := err.(*kindError); ok && ke.kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
