// Package errors provides structured error reporting for the paging engine.
//
// The engine itself never returns errors from its operations: edge conditions
// are silent no-ops. Misuse of the API (precondition violations) and panics
// raised by observers are routed through the global [ErrorHandler] instead, so
// the host decides whether to log, crash or ignore them.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPrecondition indicates an API call made in a disallowed state.
	KindPrecondition
	// KindHost indicates a failure reported by the host toolkit.
	KindHost
	// KindConfig indicates an invalid configuration or scenario file.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindHost:
		return "host"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrDuplicateController is reported when a page list contains the same
	// view controller more than once.
	ErrDuplicateController = errors.New("view controller appears more than once")
	// ErrLayoutInProgress is reported when decorations are reassigned while a
	// layout pass is running.
	ErrLayoutInProgress = errors.New("decoration changed during layout pass")
)

// PagerError represents a structured error raised by the paging engine.
type PagerError struct {
	// Op is the operation that failed (e.g., "pageview.SetViewControllers").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PagerError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PagerError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "pageview.notify").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the paging engine.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *PagerError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
