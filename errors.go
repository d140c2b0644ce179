// Package blockgrid structured error types.
package blockgrid

import (
	"fmt"
)

// ErrorType categorizes kernel runtime errors.
type ErrorType int

const (
	ErrTypeMemory ErrorType = iota
	ErrTypeInvalidArg
	ErrTypeExecution
	ErrTypeDevice
	ErrTypeNotImplemented
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeDevice:
		return "Device"
	case ErrTypeNotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error carries the failing operation and category alongside the message.
type Error struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string
	Err     error // Underlying error if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("blockgrid %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("blockgrid %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewMemoryError creates a memory-related error.
func NewMemoryError(op, message string, err error) error {
	return &Error{Type: ErrTypeMemory, Op: op, Message: message, Err: err}
}

// NewInvalidArgError creates an invalid argument error.
func NewInvalidArgError(op, message string) error {
	return &Error{Type: ErrTypeInvalidArg, Op: op, Message: message}
}

// NewExecutionError creates an execution error.
func NewExecutionError(op, message string, err error) error {
	return &Error{Type: ErrTypeExecution, Op: op, Message: message, Err: err}
}

var (
	// ErrInvalidSize indicates a non-positive allocation size.
	ErrInvalidSize = NewInvalidArgError("Malloc", "size must be positive")

	// ErrDoubleFree indicates a block was freed twice.
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)

	// ErrInvalidDevice indicates a device ID other than 0.
	ErrInvalidDevice = NewInvalidArgError("SetDevice", "invalid device ID")

	// ErrInvalidShape indicates grid dimensions that do not describe the buffer.
	ErrInvalidShape = NewInvalidArgError("Reduce", "invalid shape")

	// ErrInvalidAxis indicates a reduction axis outside the grid's rank.
	ErrInvalidAxis = NewInvalidArgError("Reduce", "invalid axis")

	// ErrInvalidIndex indicates a segment index outside [0, numSegments).
	ErrInvalidIndex = NewInvalidArgError("SegmentMax", "invalid index")
)

// IsMemoryError reports whether err is a memory error.
func IsMemoryError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeMemory
	}
	return false
}

// IsInvalidArgError reports whether err is an invalid argument error.
func IsInvalidArgError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}
