package sim

import (
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota

	// Input validation errors
	ErrCodeInvalidCapacity
	ErrCodeUnknownPolicy
	ErrCodeInvalidReference

	// Trace codec errors
	ErrCodeTraceFormat
	ErrCodeTraceCorrupted
)

// SimError represents an engine error with context
type SimError struct {
	Code ErrorCode
	Message string
	Op string // Operation that failed
	Err error // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulation error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code: code,
		Message: message,
		Op: op,
		Err: err,
	}
}

// Helper functions for common errors

func ErrInvalidCapacity(op string, capacity int) *SimError {
	return NewSimError(
		ErrCodeInvalidCapacity,
		op,
		fmt.Sprintf("frame capacity must be at least 1, got %d", capacity),
		nil,
	)
}

func ErrUnknownPolicy(op, name string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown policy %q", name),
		nil,
	)
}

func ErrInvalidReference(op, token string, err error) *SimError {
	return NewSimError(
		ErrCodeInvalidReference,
		op,
		fmt.Sprintf("invalid page reference %q", token),
		err,
	)
}

func ErrTraceFormat(op, message string) *SimError {
	return NewSimError(
		ErrCodeTraceFormat,
		op,
		message,
		nil,
	)
}

func ErrTraceCorrupted(op string, got, want uint32) *SimError {
	return NewSimError(
		ErrCodeTraceCorrupted,
		op,
		fmt.Sprintf("trace checksum mismatch: got %08x, expected %08x", got, want),
		nil,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if se, ok := err.(*SimError); ok {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	if se, ok := err.(*SimError); ok {
		return se.Code
	}
	return ErrCodeUnknown
}
