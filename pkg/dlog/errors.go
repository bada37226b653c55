package dlog

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity indicates the queue capacity is not a power of two.
	ErrCapacity = errors.New("queue capacity must be a power of two")
	// ErrInitialized indicates Init was called on an initialized Logger.
	ErrInitialized = errors.New("logger already initialized")
	// ErrNotInitialized indicates Run was called before Init.
	ErrNotInitialized = errors.New("logger not initialized")
	// ErrRunning indicates a second drain loop was started.
	ErrRunning = errors.New("drain loop already running")
)

// CapacityError reports an invalid queue capacity.
type CapacityError struct {
	Capacity int
}

// Error implements error.
func (e *CapacityError) Error() string {
	return fmt.Sprintf("invalid queue capacity %d: %v", e.Capacity, ErrCapacity)
}

// Unwrap returns ErrCapacity.
func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}

// SymbolError reports a config symbol that is not exactly one byte.
type SymbolError struct {
	Value string
}

// Error implements error.
func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q must be a single byte", e.Value)
}
