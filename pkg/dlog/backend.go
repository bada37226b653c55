package dlog

import (
	"io"
)

// A backend is any io.Writer. It is only called from the draining
// goroutine, must not block indefinitely, must not log through the Logger
// it serves and must not retain p after Write returns.

// Flusher is implemented by backends with their own buffering. Flush is
// called by Logger.Flush after all queued items have been written.
type Flusher interface {
	Flush() error
}

// Discard is the default backend.
var Discard io.Writer = io.Discard

// Funcs adapts a pair of callbacks to a backend. flush may be nil.
func Funcs(write func(p []byte), flush func()) io.Writer {
	if flush == nil {
		return writeFunc(write)
	}
	return &funcBackend{write: write, flush: flush}
}

type writeFunc func(p []byte)

func (f writeFunc) Write(p []byte) (int, error) {
	f(p)
	return len(p), nil
}

type funcBackend struct {
	write func(p []byte)
	flush func()
}

func (b *funcBackend) Write(p []byte) (int, error) {
	b.write(p)
	return len(p), nil
}

func (b *funcBackend) Flush() error {
	b.flush()
	return nil
}
