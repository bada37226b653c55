// Package dlog provides deferred logging for latency sensitive code.
package dlog

// Producers record Items, references to strings and arrays plus small
// numbers, into a bounded queue without blocking and without formatting.
// A single drain goroutine, the loop started by Logger.Run, renders them
// later into a scratch buffer and hands the text to a backend, any
// io.Writer.
//
// When the queue is full new items are rejected. The next drain pass that
// finds the queue full writes an overflow notice before the backlog, so that
// the gap is visible in the output.
//
// Referenced data must stay unchanged until it is drained. Logger.Flush
// drains synchronously and then flushes the backend, typically before a
// reset or when stopping.
