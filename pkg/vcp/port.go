// Package vcp provides a virtual COM port log backend.
//
// A Port decouples the log drain from a slow byte sink (a serial port, a
// terminal) with a bounded stream buffer. Writes never wait for the sink:
// data that does not fit is dropped. A transmit pump moves buffered data to
// the sink in small chunks.
package vcp

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/golang/glog"
)

// Defaults.
const (
	DefaultBufferSize = 1024
	DefaultChunkSize  = 16
)

// ErrBufferFull indicates part of a write was dropped.
var ErrBufferFull = errors.New("vcp buffer full")

// Port is a backend transmitting to an io.Writer from a background pump.
type Port struct {
	// Writer is the sink, e.g. an opened serial device or os.Stdout.
	Writer io.Writer
	// ChunkSize is the maximum number of bytes per sink write.
	ChunkSize int

	lock   sync.Mutex
	buf    []byte
	head   int
	size   int
	notify chan struct{}

	// txLock serializes transmission between Run and Flush.
	txLock sync.Mutex
	chunk  []byte

	dropped uint64
}

// NewPort creates a Port with a stream buffer of bufferSize bytes.
func NewPort(w io.Writer, bufferSize int) *Port {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Port{
		Writer:    w,
		ChunkSize: DefaultChunkSize,
		buf:       make([]byte, bufferSize),
		notify:    make(chan struct{}, 1),
	}
}

// Name implements framework.Named.
func (p *Port) Name() string {
	return "vcp"
}

// Write implements io.Writer. It copies as much of data as fits and never
// blocks on the sink.
func (p *Port) Write(data []byte) (int, error) {
	p.lock.Lock()
	n := len(p.buf) - p.size
	if n > len(data) {
		n = len(data)
	}
	tail := (p.head + p.size) % len(p.buf)
	copied := copy(p.buf[tail:], data[:n])
	copy(p.buf, data[copied:n])
	p.size += n
	if n < len(data) {
		p.dropped += uint64(len(data) - n)
	}
	p.lock.Unlock()

	if n > 0 {
		select {
		case p.notify <- struct{}{}:
		default:
		}
	}
	if n < len(data) {
		return n, ErrBufferFull
	}
	return n, nil
}

// Buffered returns the number of bytes waiting for transmission.
func (p *Port) Buffered() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.size
}

// Dropped returns the number of bytes rejected by Write.
func (p *Port) Dropped() uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.dropped
}

// Run implements framework.Runnable. It transmits buffered data whenever
// Write signals new data, until ctx is done.
func (p *Port) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.notify:
			if err := p.Flush(); err != nil {
				glog.Warningf("vcp transmit failed: %v", err)
			}
		}
	}
}

// Flush transmits everything buffered, chunk by chunk, before returning.
func (p *Port) Flush() error {
	p.txLock.Lock()
	defer p.txLock.Unlock()
	for {
		n := p.receive()
		if n == 0 {
			return nil
		}
		if _, err := p.Writer.Write(p.chunk[:n]); err != nil {
			return err
		}
	}
}

// receive moves up to one chunk out of the stream buffer.
func (p *Port) receive() int {
	size := p.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	if cap(p.chunk) != size {
		p.chunk = make([]byte, size)
	}
	p.chunk = p.chunk[:size]

	p.lock.Lock()
	defer p.lock.Unlock()
	n := p.size
	if n > size {
		n = size
	}
	copied := copy(p.chunk[:n], p.buf[p.head:])
	copy(p.chunk[copied:n], p.buf)
	p.head = (p.head + n) % len(p.buf)
	p.size -= n
	return n
}
