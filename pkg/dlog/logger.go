package dlog

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/golang/glog"
)

// Logger state.
const (
	stateUninitialized int32 = iota
	stateInitializing
	stateInitialized
	stateRunning
)

// Logger records Items from any goroutine without blocking and renders them
// later on a single draining goroutine.
//
// The zero value and a nil *Logger are valid and discard everything until
// Init has completed. Init succeeds at most once.
type Logger struct {
	queue   *Queue
	backend io.Writer
	flusher Flusher

	interval       time.Duration
	arraySep       byte
	msgStart       byte
	msgStop        byte
	labelSep       byte
	colors         bool
	overflowNotice string

	state  atomic.Int32
	wakeCh chan struct{}

	// drainLock serializes consumers: the drain loop and explicit flushes.
	drainLock sync.Mutex
	scratch   []byte

	stats stats
}

// New creates an initialized Logger. backend may be nil for Discard.
func New(conf *Config, backend io.Writer) (*Logger, error) {
	l := &Logger{}
	if err := l.Init(conf, backend); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew creates a Logger and stops the process on misconfiguration.
func MustNew(conf *Config, backend io.Writer) *Logger {
	l, err := New(conf, backend)
	if err != nil {
		glog.Fatalf("logger init failed: %v", err)
	}
	return l
}

// Init installs the backend and resets the queue. A nil conf uses the
// defaults.
func (l *Logger) Init(conf *Config, backend io.Writer) error {
	if conf == nil {
		conf = Default()
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if !l.state.CompareAndSwap(stateUninitialized, stateInitializing) {
		return ErrInitialized
	}
	q, err := NewQueue(conf.QueueSize)
	if err != nil {
		l.state.Store(stateUninitialized)
		return err
	}
	if backend == nil {
		backend = Discard
	}
	l.backend = backend
	l.flusher, _ = backend.(Flusher)
	l.interval = conf.PollInterval
	l.arraySep = byte(conf.ArraySeparator)
	l.msgStart = byte(conf.MessageStart)
	l.msgStop = byte(conf.MessageStop)
	l.labelSep = byte(conf.LabelSeparator)
	l.colors = conf.Colors
	l.overflowNotice = conf.OverflowNotice
	l.scratch = make([]byte, 0, conf.ScratchSize)
	l.wakeCh = make(chan struct{}, 1)
	l.queue = q
	l.state.Store(stateInitialized)
	glog.V(1).Infof("logger initialized: queue=%d poll=%v colors=%v", conf.QueueSize, conf.PollInterval, conf.Colors)
	return nil
}

// ready reports whether Init has completed. Fields set by Init are visible
// once it returns true.
func (l *Logger) ready() bool {
	return l.state.Load() >= stateInitialized
}

// Queue returns the underlying queue, nil before Init.
func (l *Logger) Queue() *Queue {
	if l == nil || !l.ready() {
		return nil
	}
	return l.queue
}

// If returns l when cond holds and nil otherwise, so that
// l.If(cond).Str("...") only enqueues when cond is true.
func (l *Logger) If(cond bool) *Logger {
	if cond {
		return l
	}
	return nil
}

// Push enqueues a prepared item. Colors are dropped when disabled.
func (l *Logger) Push(item Item) bool {
	if l == nil || !l.ready() {
		return false
	}
	if !l.colors {
		item.Color = ColorNone
	}
	if l.queue.Push(item) {
		l.stats.enqueued.Add(1)
		return true
	}
	l.stats.dropped.Add(1)
	return false
}

func pickColor(color []Color) Color {
	if len(color) > 0 {
		return color[0]
	}
	return ColorNone
}

// Str enqueues s. s is not copied.
func (l *Logger) Str(s string, color ...Color) bool {
	return l.Push(StringItem(s, pickColor(color)))
}

// Bytes enqueues a reference to p. p must not change until drained.
func (l *Logger) Bytes(p []byte, color ...Color) bool {
	return l.Push(BytesItem(p, pickColor(color)))
}

// Char enqueues a single byte.
func (l *Logger) Char(c byte, color ...Color) bool {
	return l.Push(CharItem(c, pickColor(color)))
}

// Decimal enqueues value rendered in decimal. When signed, value is sign
// extended from width.
func (l *Logger) Decimal(value uint32, width Width, signed bool, color ...Color) bool {
	return l.Push(NumberItem(value, width, signed, RadixDecimal, pickColor(color)))
}

// Hexadecimal enqueues value rendered as width*2 hex digits.
func (l *Logger) Hexadecimal(value uint32, width Width, color ...Color) bool {
	return l.Push(NumberItem(value, width, false, RadixHex, pickColor(color)))
}

// Array enqueues a reference to len(data)/width elements stored in native
// byte order. data must not change until drained.
func (l *Logger) Array(data []byte, width Width, signed bool, radix Radix, sep byte, color ...Color) bool {
	return l.Push(ArrayItem(data, width, signed, radix, sep, pickColor(color)))
}

// MessageStart opens a framed message with an optional label.
func (l *Logger) MessageStart(label string, color ...Color) bool {
	return l.Push(MessageItem(true, label, pickColor(color)))
}

// MessageStop closes a framed message with an optional label.
func (l *Logger) MessageStop(label string, color ...Color) bool {
	return l.Push(MessageItem(false, label, pickColor(color)))
}

// Integer is the set of integer types the typed helpers accept.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

// TypeOf returns the width and signedness of T.
func TypeOf[T Integer]() (Width, bool) {
	var zero T
	return Width(unsafe.Sizeof(zero)), ^zero < 0
}

// Dec enqueues v in decimal, signed according to its type.
func Dec[T Integer](l *Logger, v T, color ...Color) bool {
	width, signed := TypeOf[T]()
	return l.Decimal(uint32(v), width, signed, color...)
}

// Hex enqueues v in hex with as many digits as its type has nibbles.
func Hex[T Integer](l *Logger, v T, color ...Color) bool {
	width, _ := TypeOf[T]()
	return l.Hexadecimal(uint32(v), width, color...)
}

// ArrayDec enqueues a reference to arr rendered in decimal, separated by the
// configured array separator.
func ArrayDec[T Integer](l *Logger, arr []T, color ...Color) bool {
	return pushArray(l, arr, RadixDecimal, color)
}

// ArrayHex enqueues a reference to arr rendered in hex, separated by the
// configured array separator.
func ArrayHex[T Integer](l *Logger, arr []T, color ...Color) bool {
	return pushArray(l, arr, RadixHex, color)
}

func pushArray[T Integer](l *Logger, arr []T, radix Radix, color []Color) bool {
	if l == nil {
		return false
	}
	width, signed := TypeOf[T]()
	var data []byte
	if len(arr) > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(arr))), len(arr)*int(width))
	}
	return l.Array(data, width, signed, radix, l.arraySep, color...)
}

type stats struct {
	enqueued    atomic.Uint64
	dropped     atomic.Uint64
	passes      atomic.Uint64
	overflows   atomic.Uint64
	bytes       atomic.Uint64
	writeErrors atomic.Uint64
}

// Snapshot is a point in time copy of the Logger counters.
type Snapshot struct {
	// Enqueued counts successful pushes.
	Enqueued uint64
	// Dropped counts pushes rejected by a full queue.
	Dropped uint64
	// Passes counts drain passes.
	Passes uint64
	// Overflows counts passes that started with a full queue.
	Overflows uint64
	// Bytes counts bytes handed to the backend.
	Bytes uint64
	// WriteErrors counts failed backend writes.
	WriteErrors uint64
}

// Stats returns a snapshot of the counters.
func (l *Logger) Stats() Snapshot {
	if l == nil {
		return Snapshot{}
	}
	return Snapshot{
		Enqueued:    l.stats.enqueued.Load(),
		Dropped:     l.stats.dropped.Load(),
		Passes:      l.stats.passes.Load(),
		Overflows:   l.stats.overflows.Load(),
		Bytes:       l.stats.bytes.Load(),
		WriteErrors: l.stats.writeErrors.Load(),
	}
}
