package dlog

import (
	"context"
	"runtime"
	"time"
	"unsafe"

	"github.com/golang/glog"
)

// Run is the drain loop. It idles for the poll interval, or until Wake, then
// drains the queue, until ctx is done. On exit it performs a last Flush.
func (l *Logger) Run(ctx context.Context) error {
	if l == nil || l.state.Load() < stateInitialized {
		return ErrNotInitialized
	}
	if !l.state.CompareAndSwap(stateInitialized, stateRunning) {
		return ErrRunning
	}
	glog.Info("drain loop started")
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.Flush()
			glog.Info("drain loop stopped")
			return ctx.Err()
		case <-ticker.C:
			l.Drain()
		case <-l.wakeCh:
			l.Drain()
		}
	}
}

// Name implements framework.Named.
func (l *Logger) Name() string {
	return "drain"
}

// Wake schedules a drain pass without waiting for the poll interval.
func (l *Logger) Wake() {
	if l == nil || !l.ready() {
		return
	}
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
}

// Drain synchronously performs one drain pass.
func (l *Logger) Drain() {
	l.flush(false)
}

// Flush synchronously performs one drain pass and then flushes the backend.
// Everything queued before Flush was called has reached the backend when it
// returns.
func (l *Logger) Flush() {
	l.flush(true)
}

func (l *Logger) flush(external bool) {
	if l == nil || !l.ready() {
		return
	}
	l.drainLock.Lock()
	defer l.drainLock.Unlock()

	l.pass()
	if external && l.flusher != nil {
		if err := l.flusher.Flush(); err != nil {
			l.stats.writeErrors.Add(1)
			glog.Warningf("backend flush failed: %v", err)
		}
	}
}

// pass pops until empty. The caller holds drainLock.
func (l *Logger) pass() {
	l.stats.passes.Add(1)
	p := passWriter{l: l, buf: l.scratch[:0]}
	if l.queue.IsFull() {
		l.stats.overflows.Add(1)
		p.writeString(l.overflowNotice)
	}
	// Every slot claimed before the pass started is drained, waiting for
	// producers that have not published yet.
	end := l.queue.head.Load()
	var n int
	for {
		item, ok := l.queue.Pop()
		if !ok {
			if int64(end-l.queue.tail.Load()) <= 0 {
				break
			}
			runtime.Gosched()
			continue
		}
		p.render(&item)
		n++
	}
	p.commit()
	if p.err != nil {
		glog.Warningf("backend write failed %d times in pass, last: %v", p.errs, p.err)
	}
	if n > 0 && glog.V(3) {
		glog.Infof("drained %d items", n)
	}
}

// passWriter stages rendered text in the scratch buffer and hands it to the
// backend when it fills up.
type passWriter struct {
	l    *Logger
	buf  []byte
	err  error
	errs int
}

func (p *passWriter) render(item *Item) {
	if item.Color != ColorNone {
		p.reserve(maxColorLen)
		p.buf = AppendColor(p.buf, item.Color)
	}
	l := p.l
	switch item.Kind {
	case KindString:
		p.writeString(item.Text)
	case KindBytes:
		p.write(item.Data)
	case KindChar:
		p.reserve(1)
		p.buf = append(p.buf, byte(item.Value))
	case KindNumber:
		p.reserve(MaxNumberLen)
		p.buf = AppendNumber(p.buf, item.Value, item.Width, item.Signed, item.Radix)
	case KindArray:
		p.renderArray(item)
	case KindMessageStart:
		p.reserve(1)
		p.buf = append(p.buf, l.msgStart)
		p.writeString(item.Text)
		p.reserve(1)
		p.buf = append(p.buf, l.labelSep)
	case KindMessageStop:
		p.reserve(1)
		p.buf = append(p.buf, l.labelSep)
		p.writeString(item.Text)
		p.reserve(1)
		p.buf = append(p.buf, l.msgStop)
	}
}

// renderArray renders one element at a time so that arrays longer than the
// scratch buffer are streamed.
func (p *passWriter) renderArray(item *Item) {
	if !item.Width.Valid() {
		return
	}
	w := int(item.Width)
	for off := 0; off+w <= len(item.Data); off += w {
		p.reserve(MaxNumberLen + 1)
		if off > 0 {
			p.buf = append(p.buf, item.Sep)
		}
		p.buf = AppendArray(p.buf, item.Data[off:off+w], item.Width, item.Signed, item.Radix, item.Sep)
	}
}

func (p *passWriter) reserve(n int) {
	if cap(p.buf)-len(p.buf) < n {
		p.commit()
	}
}

func (p *passWriter) writeString(s string) {
	if len(s) == 0 {
		return
	}
	p.write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// write copies small runs into the scratch buffer and passes large ones
// straight through.
func (p *passWriter) write(b []byte) {
	if len(b) <= cap(p.buf)-len(p.buf) {
		p.buf = append(p.buf, b...)
		return
	}
	p.commit()
	p.emit(b)
}

func (p *passWriter) commit() {
	if len(p.buf) > 0 {
		p.emit(p.buf)
		p.buf = p.buf[:0]
	}
}

func (p *passWriter) emit(b []byte) {
	n, err := p.l.backend.Write(b)
	p.l.stats.bytes.Add(uint64(n))
	if err != nil {
		p.l.stats.writeErrors.Add(1)
		p.err = err
		p.errs++
	}
}
