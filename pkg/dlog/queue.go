package dlog

import (
	"sync/atomic"
)

// Queue is a bounded FIFO of Items with any number of producers and a single
// consumer.
//
// Every slot carries a sequence number. A producer claims the slot at head by
// a compare-and-swap on the head cursor and publishes it by advancing the slot
// sequence; the consumer only takes a slot whose sequence says it has been
// published. The order in which producers win the compare-and-swap is the order
// the consumer sees.
type Queue struct {
	mask  uint64
	slots []slot

	_    [56]byte
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
	_    [56]byte
}

type slot struct {
	seq  atomic.Uint64
	item Item
}

// NewQueue creates a Queue. capacity must be a power of two.
func NewQueue(capacity int) (*Queue, error) {
	if !isPowerOfTwo(capacity) {
		return nil, &CapacityError{Capacity: capacity}
	}
	q := &Queue{
		mask:  uint64(capacity - 1),
		slots: make([]slot, capacity),
	}
	q.Reset()
	return q, nil
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// Push appends item. It never waits: false means the queue was full and
// nothing was changed.
func (q *Queue) Push(item Item) bool {
	pos := q.head.Load()
	for {
		s := &q.slots[pos&q.mask]
		seq := s.seq.Load()
		switch dif := int64(seq - pos); {
		case dif == 0:
			if q.head.CompareAndSwap(pos, pos+1) {
				s.item = item
				s.seq.Store(pos + 1)
				return true
			}
			pos = q.head.Load()
		case dif < 0:
			return false
		default:
			pos = q.head.Load()
		}
	}
}

// Pop removes the oldest published item. Only one goroutine may call Pop at a
// time.
func (q *Queue) Pop() (Item, bool) {
	pos := q.tail.Load()
	s := &q.slots[pos&q.mask]
	if int64(s.seq.Load()-(pos+1)) < 0 {
		return Item{}, false
	}
	item := s.item
	s.item = Item{}
	s.seq.Store(pos + q.mask + 1)
	q.tail.Store(pos + 1)
	return item, true
}

// Len returns the number of claimed slots, including ones a producer is still
// filling.
func (q *Queue) Len() int {
	tail := q.tail.Load()
	head := q.head.Load()
	if head < tail {
		return 0
	}
	return int(head - tail)
}

// Cap returns the capacity.
func (q *Queue) Cap() int {
	return len(q.slots)
}

// IsFull reports whether every slot is claimed.
func (q *Queue) IsFull() bool {
	return q.Len() >= len(q.slots)
}

// Reset discards all pending items. It must not run concurrently with Push or
// Pop.
func (q *Queue) Reset() {
	for n := range q.slots {
		q.slots[n].item = Item{}
		q.slots[n].seq.Store(uint64(n))
	}
	q.head.Store(0)
	q.tail.Store(0)
}
