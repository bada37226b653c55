package dlog

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewQueueCapacity(t *testing.T) {
	testCases := []struct {
		capacity int
		valid    bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, false},
		{100, false},
		{128, true},
		{256, true},
		{-4, false},
	}
	for _, tc := range testCases {
		q, err := NewQueue(tc.capacity)
		if tc.valid {
			require.NoError(t, err, "capacity %d", tc.capacity)
			require.Equal(t, tc.capacity, q.Cap())
		} else {
			require.ErrorIs(t, err, ErrCapacity, "capacity %d", tc.capacity)
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	q, err := NewQueue(8)
	require.NoError(t, err)
	// several laps so that every slot is reused
	for lap := 0; lap < 5; lap++ {
		var pushed []Item
		for n := 0; n < 5; n++ {
			item := NumberItem(uint32(lap*10+n), Width32, false, RadixDecimal, ColorNone)
			require.True(t, q.Push(item))
			pushed = append(pushed, item)
		}
		require.Equal(t, 5, q.Len())
		for _, expect := range pushed {
			item, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, expect, item)
		}
		_, ok := q.Pop()
		require.False(t, ok)
		require.Zero(t, q.Len())
	}
}

func TestQueueFull(t *testing.T) {
	q, err := NewQueue(4)
	require.NoError(t, err)
	for n := 0; n < 4; n++ {
		require.False(t, q.IsFull())
		require.True(t, q.Push(CharItem(byte('a'+n), ColorNone)))
	}
	require.True(t, q.IsFull())
	require.False(t, q.Push(CharItem('x', ColorNone)))
	require.False(t, q.Push(CharItem('y', ColorNone)))
	require.Equal(t, 4, q.Len())
	require.True(t, q.IsFull())

	for n := 0; n < 4; n++ {
		item, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, uint32('a'+n), item.Value)
	}
	_, ok := q.Pop()
	require.False(t, ok)

	require.True(t, q.Push(CharItem('z', ColorNone)))
	item, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, uint32('z'), item.Value)
}

func TestQueueReset(t *testing.T) {
	q, err := NewQueue(4)
	require.NoError(t, err)
	q.Push(StringItem("a", ColorNone))
	q.Push(StringItem("b", ColorNone))
	q.Pop()
	q.Push(StringItem("c", ColorNone))
	q.Reset()
	require.Zero(t, q.Len())
	_, ok := q.Pop()
	require.False(t, ok)
	for n := 0; n < 4; n++ {
		require.True(t, q.Push(StringItem("d", ColorNone)))
	}
	require.True(t, q.IsFull())
}

func TestQueuePopReleasesReferences(t *testing.T) {
	q, err := NewQueue(2)
	require.NoError(t, err)
	q.Push(BytesItem([]byte("data"), ColorNone))
	_, ok := q.Pop()
	require.True(t, ok)
	require.Nil(t, q.slots[0].item.Data)
}

func TestQueueConcurrentProducers(t *testing.T) {
	const (
		producers = 8
		perProd   = 2000
	)
	q, err := NewQueue(64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for n := 0; n < perProd; n++ {
				item := NumberItem(uint32(p<<16|n), Width32, false, RadixHex, ColorNone)
				for !q.Push(item) {
					runtime.Gosched()
				}
			}
		}(p)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	next := make([]int, producers)
	received := 0
	for received < producers*perProd {
		item, ok := q.Pop()
		if !ok {
			select {
			case <-done:
				if q.Len() == 0 {
					t.Fatalf("producers finished with %d items missing", producers*perProd-received)
				}
			default:
			}
			runtime.Gosched()
			continue
		}
		p, n := int(item.Value>>16), int(item.Value&0xffff)
		require.Equal(t, next[p], n, "producer %d out of order", p)
		next[p]++
		received++
	}
	for p := range next {
		require.Equal(t, perProd, next[p])
	}
}
