package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunnerWait(t *testing.T) {
	errBoom := errors.New("boom")
	ctx, cancel := context.WithCancel(context.Background())
	var order []string
	r := NewRunnerWith(ctx).
		Finally(func() { order = append(order, "first") }).
		Finally(func() { order = append(order, "second") })
	r.Go(
		NamedRun("waits", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(context.Context) error { return errBoom }),
		RunFunc(func(context.Context) error { return nil }),
	)
	cancel()
	err := r.Wait()
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, "boom", err.Error())
	require.Equal(t, []string{"second", "first"}, order)
}

func TestRunnerWaitNoErrors(t *testing.T) {
	r := NewRunner().Go(RunFunc(func(context.Context) error { return nil }))
	require.NoError(t, r.Wait())
	require.NoError(t, NewRunner().Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	require.Empty(t, errs.Error())
	errA, errB := errors.New("a"), errors.New("b")
	errs.Add(nil, errA, nil, errB)
	err := errs.Aggregate()
	require.Error(t, err)
	require.Equal(t, "Multiple errors:\na\nb", err.Error())
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var closed int32
	stop := make(chan struct{})
	closer := closerFunc(func() error {
		if atomic.AddInt32(&closed, 1) == 1 {
			close(stop)
		}
		return nil
	})
	go cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-stop
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), atomic.LoadInt32(&closed))

	closed = 0
	err = RunWithContextCloser(context.Background(), closerFunc(func() error {
		atomic.AddInt32(&closed, 1)
		return nil
	}), func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&closed))
}

func TestLoop(t *testing.T) {
	var steps int32
	loop := NewLoop("test", time.Hour, func(context.Context) error {
		atomic.AddInt32(&steps, 1)
		return errors.New("logged only")
	})
	require.Equal(t, "test", loop.Name())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	loop.TriggerNext()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&steps) == 1
	}, time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestLoopInterval(t *testing.T) {
	var steps int32
	loop := &Loop{Interval: time.Millisecond, Step: func(context.Context) error {
		atomic.AddInt32(&steps, 1)
		return nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&steps) >= 3
	}, time.Second, time.Millisecond)
}
