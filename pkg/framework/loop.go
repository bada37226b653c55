package framework

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is used by a Loop with no Interval.
const DefaultInterval = 100 * time.Millisecond

// Loop calls Step every Interval, or earlier when triggered, until the
// context is done.
type Loop struct {
	Interval time.Duration
	Step     func(context.Context) error

	name     string
	wakeUpCh chan struct{}
}

// NewLoop creates a Loop.
func NewLoop(name string, interval time.Duration, step func(context.Context) error) *Loop {
	return &Loop{
		Interval: interval,
		Step:     step,
		name:     name,
		wakeUpCh: make(chan struct{}, 1),
	}
}

// Name implements Named.
func (l *Loop) Name() string {
	return l.name
}

// Run implements Runnable. Step errors are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.runStep(ctx)
		case <-l.wakeUpCh:
			l.runStep(ctx)
		}
	}
}

// TriggerNext schedules a Step immediately.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runStep(ctx context.Context) {
	if err := l.Step(ctx); err != nil {
		glog.Errorf("loop %s step error: %v", l.name, err)
	}
}
