// Package schedule provides cancelable interval and one-shot tasks.
//
// Gallery autoplay, the typewriter animation and the maintenance poller all
// run on a Scheduler so tests can drive them with a Manual clock.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cancel stops a scheduled task. It is safe to call more than once.
type Cancel func()

// Scheduler runs callbacks after a delay or at a fixed interval.
type Scheduler interface {
	// Every runs fn every d until the returned Cancel is called.
	Every(d time.Duration, fn func()) Cancel
	// After runs fn once after d unless canceled first.
	After(d time.Duration, fn func()) Cancel
}

// Dispatcher delivers a callback to the goroutine that owns the state it
// touches, e.g. a UI event loop.
type Dispatcher func(func())

// Option configures a Clock.
type Option func(*Clock)

// WithDispatcher routes every callback through d instead of running it on
// the timer goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Clock) {
		if d != nil {
			c.dispatch = d
		}
	}
}

// Clock is the wall-clock Scheduler.
type Clock struct {
	dispatch Dispatcher
}

// New creates a wall-clock scheduler.
func New(opts ...Option) *Clock {
	c := &Clock{dispatch: func(fn func()) { fn() }}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Every implements Scheduler.
func (c *Clock) Every(d time.Duration, fn func()) Cancel {
	t := newTask()
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.dispatch(t.guard(fn))
			case <-t.done:
				return
			}
		}
	}()
	return t.cancel
}

// After implements Scheduler.
func (c *Clock) After(d time.Duration, fn func()) Cancel {
	t := newTask()
	timer := time.AfterFunc(d, func() {
		c.dispatch(t.guard(fn))
	})
	return func() {
		timer.Stop()
		t.cancel()
	}
}

type task struct {
	done     chan struct{}
	once     sync.Once
	canceled atomic.Bool
}

func newTask() *task {
	return &task{done: make(chan struct{})}
}

func (t *task) cancel() {
	t.once.Do(func() {
		t.canceled.Store(true)
		close(t.done)
	})
}

// guard drops callbacks that were already in flight when the task was canceled.
func (t *task) guard(fn func()) func() {
	return func() {
		if t.canceled.Load() {
			return
		}
		fn()
	}
}
