package loop

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer a Debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Debouncer calls fn once Trigger has not been called for delay. fn runs
// with the debouncer locked and must not call back into it.
type Debouncer struct {
	delay time.Duration
	fn    func()
	after AfterFunc

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return NewDebouncerWith(delay, fn, realAfterFunc)
}

// NewDebouncerWith uses after to schedule timers.
func NewDebouncerWith(delay time.Duration, fn func(), after AfterFunc) *Debouncer {
	return &Debouncer{delay: delay, fn: fn, after: after}
}

// Trigger restarts the quiet period. A timer that already fired but has not
// yet run fn is cancelled too: once Trigger returns, fn only runs after a
// full quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.timer == nil {
		return
	}
	d.timer = nil
	d.fn()
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
