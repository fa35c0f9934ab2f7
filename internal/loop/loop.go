package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Do when the loop is not running.
var ErrStopped = errors.New("loop: stopped")

const eventBacklog = 64

// FrameFunc is invoked once per tick. n counts frames from zero.
type FrameFunc func(n int)

type Loop struct {
	interval time.Duration
	frames   []FrameFunc
	events   chan func()

	mu      sync.Mutex
	running bool
	done    chan struct{}
	handle  *Handle
}

// New creates a loop ticking fps times per second.
func New(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		events:   make(chan func(), eventBacklog),
	}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration { return l.interval }

// OnFrame registers fn. It must be called before Start.
func (l *Loop) OnFrame(fn FrameFunc) { l.frames = append(l.frames, fn) }

// Post queues fn to run on the loop goroutine between frames. It reports
// false when the queue is full and the event was dropped.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	default:
		return false
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	l.mu.Lock()
	done := l.done
	running := l.running
	l.mu.Unlock()
	if !running {
		return ErrStopped
	}

	finished := make(chan struct{})
	select {
	case l.events <- func() { fn(); close(finished) }:
	case <-done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle stops a running loop.
type Handle struct {
	cancel context.CancelFunc
	done   <-chan struct{}
	once   sync.Once
}

// Stop cancels the loop and waits for its goroutine to exit. It is safe to
// call more than once.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the loop goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Start launches the loop goroutine. Starting a running loop returns the
// handle of the run in progress.
func (l *Loop) Start(ctx context.Context) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return l.handle
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.running = true
	l.done = done

	go func() {
		defer func() {
			l.mu.Lock()
			l.running = false
			l.mu.Unlock()
			close(done)
		}()
		l.run(ctx)
	}()

	l.handle = &Handle{cancel: cancel, done: done}
	return l.handle
}

func (l *Loop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			fn()
		case <-ticker.C:
			for _, f := range l.frames {
				f(n)
			}
			n++
		}
	}
}
