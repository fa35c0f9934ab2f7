package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestLoopRunsFrames(t *testing.T) {
	g := NewWithT(t)
	l := New(200)
	g.Expect(l.Interval()).To(Equal(5 * time.Millisecond))

	var frames atomic.Int64
	l.OnFrame(func(n int) { frames.Store(int64(n + 1)) })

	h := l.Start(context.Background())
	g.Expect(h).NotTo(BeNil())
	g.Eventually(frames.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 3))

	h.Stop()
	h.Stop()
	g.Expect(h.Done()).To(BeClosed())
}

func TestLoopDefaultFPS(t *testing.T) {
	if got := New(0).Interval(); got != time.Second/60 {
		t.Errorf("expected 60fps interval, got %v", got)
	}
}

func TestLoopDoRunsOnLoop(t *testing.T) {
	g := NewWithT(t)
	l := New(1000)

	// Frames and events share one goroutine, so unsynchronized state is safe.
	counter := 0
	l.OnFrame(func(int) { counter++ })
	h := l.Start(context.Background())
	defer h.Stop()

	last := 0
	for i := 0; i < 20; i++ {
		var seen int
		g.Expect(l.Do(context.Background(), func() { seen = counter })).To(Succeed())
		g.Expect(seen).To(BeNumerically(">=", last))
		last = seen
	}
}

func TestLoopPost(t *testing.T) {
	g := NewWithT(t)
	l := New(60)
	h := l.Start(context.Background())
	defer h.Stop()

	ran := make(chan struct{})
	g.Expect(l.Post(func() { close(ran) })).To(BeTrue())
	g.Eventually(ran).WithTimeout(time.Second).Should(BeClosed())
}

func TestLoopPostBacklogFull(t *testing.T) {
	l := New(60)
	for i := 0; i < eventBacklog; i++ {
		if !l.Post(func() {}) {
			t.Fatalf("post %d dropped before the backlog filled", i)
		}
	}
	if l.Post(func() {}) {
		t.Error("expected post to be dropped on a full backlog")
	}
}

func TestLoopDoWhenStopped(t *testing.T) {
	l := New(60)
	if err := l.Do(context.Background(), func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}

	h := l.Start(context.Background())
	h.Stop()
	if err := l.Do(context.Background(), func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped after stop, got %v", err)
	}
}

func TestLoopDoContextCancelled(t *testing.T) {
	l := New(60)
	h := l.Start(context.Background())
	defer h.Stop()

	block := make(chan struct{})
	l.Post(func() { <-block })
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestLoopStartTwice(t *testing.T) {
	l := New(60)
	h := l.Start(context.Background())
	if again := l.Start(context.Background()); again != h {
		t.Fatal("second Start on a running loop should return the running handle")
	}
	l.Start(context.Background()).Stop()
	select {
	case <-h.Done():
	default:
		t.Error("stopping the returned handle left the loop running")
	}
}

func TestLoopParentContext(t *testing.T) {
	g := NewWithT(t)
	ctx, cancel := context.WithCancel(context.Background())
	h := New(60).Start(ctx)
	cancel()
	g.Eventually(h.Done()).WithTimeout(time.Second).Should(BeClosed())
}
