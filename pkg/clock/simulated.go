package clock

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Simulated is a discrete-event clock. Sleep never blocks on wall time: it
// jumps virtual time forward, firing AfterFunc callbacks due on the way in
// timestamp order. Callbacks run on the sleeping goroutine.
type Simulated struct {
	mu     sync.Mutex
	now    time.Time
	frame  time.Duration
	timers timerHeap
	seq    uint64
}

var _ Clock = (*Simulated)(nil)

// NewSimulated returns a simulated clock starting at start. A zero frame
// interval selects DefaultFPS.
func NewSimulated(start time.Time, frame time.Duration) *Simulated {
	if frame <= 0 {
		frame = FrameInterval(DefaultFPS)
	}
	return &Simulated{now: start, frame: frame}
}

func (c *Simulated) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Simulated) FrameInterval() time.Duration { return c.frame }

// AfterFunc schedules fn to run once virtual time reaches Now()+d.
func (c *Simulated) AfterFunc(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	heap.Push(&c.timers, &simTimer{at: c.now.Add(d), seq: c.seq, fn: fn})
}

// Advance moves virtual time forward by d, firing due callbacks.
func (c *Simulated) Advance(d time.Duration) {
	_ = c.Sleep(context.Background(), d)
}

func (c *Simulated) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	forever := d == Forever
	if d < 0 && !forever {
		d = 0
	}
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		if len(c.timers) == 0 || (!forever && c.timers[0].at.After(target)) {
			if forever {
				c.mu.Unlock()
				return ErrStalled
			}
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return ctx.Err()
		}
		t := heap.Pop(&c.timers).(*simTimer)
		if t.at.After(c.now) {
			c.now = t.at
		}
		c.mu.Unlock()

		t.fn()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

type simTimer struct {
	at  time.Time
	seq uint64
	fn  func()
}

type timerHeap []*simTimer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(*simTimer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
