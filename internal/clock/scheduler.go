// Package clock provides a virtual, single-threaded scheduler that stands in
// for browser timers and animation frames. Nothing runs until the owner
// advances time, so tests can step a page deterministically.
package clock

import (
	"container/heap"
	"time"
)

// DefaultFrameInterval is one frame at 60fps.
const DefaultFrameInterval = time.Second / 60

// Handle identifies a scheduled timer or frame callback.
type Handle struct {
	s        *Scheduler
	id       uint64
	done     bool
	canceled bool
}

// Cancel stops the callback if it has not run yet. It reports whether the
// call prevented a pending callback from running.
func (h *Handle) Cancel() bool {
	if h == nil || h.done || h.canceled {
		return false
	}
	h.canceled = true
	h.s.pending--
	return true
}

// Active reports whether the callback is still waiting to run.
func (h *Handle) Active() bool {
	return h != nil && !h.done && !h.canceled
}

type timer struct {
	due    time.Duration
	seq    uint64
	fn     func()
	handle *Handle
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

type frameRequest struct {
	fn     func(now time.Duration)
	handle *Handle
}

// Scheduler runs timers and frame callbacks against virtual time.
// It is not safe for concurrent use; the page it drives is single-threaded.
type Scheduler struct {
	now           time.Duration
	frameInterval time.Duration
	nextFrame     time.Duration
	frames        uint64
	seq           uint64
	pending       int

	timers    timerQueue
	frameReqs []frameRequest
}

// New creates a scheduler at time zero with a 60fps frame clock.
func New() *Scheduler {
	return NewWithFrameInterval(DefaultFrameInterval)
}

// NewWithFrameInterval creates a scheduler with a custom frame interval.
func NewWithFrameInterval(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Scheduler{frameInterval: interval, nextFrame: interval}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// FrameInterval returns the duration of one animation frame.
func (s *Scheduler) FrameInterval() time.Duration { return s.frameInterval }

// Frames returns the number of frames rendered so far.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Pending returns the number of timers and frame callbacks still waiting.
func (s *Scheduler) Pending() int { return s.pending }

func (s *Scheduler) newHandle() *Handle {
	s.seq++
	s.pending++
	return &Handle{s: s, id: s.seq}
}

// AfterFunc schedules fn to run once d has elapsed. A non-positive d runs fn
// on the next Advance, after timers already due.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Handle {
	if d < 0 {
		d = 0
	}
	h := s.newHandle()
	heap.Push(&s.timers, &timer{due: s.now + d, seq: h.id, fn: fn, handle: h})
	return h
}

// RequestFrame schedules fn for the next animation frame.
func (s *Scheduler) RequestFrame(fn func(now time.Duration)) *Handle {
	h := s.newHandle()
	s.frameReqs = append(s.frameReqs, frameRequest{fn: fn, handle: h})
	return h
}

// Advance moves virtual time forward by d, running every timer and frame
// that falls inside the window in chronological order. Timers due at the
// same instant as a frame run first.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		nextTimer, hasTimer := s.peekTimer()
		if hasTimer && nextTimer <= target && nextTimer <= s.nextFrame {
			s.now = nextTimer
			s.runTimer()
			continue
		}
		if s.nextFrame <= target {
			s.now = s.nextFrame
			s.runFrame()
			continue
		}
		break
	}
	s.now = target
}

// RunFrames advances time by n frames.
func (s *Scheduler) RunFrames(n int) {
	for i := 0; i < n; i++ {
		s.Advance(s.nextFrame - s.now)
	}
}

// RunUntilIdle advances until nothing is pending or limit has elapsed.
// It returns true if the scheduler went idle.
func (s *Scheduler) RunUntilIdle(limit time.Duration) bool {
	deadline := s.now + limit
	for s.pending > 0 && s.now < deadline {
		step := s.frameInterval
		if s.now+step > deadline {
			step = deadline - s.now
		}
		s.Advance(step)
	}
	return s.pending == 0
}

func (s *Scheduler) peekTimer() (time.Duration, bool) {
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.handle.canceled {
			heap.Pop(&s.timers)
			continue
		}
		return t.due, true
	}
	return 0, false
}

func (s *Scheduler) runTimer() {
	t := heap.Pop(&s.timers).(*timer)
	t.handle.done = true
	s.pending--
	t.fn()
}

func (s *Scheduler) runFrame() {
	s.frames++
	s.nextFrame = s.now + s.frameInterval
	reqs := s.frameReqs
	s.frameReqs = nil
	for _, r := range reqs {
		if r.handle.canceled {
			continue
		}
		r.handle.done = true
		s.pending--
		r.fn(s.now)
	}
}
