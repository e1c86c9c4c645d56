package clock

import (
	"testing"
	"time"
)

func TestAfterFuncOrder(t *testing.T) {
	s := New()
	var got []string
	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(20 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 20ms got %v, want [a b]", got)
	}
	s.Advance(10 * time.Millisecond)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 30ms got %v, want [a b c]", got)
	}
	if s.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", s.Pending())
	}
}

func TestNestedTimersRunInsideWindow(t *testing.T) {
	s := New()
	fired := 0
	var tick func()
	tick = func() {
		fired++
		if fired < 5 {
			s.AfterFunc(25*time.Millisecond, tick)
		}
	}
	s.AfterFunc(25*time.Millisecond, tick)

	s.Advance(100 * time.Millisecond)
	if fired != 4 {
		t.Fatalf("expected 4 ticks in 100ms, got %d", fired)
	}
	s.Advance(25 * time.Millisecond)
	if fired != 5 {
		t.Fatalf("expected 5 ticks, got %d", fired)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	h := s.AfterFunc(time.Second, func() { ran = true })
	if !h.Cancel() {
		t.Fatal("expected first Cancel to report true")
	}
	if h.Cancel() {
		t.Error("expected second Cancel to report false")
	}
	s.Advance(2 * time.Second)
	if ran {
		t.Error("canceled timer ran")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestRequestFrameRunsOncePerFrame(t *testing.T) {
	s := New()
	count := 0
	var loop func(time.Duration)
	loop = func(time.Duration) {
		count++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	s.RunFrames(10)
	if count != 10 {
		t.Fatalf("expected 10 frame callbacks, got %d", count)
	}
	if s.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", s.Frames())
	}
}

func TestCanceledFrameSkipped(t *testing.T) {
	s := New()
	ran := false
	h := s.RequestFrame(func(time.Duration) { ran = true })
	h.Cancel()
	s.RunFrames(1)
	if ran {
		t.Error("canceled frame callback ran")
	}
	if h.Active() {
		t.Error("canceled handle still active")
	}
}

func TestTimersBeforeFramesAtSameInstant(t *testing.T) {
	s := NewWithFrameInterval(10 * time.Millisecond)
	var got []string
	s.RequestFrame(func(time.Duration) { got = append(got, "frame") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "timer") })
	s.Advance(10 * time.Millisecond)
	if len(got) != 2 || got[0] != "timer" || got[1] != "frame" {
		t.Fatalf("got %v, want [timer frame]", got)
	}
}

func TestRunUntilIdle(t *testing.T) {
	s := New()
	s.AfterFunc(500*time.Millisecond, func() {})
	if !s.RunUntilIdle(time.Second) {
		t.Fatal("expected scheduler to go idle")
	}
	if s.Now() < 500*time.Millisecond {
		t.Errorf("Now() = %v, want >= 500ms", s.Now())
	}

	s.RequestFrame(func(time.Duration) {})
	var loop func(time.Duration)
	loop = func(time.Duration) { s.RequestFrame(loop) }
	s.RequestFrame(loop)
	if s.RunUntilIdle(100 * time.Millisecond) {
		t.Error("expected endless frame loop to never go idle")
	}
}
