package widgets

import (
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
	"github.com/hemantsolanki/portfolio/internal/motion"
)

// AnchorConfig wires the floating contact button.
type AnchorConfig struct {
	TriggerID  string `json:"triggerId" yaml:"trigger_id"`
	TargetID   string `json:"targetId" yaml:"target_id"`
	DurationMS int    `json:"durationMs" yaml:"duration_ms"`
	Ease       string `json:"ease" yaml:"ease"`
}

// DefaultAnchorConfig scrolls from #contact-fab to #contact.
func DefaultAnchorConfig() AnchorConfig {
	return AnchorConfig{TriggerID: "contact-fab", TargetID: "contact", DurationMS: 600, Ease: "power2.inOut"}
}

// SmoothScroller animates the window's scroll position frame by frame,
// dispatching a scroll event on each step.
type SmoothScroller struct {
	win      *dom.Window
	sched    *clock.Scheduler
	duration time.Duration
	ease     motion.Ease
	handle   *clock.Handle
}

// NewSmoothScroller creates a scroller; an unknown ease falls back to linear.
func NewSmoothScroller(win *dom.Window, sched *clock.Scheduler, duration time.Duration, ease string) *SmoothScroller {
	e, err := motion.ParseEase(ease)
	if err != nil {
		e = motion.Linear
	}
	return &SmoothScroller{win: win, sched: sched, duration: duration, ease: e}
}

// Scrolling reports whether an animated scroll is in progress.
func (s *SmoothScroller) Scrolling() bool { return s.handle.Active() }

// ScrollIntoView scrolls until el's top meets the viewport top. A new call
// replaces a scroll in progress.
func (s *SmoothScroller) ScrollIntoView(el *dom.Element) {
	s.handle.Cancel()
	from, to := s.win.ScrollY, el.Top
	if s.duration <= 0 || from == to {
		s.win.ScrollTo(to)
		return
	}
	start := s.sched.Now()
	var step func(now time.Duration)
	step = func(now time.Duration) {
		p := float64(now-start) / float64(s.duration)
		if p >= 1 {
			s.win.ScrollTo(to)
			return
		}
		s.win.ScrollTo(from + (to-from)*s.ease(p))
		s.handle = s.sched.RequestFrame(step)
	}
	s.handle = s.sched.RequestFrame(step)
}

// WireAnchor makes the trigger element smooth-scroll to the target. It
// returns nil when the trigger is absent; a missing target makes clicks
// do nothing.
func WireAnchor(doc *dom.Document, scroller *SmoothScroller, cfg AnchorConfig) *dom.Subscription {
	trigger := doc.GetElementByID(cfg.TriggerID)
	if trigger == nil {
		return nil
	}
	return trigger.On("click", func(*dom.Event) {
		if target := doc.GetElementByID(cfg.TargetID); target != nil {
			scroller.ScrollIntoView(target)
		}
	})
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
