package motion

import (
	"math"
	"strconv"
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// DefaultCounterFrames is how many frames a counter takes to reach its
// target: the increment is target/60 per rendered frame.
const DefaultCounterFrames = 60

// Counter counts an element's text up from 0 to its target percentage, one
// fixed step per animation frame. The step does not depend on elapsed time,
// so a slower frame rate makes the count take longer.
type Counter struct {
	el      *dom.Element
	sched   *clock.Scheduler
	target  float64
	step    float64
	current float64
	done    bool
	handle  *clock.Handle
}

// NewCounter reads the target from the element's data-<attr> attribute. It
// returns false when the attribute is missing or not a number.
func NewCounter(sched *clock.Scheduler, el *dom.Element, attr string, frames int) (*Counter, bool) {
	target, ok := el.DataFloat(attr)
	if !ok {
		return nil, false
	}
	if frames <= 0 {
		frames = DefaultCounterFrames
	}
	return &Counter{el: el, sched: sched, target: target, step: target / float64(frames)}, true
}

// Target returns the value the counter stops at.
func (c *Counter) Target() float64 { return c.target }

// Current returns the accumulated value.
func (c *Counter) Current() float64 { return c.current }

// Done reports whether the counter reached its target.
func (c *Counter) Done() bool { return c.done }

// Start renders the first step synchronously and schedules the rest.
func (c *Counter) Start() {
	c.update(0)
}

// Stop cancels any pending frame; the text stays where it is.
func (c *Counter) Stop() {
	c.handle.Cancel()
}

func (c *Counter) update(time.Duration) {
	c.current += c.step
	if c.current < c.target {
		c.el.SetText(formatCount(math.Floor(c.current+0.5)) + "%")
		c.handle = c.sched.RequestFrame(c.update)
		return
	}
	c.current = c.target
	c.done = true
	c.el.SetText(formatCount(c.target) + "%")
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
