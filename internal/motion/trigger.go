package motion

import (
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// Trigger fires OnEnter the first time its element's top edge reaches Start
// (a fraction of viewport height measured from the viewport top) while the
// page scrolls. Start 0.85 corresponds to "top 85%".
type Trigger struct {
	Element *dom.Element
	Start   float64
	OnEnter func()

	fired bool
}

// Fired reports whether the trigger has played.
func (t *Trigger) Fired() bool { return t.fired }

// Crossed reports whether the element's top is at or above the start line.
func (t *Trigger) Crossed(w *dom.Window) bool {
	return w.ViewportTop(t.Element) <= t.Start*w.InnerHeight
}

// ScrollTriggers watches the window and fires triggers once each.
type ScrollTriggers struct {
	win      *dom.Window
	triggers []*Trigger
	sub      *dom.Subscription
}

// NewScrollTriggers subscribes to the window's scroll events.
func NewScrollTriggers(win *dom.Window) *ScrollTriggers {
	st := &ScrollTriggers{win: win}
	st.sub = win.On("scroll", func(*dom.Event) { st.Refresh() })
	return st
}

// Add registers t and fires it right away if its element is already past
// the start line.
func (st *ScrollTriggers) Add(t *Trigger) *Trigger {
	st.triggers = append(st.triggers, t)
	st.check(t)
	return t
}

// Refresh re-evaluates every pending trigger against the current scroll.
func (st *ScrollTriggers) Refresh() {
	for _, t := range st.triggers {
		st.check(t)
	}
}

// Pending returns the number of triggers that have not fired.
func (st *ScrollTriggers) Pending() int {
	n := 0
	for _, t := range st.triggers {
		if !t.fired {
			n++
		}
	}
	return n
}

// Close stops listening for scroll events.
func (st *ScrollTriggers) Close() { st.sub.Cancel() }

func (st *ScrollTriggers) check(t *Trigger) {
	if t.fired || !t.Crossed(st.win) {
		return
	}
	t.fired = true
	if t.OnEnter != nil {
		t.OnEnter()
	}
}
