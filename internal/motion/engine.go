package motion

import (
	"fmt"
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// Engine attaches a Config to a document: it owns the tweens, the scroll
// triggers and the counters they start.
type Engine struct {
	doc      *dom.Document
	sched    *clock.Scheduler
	tweens   *Tweener
	triggers *ScrollTriggers

	plays    map[*dom.Element]int
	counters []*Counter
}

// NewEngine creates an engine for doc driven by sched.
func NewEngine(doc *dom.Document, sched *clock.Scheduler) *Engine {
	return &Engine{
		doc:      doc,
		sched:    sched,
		tweens:   NewTweener(sched),
		triggers: NewScrollTriggers(doc.Window),
		plays:    make(map[*dom.Element]int),
	}
}

// Tweener returns the engine's tweener, shared with interaction widgets.
func (e *Engine) Tweener() *Tweener { return e.tweens }

// Triggers returns the scroll trigger set.
func (e *Engine) Triggers() *ScrollTriggers { return e.triggers }

// PlayCount returns how many times a reveal started on el.
func (e *Engine) PlayCount(el *dom.Element) int { return e.plays[el] }

// Counters returns the counters started so far.
func (e *Engine) Counters() []*Counter { return e.counters }

// Close detaches the engine from scroll events and kills running tweens.
func (e *Engine) Close() {
	e.triggers.Close()
	for el := range e.tweens.active {
		e.tweens.KillOf(el)
	}
	for _, c := range e.counters {
		c.Stop()
	}
}

// Attach wires every rule of cfg. Selectors that match nothing are skipped.
func (e *Engine) Attach(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, r := range cfg.Reveals {
		e.AttachRule(r)
	}
	e.AttachBars(cfg.Bars)
	e.AttachCounters(cfg.Counters)
	for _, cr := range cfg.Classes {
		e.AttachClass(cr)
	}
	return nil
}

// AttachRule renders the rule's targets in their From state and schedules
// the reveal. It returns the number of targets.
func (e *Engine) AttachRule(r Rule) int {
	targets := e.doc.QuerySelectorAll(r.Targets)
	if len(targets) == 0 {
		return 0
	}
	natural := make([]Props, len(targets))
	for i, el := range targets {
		natural[i] = make(Props, len(r.From))
		for k := range r.From {
			natural[i][k] = ReadProp(el, k)
		}
		Apply(el, r.From)
	}

	play := func(idx ...int) {
		for n, i := range idx {
			el := targets[i]
			e.plays[el]++
			e.tweens.FromTo(el, r.From, natural[i], Vars{
				Duration: seconds(r.Duration),
				Delay:    seconds(r.Delay) + time.Duration(n)*seconds(r.Stagger),
				Ease:     r.Ease,
			})
		}
	}
	all := make([]int, len(targets))
	for i := range targets {
		all[i] = i
	}

	switch {
	case r.Start <= 0:
		play(all...)
	case r.Each:
		for i, el := range targets {
			i := i
			e.triggers.Add(&Trigger{Element: el, Start: r.Start, OnEnter: func() { play(i) }})
		}
	default:
		trigger := targets[0]
		if r.Trigger != "" {
			trigger = e.doc.QuerySelector(r.Trigger)
		}
		if trigger == nil {
			// A missing trigger must not leave the group hidden.
			play(all...)
			break
		}
		e.triggers.Add(&Trigger{Element: trigger, Start: r.Start, OnEnter: func() { play(all...) }})
	}
	return len(targets)
}

// AttachBars schedules width tweens for skill bars.
func (e *Engine) AttachBars(b BarRule) int {
	if b.Targets == "" {
		return 0
	}
	n := 0
	for _, el := range e.doc.QuerySelectorAll(b.Targets) {
		percent, ok := el.DataFloat(b.Attr)
		if !ok {
			continue
		}
		el := el
		n++
		e.triggers.Add(&Trigger{Element: el, Start: b.Start, OnEnter: func() {
			e.plays[el]++
			e.tweens.To(el, Props{"width": percent}, Vars{Duration: seconds(b.Duration), Ease: b.Ease})
		}})
	}
	return n
}

// AttachCounters starts a Counter on each target when it scrolls in.
func (e *Engine) AttachCounters(c CounterRule) int {
	if c.Targets == "" {
		return 0
	}
	n := 0
	for _, el := range e.doc.QuerySelectorAll(c.Targets) {
		el := el
		if _, ok := el.DataFloat(c.Attr); !ok {
			continue
		}
		n++
		e.triggers.Add(&Trigger{Element: el, Start: c.Start, OnEnter: func() {
			counter, ok := NewCounter(e.sched, el, c.Attr, c.Frames)
			if !ok {
				return
			}
			e.plays[el]++
			e.counters = append(e.counters, counter)
			counter.Start()
		}})
	}
	return n
}

// AttachClass adds a class to the target once the trigger scrolls in.
func (e *Engine) AttachClass(cr ClassRule) bool {
	trigger := e.doc.QuerySelector(cr.Trigger)
	if trigger == nil {
		return false
	}
	e.triggers.Add(&Trigger{Element: trigger, Start: cr.Start, OnEnter: func() {
		if target := e.doc.QuerySelector(cr.Target); target != nil {
			target.AddClass(cr.Class)
		}
	}})
	return true
}

// Unmatched lists the selectors of cfg that match no element in the document.
func (e *Engine) Unmatched(cfg Config) []string {
	var out []string
	check := func(what, sel string) {
		if sel != "" && e.doc.QuerySelector(sel) == nil {
			out = append(out, fmt.Sprintf("%s: %q matches nothing", what, sel))
		}
	}
	for _, r := range cfg.Reveals {
		check("rule "+r.Name, r.Targets)
		check("rule "+r.Name+" trigger", r.Trigger)
	}
	check("bars", cfg.Bars.Targets)
	check("counters", cfg.Counters.Targets)
	for _, cr := range cfg.Classes {
		check("class "+cr.Class+" trigger", cr.Trigger)
		check("class "+cr.Class+" target", cr.Target)
	}
	return out
}
