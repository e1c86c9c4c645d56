package motion

import (
	"math"
	"testing"
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

func TestParseEase(t *testing.T) {
	names := []string{"", "none", "power1.out", "power3.out", "power4.out", "power2.inOut", "power3.in", "back.out(1.7)", "back.out"}
	for _, n := range names {
		e, err := ParseEase(n)
		if err != nil {
			t.Errorf("ParseEase(%q): %v", n, err)
			continue
		}
		if got := e(0); math.Abs(got) > 1e-9 {
			t.Errorf("%q(0) = %v, want 0", n, got)
		}
		if got := e(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%q(1) = %v, want 1", n, got)
		}
	}

	for _, bad := range []string{"elastic.out", "power9.out", "back.in", "back.out(x)", "back.out(1.7"} {
		if _, err := ParseEase(bad); err == nil {
			t.Errorf("ParseEase(%q): expected error", bad)
		}
	}

	back := MustEase("back.out(1.7)")
	overshoot := false
	for p := 0.0; p <= 1; p += 0.05 {
		if back(p) > 1 {
			overshoot = true
		}
	}
	if !overshoot {
		t.Error("back.out should overshoot 1")
	}
}

func TestTweenFromTo(t *testing.T) {
	s := clock.New()
	tw := NewTweener(s)
	d := dom.NewDocument()
	el := d.CreateElement("div")

	done := false
	tween := tw.FromTo(el, Props{"opacity": 0, "y": 40}, Props{"opacity": 1, "y": 0}, Vars{
		Duration:   time.Second,
		Ease:       "none",
		OnComplete: func() { done = true },
	})
	if v, _ := el.StyleFloat("opacity"); v != 0 {
		t.Fatalf("from state not rendered immediately, opacity=%v", v)
	}

	s.Advance(500 * time.Millisecond)
	op, _ := el.StyleFloat("opacity")
	if op < 0.45 || op > 0.55 {
		t.Errorf("opacity at half time = %v, want ~0.5", op)
	}

	s.Advance(600 * time.Millisecond)
	if !done || !tween.Done() {
		t.Fatal("tween did not complete")
	}
	if op, _ := el.StyleFloat("opacity"); op != 1 {
		t.Errorf("final opacity = %v", op)
	}
	if y, _ := el.StyleFloat("y"); y != 0 {
		t.Errorf("final y = %v", y)
	}
	if el.Style["transform"] != "translate(0px, 0px) scale(1)" {
		t.Errorf("transform = %q", el.Style["transform"])
	}
	if tw.ActiveOf(el) != 0 {
		t.Error("finished tween still active")
	}
}

func TestTweenToReadsCurrentAtStart(t *testing.T) {
	s := clock.New()
	tw := NewTweener(s)
	el := dom.NewDocument().CreateElement("div")

	tw.To(el, Props{"width": 80}, Vars{Duration: time.Second, Delay: 100 * time.Millisecond, Ease: "power3.out"})
	if _, ok := el.StyleFloat("width"); ok {
		t.Fatal("To must not render before its delay")
	}
	s.Advance(2 * time.Second)
	if el.Style["width"] != "80%" {
		t.Errorf("width = %q, want 80%%", el.Style["width"])
	}
}

func TestKillOfSkipsOnComplete(t *testing.T) {
	s := clock.New()
	tw := NewTweener(s)
	el := dom.NewDocument().CreateElement("div")

	completed := false
	tw.To(el, Props{"opacity": 0}, Vars{Duration: 300 * time.Millisecond, OnComplete: func() { completed = true }})
	s.Advance(100 * time.Millisecond)
	tw.KillOf(el)
	s.Advance(time.Second)
	if completed {
		t.Error("killed tween called OnComplete")
	}
	if tw.ActiveOf(el) != 0 {
		t.Error("killed tween still tracked")
	}
}

func TestAutoAlpha(t *testing.T) {
	el := dom.NewDocument().CreateElement("div")
	Apply(el, Props{"autoAlpha": 0})
	if el.Style["visibility"] != "hidden" || el.Style["opacity"] != "0" {
		t.Errorf("autoAlpha 0 style = %v", el.Style)
	}
	Apply(el, Props{"autoAlpha": 0.5})
	if el.Style["visibility"] != "inherit" {
		t.Errorf("visibility = %q", el.Style["visibility"])
	}
}

// page builds a document with elements stacked at known offsets.
func page(t *testing.T) (*dom.Document, map[string]*dom.Element) {
	t.Helper()
	d := dom.NewDocument()
	els := map[string]*dom.Element{}
	add := func(key string, parent *dom.Element, tag string, top float64, attrs ...string) *dom.Element {
		el := d.El(tag, attrs)
		el.Top = top
		el.Height = 100
		parent.AppendChild(el)
		els[key] = el
		return el
	}
	hero := add("hero", d.Body, "section", 0, "class", "hero-content")
	h1 := add("h1", hero, "h1", 100)
	add("span1", h1, "span", 100)
	add("span2", h1, "span", 100)

	add("heading", d.Body, "h2", 1200, "class", "reveal")
	exp := add("experience", d.Body, "section", 2000, "class", "experience")
	add("exp1", exp, "div", 2100, "class", "exp-card")
	add("exp2", exp, "div", 2300, "class", "exp-card")
	add("exp3", exp, "div", 2500, "class", "exp-card")

	add("bar", d.Body, "div", 3000, "class", "skill-fill", "data-percent", "90")
	add("counter", d.Body, "span", 3000, "class", "counter", "data-count", "60")
	add("about", d.Body, "section", 3500, "class", "about")
	add("anim", d.Body, "div", 3600, "class", "about-animation")
	return d, els
}

func TestRevealOnLoadStaggerAndOneShot(t *testing.T) {
	d, els := page(t)
	s := clock.New()
	e := NewEngine(d, s)
	if err := e.Attach(DefaultConfig()); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	// Hero rule has no scroll trigger: it plays at attach.
	if e.PlayCount(els["span1"]) != 1 || e.PlayCount(els["span2"]) != 1 {
		t.Fatal("hero spans should play on attach")
	}

	// Section heading sits at 1200px; 85% of an 800px viewport is 680px.
	heading := els["heading"]
	if op, _ := heading.StyleFloat("opacity"); op != 0 {
		t.Fatalf("heading should start hidden, opacity=%v", op)
	}
	d.Window.ScrollTo(500) // top at 700 > 680
	if e.PlayCount(heading) != 0 {
		t.Fatal("heading fired below its trigger line")
	}
	d.Window.ScrollTo(520) // top at 680
	if e.PlayCount(heading) != 1 {
		t.Fatal("heading did not fire at its trigger line")
	}
	d.Window.ScrollTo(0)
	d.Window.ScrollTo(600)
	if e.PlayCount(heading) != 1 {
		t.Fatalf("heading replayed, count=%d", e.PlayCount(heading))
	}

	// Experience cards: group trigger at 75% of viewport, 0.2s stagger.
	d.Window.ScrollTo(2000 - 600)
	for _, k := range []string{"exp1", "exp2", "exp3"} {
		if e.PlayCount(els[k]) != 1 {
			t.Fatalf("%s did not play with its group", k)
		}
	}
	s.Advance(100 * time.Millisecond)
	if op, _ := els["exp1"].StyleFloat("opacity"); op == 0 {
		t.Error("first card should be animating after 100ms")
	}
	if op, _ := els["exp2"].StyleFloat("opacity"); op != 0 {
		t.Errorf("second card should wait for its stagger, opacity=%v", op)
	}
	s.Advance(2 * time.Second)
	for _, k := range []string{"exp1", "exp2", "exp3"} {
		if op, _ := els[k].StyleFloat("opacity"); op != 1 {
			t.Errorf("%s final opacity = %v", k, op)
		}
	}
}

func TestCounterReachesExactTarget(t *testing.T) {
	d, els := page(t)
	s := clock.New()
	e := NewEngine(d, s)
	if err := e.Attach(DefaultConfig()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	counter := els["counter"]
	if counter.TextContent() != "" {
		t.Fatal("counter started before its trigger")
	}

	d.Window.ScrollTo(3000)
	if got := counter.TextContent(); got != "1%" {
		t.Fatalf("first step = %q, want 1%%", got)
	}
	s.RunFrames(30)
	if got := counter.TextContent(); got != "31%" {
		t.Errorf("after 30 frames = %q, want 31%%", got)
	}
	s.RunFrames(100)
	if got := counter.TextContent(); got != "60%" {
		t.Fatalf("final = %q, want 60%%", got)
	}
	if len(e.Counters()) != 1 || !e.Counters()[0].Done() {
		t.Fatal("counter not done")
	}
	if e.Counters()[0].Current() > 60 {
		t.Error("counter overshot its target")
	}
}

func TestCounterNeverOvershoots(t *testing.T) {
	d := dom.NewDocument()
	s := clock.New()
	for _, target := range []string{"7", "33", "99.5", "0"} {
		el := d.El("span", []string{"data-count", target})
		c, ok := NewCounter(s, el, "count", 0)
		if !ok {
			t.Fatalf("NewCounter(%s) failed", target)
		}
		c.Start()
		for i := 0; i < 100 && !c.Done(); i++ {
			s.RunFrames(1)
			if c.Current() > c.Target() {
				t.Fatalf("target %s: current %v exceeded target", target, c.Current())
			}
		}
		if el.TextContent() != target+"%" {
			t.Errorf("target %s: text %q", target, el.TextContent())
		}
	}

	bad := d.El("span", []string{"data-count", "lots"})
	if _, ok := NewCounter(s, bad, "count", 0); ok {
		t.Error("expected non-numeric target to be rejected")
	}
}

func TestBarsAndClassTrigger(t *testing.T) {
	d, els := page(t)
	s := clock.New()
	e := NewEngine(d, s)
	if err := e.Attach(DefaultConfig()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	d.Window.ScrollTo(3000)
	s.Advance(2 * time.Second)
	if els["bar"].Style["width"] != "90%" {
		t.Errorf("bar width = %q", els["bar"].Style["width"])
	}
	if !els["anim"].HasClass("active") {
		t.Error("about animation not activated")
	}
}

func TestAlreadyVisibleFiresOnAttach(t *testing.T) {
	d, els := page(t)
	d.Window.ScrollTo(5000)
	e := NewEngine(d, clock.New())
	if err := e.Attach(DefaultConfig()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if e.PlayCount(els["heading"]) != 1 {
		t.Error("element already past its trigger should play immediately")
	}
	if e.Triggers().Pending() != 0 {
		t.Errorf("pending triggers = %d", e.Triggers().Pending())
	}
}

func TestUnmatched(t *testing.T) {
	d, _ := page(t)
	e := NewEngine(d, clock.New())
	missing := e.Unmatched(DefaultConfig())
	if len(missing) == 0 {
		t.Fatal("expected unmatched selectors for a partial page")
	}
	for _, m := range missing {
		if m == `rule experience: ".exp-card" matches nothing` {
			t.Errorf("present selector reported missing: %s", m)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []Rule{
		{Name: "no-targets"},
		{Name: "start", Targets: ".a", Start: 1.5},
		{Name: "prop", Targets: ".a", From: Props{"rotate": 1}},
		{Name: "ease", Targets: ".a", Ease: "wobble"},
		{Name: "timing", Targets: ".a", Duration: -1},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Errorf("rule %q: expected error", r.Name)
		}
	}
}
