package motion

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// Props maps animatable property names to numeric values. Supported names:
// opacity, autoAlpha (opacity plus visibility), x and y (px), scale, and
// width (%).
type Props map[string]float64

var units = map[string]string{
	"opacity":   "",
	"autoAlpha": "",
	"x":         "px",
	"y":         "px",
	"scale":     "",
	"width":     "%",
}

var naturalValues = map[string]float64{
	"opacity":   1,
	"autoAlpha": 1,
	"scale":     1,
}

// Natural returns the resting state for each named property: fully opaque,
// unscaled, untranslated.
func Natural(names Props) Props {
	out := make(Props, len(names))
	for k := range names {
		out[k] = naturalValues[k]
	}
	return out
}

// ReadProp returns the element's current value for a property, falling back
// to its natural value when no inline style is set.
func ReadProp(el *dom.Element, name string) float64 {
	key := name
	if name == "autoAlpha" {
		key = "opacity"
	}
	if v, ok := el.StyleFloat(key); ok {
		return v
	}
	return naturalValues[name]
}

// Apply writes props to the element's inline style.
func Apply(el *dom.Element, props Props) {
	for _, name := range sortedKeys(props) {
		v := props[name]
		switch name {
		case "autoAlpha":
			el.SetStyle("opacity", formatFloat(v))
			if v == 0 {
				el.SetStyle("visibility", "hidden")
			} else {
				el.SetStyle("visibility", "inherit")
			}
		default:
			el.SetStyle(name, formatFloat(v)+units[name])
		}
	}
	if _, ok := props["x"]; ok {
		writeTransform(el)
	} else if _, ok := props["y"]; ok {
		writeTransform(el)
	} else if _, ok := props["scale"]; ok {
		writeTransform(el)
	}
}

func writeTransform(el *dom.Element) {
	x, _ := el.StyleFloat("x")
	y, _ := el.StyleFloat("y")
	scale := ReadProp(el, "scale")
	el.SetStyle("transform", "translate("+formatFloat(x)+"px, "+formatFloat(y)+"px) scale("+formatFloat(scale)+")")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Vars configures a tween.
type Vars struct {
	Duration   time.Duration
	Delay      time.Duration
	Ease       string
	OnComplete func()
}

// Tween animates one element's properties.
type Tween struct {
	tw       *Tweener
	el       *dom.Element
	from, to Props
	duration time.Duration
	ease     Ease
	onDone   func()

	started  bool
	start    time.Duration
	progress float64
	done     bool
	killed   bool
	handle   *clock.Handle
}

// Element returns the animated element.
func (t *Tween) Element() *dom.Element { return t.el }

// Progress returns linear progress in [0,1].
func (t *Tween) Progress() float64 { return t.progress }

// Done reports whether the tween ran to completion.
func (t *Tween) Done() bool { return t.done }

// Active reports whether the tween is waiting or running.
func (t *Tween) Active() bool { return !t.done && !t.killed }

// Kill stops the tween where it is. OnComplete is not called.
func (t *Tween) Kill() {
	if !t.Active() {
		return
	}
	t.killed = true
	t.handle.Cancel()
	t.tw.forget(t)
}

// Tweener owns the running tweens of a page.
type Tweener struct {
	sched  *clock.Scheduler
	active map[*dom.Element][]*Tween
}

// NewTweener creates a tweener driven by sched.
func NewTweener(sched *clock.Scheduler) *Tweener {
	return &Tweener{sched: sched, active: make(map[*dom.Element][]*Tween)}
}

// Scheduler returns the clock driving the tweens.
func (tw *Tweener) Scheduler() *clock.Scheduler { return tw.sched }

// From renders the element at from immediately and animates to its current
// values.
func (tw *Tweener) From(el *dom.Element, from Props, v Vars) *Tween {
	to := make(Props, len(from))
	for k := range from {
		to[k] = ReadProp(el, k)
	}
	return tw.FromTo(el, from, to, v)
}

// To animates from the element's values at start time to the given values.
func (tw *Tweener) To(el *dom.Element, to Props, v Vars) *Tween {
	return tw.add(el, nil, to, v)
}

// FromTo renders from immediately and animates to to.
func (tw *Tweener) FromTo(el *dom.Element, from, to Props, v Vars) *Tween {
	Apply(el, from)
	return tw.add(el, from, to, v)
}

// KillOf kills every active tween of el.
func (tw *Tweener) KillOf(el *dom.Element) {
	for _, t := range append([]*Tween(nil), tw.active[el]...) {
		t.Kill()
	}
}

// ActiveOf returns the number of active tweens on el.
func (tw *Tweener) ActiveOf(el *dom.Element) int { return len(tw.active[el]) }

func (tw *Tweener) add(el *dom.Element, from, to Props, v Vars) *Tween {
	ease, err := ParseEase(v.Ease)
	if err != nil {
		ease = MustEase("power1.out")
	}
	t := &Tween{tw: tw, el: el, from: from, to: to, duration: v.Duration, ease: ease, onDone: v.OnComplete}
	tw.active[el] = append(tw.active[el], t)
	t.handle = tw.sched.AfterFunc(v.Delay, t.begin)
	return t
}

func (tw *Tweener) forget(t *Tween) {
	list := tw.active[t.el]
	for i, x := range list {
		if x == t {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(tw.active, t.el)
		return
	}
	tw.active[t.el] = list
}

func (t *Tween) begin() {
	t.started = true
	t.start = t.tw.sched.Now()
	if t.from == nil {
		t.from = make(Props, len(t.to))
		for k := range t.to {
			t.from[k] = ReadProp(t.el, k)
		}
	}
	t.render(0)
	if t.duration <= 0 {
		t.finish()
		return
	}
	t.handle = t.tw.sched.RequestFrame(t.tick)
}

func (t *Tween) tick(now time.Duration) {
	p := float64(now-t.start) / float64(t.duration)
	if p >= 1 {
		t.finish()
		return
	}
	t.render(p)
	t.handle = t.tw.sched.RequestFrame(t.tick)
}

func (t *Tween) finish() {
	t.render(1)
	t.done = true
	t.tw.forget(t)
	if t.onDone != nil {
		t.onDone()
	}
}

func (t *Tween) render(p float64) {
	t.progress = p
	e := t.ease(p)
	if p >= 1 {
		e = 1
	}
	cur := make(Props, len(t.to))
	for k, to := range t.to {
		from := t.from[k]
		cur[k] = from + (to-from)*e
	}
	Apply(t.el, cur)
}

// describe is used in error messages and the motion dump.
func describe(p Props) string {
	parts := make([]string, 0, len(p))
	for _, k := range sortedKeys(p) {
		parts = append(parts, k+"="+formatFloat(p[k]))
	}
	return strings.Join(parts, " ")
}
