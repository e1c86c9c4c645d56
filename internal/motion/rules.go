package motion

import (
	"fmt"
	"time"
)

// Rule is a reveal rule: animate every element matching Targets from the
// From state to its natural state.
//
// Rules with Start <= 0 play as soon as they are attached. Otherwise the
// rule waits for a scroll trigger: one per target when Each is set, or a
// single trigger on the Trigger element (the first target when Trigger is
// empty) that plays the whole group with Stagger between successive
// targets in document order.
type Rule struct {
	Name     string  `json:"name" yaml:"name"`
	Targets  string  `json:"targets" yaml:"targets"`
	Trigger  string  `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Each     bool    `json:"each,omitempty" yaml:"each,omitempty"`
	Start    float64 `json:"start,omitempty" yaml:"start,omitempty"`
	From     Props   `json:"from" yaml:"from"`
	Duration float64 `json:"duration" yaml:"duration"`
	Delay    float64 `json:"delay,omitempty" yaml:"delay,omitempty"`
	Stagger  float64 `json:"stagger,omitempty" yaml:"stagger,omitempty"`
	Ease     string  `json:"ease" yaml:"ease"`
}

// BarRule tweens each target's width to its data-<Attr> percentage.
type BarRule struct {
	Targets  string  `json:"targets" yaml:"targets"`
	Attr     string  `json:"attr" yaml:"attr"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Ease     string  `json:"ease" yaml:"ease"`
}

// CounterRule starts a Counter on each target when it scrolls into view.
type CounterRule struct {
	Targets string  `json:"targets" yaml:"targets"`
	Attr    string  `json:"attr" yaml:"attr"`
	Start   float64 `json:"start" yaml:"start"`
	Frames  int     `json:"frames" yaml:"frames"`
}

// ClassRule adds Class to the Target element when Trigger scrolls into view.
type ClassRule struct {
	Trigger string  `json:"trigger" yaml:"trigger"`
	Start   float64 `json:"start" yaml:"start"`
	Target  string  `json:"target" yaml:"target"`
	Class   string  `json:"class" yaml:"class"`
}

// Config is the complete declarative motion setup of a page.
type Config struct {
	Reveals  []Rule      `json:"reveals" yaml:"reveals"`
	Bars     BarRule     `json:"bars" yaml:"bars"`
	Counters CounterRule `json:"counters" yaml:"counters"`
	Classes  []ClassRule `json:"classes" yaml:"classes"`
}

// Validate checks fractions, timings and ease names.
func (c Config) Validate() error {
	for _, r := range c.Reveals {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if _, err := ParseEase(c.Bars.Ease); err != nil {
		return fmt.Errorf("bars: %w", err)
	}
	if c.Counters.Frames < 0 {
		return fmt.Errorf("counters: negative frame count %d", c.Counters.Frames)
	}
	for _, cr := range c.Classes {
		if cr.Class == "" {
			return fmt.Errorf("class rule on %q: empty class", cr.Target)
		}
	}
	return nil
}

// Validate checks one rule.
func (r Rule) Validate() error {
	if r.Targets == "" {
		return fmt.Errorf("rule %q: no targets", r.Name)
	}
	if r.Start < 0 || r.Start > 1 {
		return fmt.Errorf("rule %q: start %v outside [0,1]", r.Name, r.Start)
	}
	if r.Duration < 0 || r.Delay < 0 || r.Stagger < 0 {
		return fmt.Errorf("rule %q: negative timing", r.Name)
	}
	for k := range r.From {
		if _, ok := units[k]; !ok {
			return fmt.Errorf("rule %q: unknown property %q", r.Name, k)
		}
	}
	if _, err := ParseEase(r.Ease); err != nil {
		return fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return nil
}

// String summarizes the rule for logs and the motion dump.
func (r Rule) String() string {
	when := "on load"
	if r.Start > 0 {
		when = fmt.Sprintf("at top %.0f%%", r.Start*100)
	}
	return fmt.Sprintf("%s: %s from {%s} %s, %.2fs %s", r.Name, r.Targets, describe(r.From), when, r.Duration, r.Ease)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// DefaultConfig is the portfolio page's motion setup.
func DefaultConfig() Config {
	return Config{
		Reveals: []Rule{
			{Name: "hero-title", Targets: ".hero-content h1 span", From: Props{"opacity": 0, "y": 40}, Duration: 1, Ease: "power4.out"},
			{Name: "hero-lead", Targets: ".hero-content p", From: Props{"opacity": 0, "y": 20}, Duration: 1, Delay: 0.4, Ease: "power4.out"},
			{Name: "hero-buttons", Targets: ".hero-buttons a", From: Props{"opacity": 0, "y": 20}, Duration: 0.6, Delay: 0.7, Stagger: 0.15, Ease: "power4.out"},
			{Name: "section-headings", Targets: ".reveal", Each: true, Start: 0.85, From: Props{"opacity": 0, "y": 60}, Duration: 1, Ease: "power3.out"},
			{Name: "experience", Targets: ".exp-card", Trigger: ".experience", Start: 0.75, From: Props{"opacity": 0, "y": 60}, Duration: 0.8, Stagger: 0.2, Ease: "power3.out"},
			{Name: "projects", Targets: ".project-card", Trigger: ".projects", Start: 0.75, From: Props{"opacity": 0, "y": 80}, Duration: 0.9, Stagger: 0.25, Ease: "power3.out"},
			{Name: "contact-cards", Targets: ".contact-card", Trigger: ".contact-links", Start: 0.8, From: Props{"opacity": 0, "y": 50, "scale": 0.9}, Duration: 0.6, Stagger: 0.1, Ease: "back.out(1.7)"},
			{Name: "ai-demo", Targets: ".ai-demo-box", Trigger: ".ai-demo", Start: 0.75, From: Props{"opacity": 0, "y": 80}, Duration: 1, Ease: "power3.out"},
			{Name: "certifications", Targets: ".cert-card", Trigger: ".certifications", Start: 0.75, From: Props{"autoAlpha": 0, "y": 40}, Duration: 0.6, Stagger: 0.15, Ease: "power3.out"},
			{Name: "thinking", Targets: ".think-step", Trigger: ".thinking-upgrade", Start: 0.75, From: Props{"opacity": 0, "y": 40}, Duration: 0.7, Stagger: 0.15, Ease: "power3.out"},
		},
		Bars:     BarRule{Targets: ".skill-fill", Attr: "percent", Start: 0.85, Duration: 1.5, Ease: "power3.out"},
		Counters: CounterRule{Targets: ".counter", Attr: "count", Start: 0.85, Frames: DefaultCounterFrames},
		Classes: []ClassRule{
			{Trigger: ".about", Start: 0.7, Target: ".about-animation", Class: "active"},
		},
	}
}
