package widgets

import (
	"strings"

	"github.com/hemantsolanki/portfolio/internal/dom"
	"github.com/hemantsolanki/portfolio/internal/motion"
)

// FilterConfig wires the contact method filter.
type FilterConfig struct {
	Buttons     string  `json:"buttons" yaml:"buttons"`
	Items       string  `json:"items" yaml:"items"`
	ButtonAttr  string  `json:"buttonAttr" yaml:"button_attr"`
	ItemAttr    string  `json:"itemAttr" yaml:"item_attr"`
	All         string  `json:"all" yaml:"all"`
	ActiveClass string  `json:"activeClass" yaml:"active_class"`
	Display     string  `json:"display" yaml:"display"`
	ShowSeconds float64 `json:"showSeconds" yaml:"show_seconds"`
	HideSeconds float64 `json:"hideSeconds" yaml:"hide_seconds"`
	ShowEase    string  `json:"showEase" yaml:"show_ease"`
}

// DefaultFilterConfig filters .contact-card by data-category.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Buttons:     ".method-btn",
		Items:       ".contact-card",
		ButtonAttr:  "method",
		ItemAttr:    "category",
		All:         "all",
		ActiveClass: "active",
		Display:     "flex",
		ShowSeconds: 0.4,
		HideSeconds: 0.3,
		ShowEase:    "back.out(1.7)",
	}
}

var (
	hiddenCard  = motion.Props{"opacity": 0, "scale": 0.9, "y": 20}
	visibleCard = motion.Props{"opacity": 1, "scale": 1, "y": 0}
)

// Filter keeps one active category and shows only the items in it.
type Filter struct {
	doc    *dom.Document
	tweens *motion.Tweener
	cfg    FilterConfig
	active string
	subs   dom.Subscriptions
}

// NewFilter wires the filter buttons. The active category starts as "all".
func NewFilter(doc *dom.Document, tweens *motion.Tweener, cfg FilterConfig) *Filter {
	f := &Filter{doc: doc, tweens: tweens, cfg: cfg, active: cfg.All}
	for _, btn := range doc.QuerySelectorAll(cfg.Buttons) {
		btn := btn
		f.subs = append(f.subs, btn.On("click", func(*dom.Event) {
			f.Select(btn.Data(cfg.ButtonAttr))
		}))
	}
	return f
}

// Active returns the selected category.
func (f *Filter) Active() string { return f.active }

// Matches reports whether an item with the given category list is shown
// under the active filter.
func (f *Filter) Matches(category string) bool {
	return f.active == f.cfg.All || strings.Contains(category, f.active)
}

// Select activates category: its button alone is marked active, matching
// items animate in and the rest animate out and leave the layout.
func (f *Filter) Select(category string) {
	f.active = category
	for _, btn := range f.doc.QuerySelectorAll(f.cfg.Buttons) {
		if btn.Data(f.cfg.ButtonAttr) == category {
			btn.AddClass(f.cfg.ActiveClass)
		} else {
			btn.RemoveClass(f.cfg.ActiveClass)
		}
	}

	for _, item := range f.doc.QuerySelectorAll(f.cfg.Items) {
		item := item
		f.tweens.KillOf(item)
		if f.Matches(item.Data(f.cfg.ItemAttr)) {
			item.SetStyle("display", f.cfg.Display)
			f.tweens.FromTo(item, hiddenCard, visibleCard, motion.Vars{
				Duration: seconds(f.cfg.ShowSeconds),
				Ease:     f.cfg.ShowEase,
			})
			continue
		}
		f.tweens.To(item, hiddenCard, motion.Vars{
			Duration:   seconds(f.cfg.HideSeconds),
			OnComplete: func() { item.SetStyle("display", "none") },
		})
	}
}

// Close unwires the buttons.
func (f *Filter) Close() { f.subs.Cancel() }
