package widgets

import "github.com/hemantsolanki/portfolio/internal/dom"

// AccordionConfig names the header and panel selectors of an accordion.
type AccordionConfig struct {
	Headers       string `json:"headers" yaml:"headers"`
	Panels        string `json:"panels" yaml:"panels"`
	ActiveClass   string `json:"activeClass" yaml:"active_class"`
	InactiveClass string `json:"inactiveClass" yaml:"inactive_class"`
}

// DefaultAccordionConfig matches the skills cards.
func DefaultAccordionConfig() AccordionConfig {
	return AccordionConfig{Headers: ".skill-header", Panels: ".skill-card", ActiveClass: "active", InactiveClass: "inactive"}
}

// WireAccordion makes each header toggle its parent panel. Opening a panel
// closes the other panels of the same group (the panel's siblings).
func WireAccordion(doc *dom.Document, cfg AccordionConfig) dom.Subscriptions {
	var subs dom.Subscriptions
	for _, header := range doc.QuerySelectorAll(cfg.Headers) {
		header := header
		subs = append(subs, header.On("click", func(*dom.Event) {
			togglePanel(header.Parent(), cfg)
		}))
	}
	return subs
}

func togglePanel(panel *dom.Element, cfg AccordionConfig) {
	if panel == nil {
		return
	}
	if group := panel.Parent(); group != nil {
		for _, sib := range group.Children() {
			if sib == panel || !sib.Matches(cfg.Panels) {
				continue
			}
			sib.RemoveClass(cfg.ActiveClass)
			sib.AddClass(cfg.InactiveClass)
		}
	}
	panel.ToggleClass(cfg.ActiveClass)
	panel.RemoveClass(cfg.InactiveClass)
}
