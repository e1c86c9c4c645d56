// Package widgets holds the page's behaviors that sit on top of the motion
// engine: the load gate, the terminal typing banner, the particle backdrop
// and the click handlers of the contact and skills sections.
package widgets

import (
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// LoadGateConfig controls when the loading overlay goes away.
type LoadGateConfig struct {
	OverlayID   string `json:"overlayId" yaml:"overlay_id"`
	LoadedClass string `json:"loadedClass" yaml:"loaded_class"`
	FailsafeMS  int    `json:"failsafeMs" yaml:"failsafe_ms"`
	FadeMS      int    `json:"fadeMs" yaml:"fade_ms"`
}

// DefaultLoadGateConfig reveals on load or after 3s, fading for 600ms.
func DefaultLoadGateConfig() LoadGateConfig {
	return LoadGateConfig{OverlayID: "page-loader", LoadedClass: "loaded", FailsafeMS: 3000, FadeMS: 600}
}

// LoadGate makes the page visible when it has loaded, or after a fixed
// failsafe delay if the load signal never arrives.
type LoadGate struct {
	doc   *dom.Document
	sched *clock.Scheduler
	cfg   LoadGateConfig

	revealed   bool
	revealedAt time.Duration
	hiddenAt   time.Duration
	sub        *dom.Subscription
	failsafe   *clock.Handle
}

// NewLoadGate creates an uninstalled gate.
func NewLoadGate(doc *dom.Document, sched *clock.Scheduler, cfg LoadGateConfig) *LoadGate {
	return &LoadGate{doc: doc, sched: sched, cfg: cfg, hiddenAt: -1}
}

// Install listens for the document load signal and arms the failsafe.
func (g *LoadGate) Install() {
	g.sub = g.doc.On("load", func(*dom.Event) { g.Reveal() })
	g.failsafe = g.sched.AfterFunc(ms(g.cfg.FailsafeMS), g.Reveal)
}

// Reveal marks the document loaded and fades the overlay out. Only the
// first call has any effect.
func (g *LoadGate) Reveal() {
	if g.revealed {
		return
	}
	g.revealed = true
	g.revealedAt = g.sched.Now()
	g.failsafe.Cancel()

	g.doc.Body.AddClass(g.cfg.LoadedClass)
	overlay := g.doc.GetElementByID(g.cfg.OverlayID)
	if overlay == nil {
		return
	}
	overlay.SetStyle("opacity", "0")
	g.sched.AfterFunc(ms(g.cfg.FadeMS), func() {
		overlay.SetStyle("display", "none")
		g.hiddenAt = g.sched.Now()
	})
}

// Revealed reports whether the page has been revealed.
func (g *LoadGate) Revealed() bool { return g.revealed }

// RevealedAt returns when the reveal happened.
func (g *LoadGate) RevealedAt() time.Duration { return g.revealedAt }

// OverlayHiddenAt returns when the overlay left the layout, or -1.
func (g *LoadGate) OverlayHiddenAt() time.Duration { return g.hiddenAt }

// Close removes the load listener and disarms the failsafe.
func (g *LoadGate) Close() {
	g.sub.Cancel()
	g.failsafe.Cancel()
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
