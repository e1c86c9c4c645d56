package widgets

import (
	"fmt"
	"math/rand"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/demo"
	"github.com/hemantsolanki/portfolio/internal/dom"
	"github.com/hemantsolanki/portfolio/internal/motion"
)

// Config is everything the page's behaviors are configured with. The
// server embeds it as JSON in the page and the browser script reads it.
type Config struct {
	LoadGate  LoadGateConfig  `json:"loadGate" yaml:"load_gate"`
	Motion    motion.Config   `json:"motion" yaml:"motion"`
	Typing    TypingConfig    `json:"typing" yaml:"typing"`
	Backdrop  BackdropConfig  `json:"backdrop" yaml:"backdrop"`
	Copy      CopyConfig      `json:"copy" yaml:"copy"`
	Filter    FilterConfig    `json:"filter" yaml:"filter"`
	Accordion AccordionConfig `json:"accordion" yaml:"accordion"`
	Anchor    AnchorConfig    `json:"anchor" yaml:"anchor"`
	Demo      demo.Config     `json:"demo" yaml:"demo"`
}

// DefaultConfig assembles the defaults with the given terminal lines.
func DefaultConfig(terminalLines []string) Config {
	return Config{
		LoadGate:  DefaultLoadGateConfig(),
		Motion:    motion.DefaultConfig(),
		Typing:    DefaultTypingConfig(terminalLines),
		Backdrop:  DefaultBackdropConfig(),
		Copy:      DefaultCopyConfig(),
		Filter:    DefaultFilterConfig(),
		Accordion: DefaultAccordionConfig(),
		Anchor:    DefaultAnchorConfig(),
		Demo:      demo.DefaultConfig(),
	}
}

// Platform supplies the capabilities a page may or may not have. Any field
// may be nil; the matching behavior is then skipped or degrades.
type Platform struct {
	Clipboard Clipboard
	Copier    Copier
	Renderer  Renderer
	Analyzer  demo.Analyzer
	Rand      *rand.Rand
}

// Page is a mounted document with all behaviors wired.
type Page struct {
	Doc      *dom.Document
	Sched    *clock.Scheduler
	Engine   *motion.Engine
	Gate     *LoadGate
	Typer    *Typer
	Backdrop *Backdrop
	Filter   *Filter
	Copy     []*CopyCard
	Scroller *SmoothScroller
	Demo     *demo.Widget

	subs dom.Subscriptions
}

// Mount wires cfg onto doc. The load gate is installed first and does not
// depend on anything after it, so the page is revealed even when a later
// step fails.
func Mount(doc *dom.Document, sched *clock.Scheduler, cfg Config, pf Platform) (*Page, error) {
	p := &Page{Doc: doc, Sched: sched}

	p.Gate = NewLoadGate(doc, sched, cfg.LoadGate)
	p.Gate.Install()

	p.Engine = motion.NewEngine(doc, sched)
	if err := p.Engine.Attach(cfg.Motion); err != nil {
		return p, fmt.Errorf("attaching motion: %w", err)
	}

	p.Typer = NewTyper(doc, sched, cfg.Typing)
	p.Typer.Install(doc)

	if b, ok := NewBackdrop(doc, sched, pf.Renderer, cfg.Backdrop, pf.Rand); ok {
		p.Backdrop = b
		b.Start()
	}

	var copySubs dom.Subscriptions
	p.Copy, copySubs = WireCopyCards(doc, sched, pf.Clipboard, pf.Copier, cfg.Copy)
	p.subs = append(p.subs, copySubs...)

	p.Filter = NewFilter(doc, p.Engine.Tweener(), cfg.Filter)
	p.subs = append(p.subs, WireAccordion(doc, cfg.Accordion)...)

	p.Scroller = NewSmoothScroller(doc.Window, sched, ms(cfg.Anchor.DurationMS), cfg.Anchor.Ease)
	if sub := WireAnchor(doc, p.Scroller, cfg.Anchor); sub != nil {
		p.subs = append(p.subs, sub)
	}

	if pf.Analyzer != nil {
		p.Demo = demo.Mount(doc, pf.Analyzer, cfg.Demo)
	}
	return p, nil
}

// Close tears down every listener and loop the page started.
func (p *Page) Close() {
	p.subs.Cancel()
	if p.Gate != nil {
		p.Gate.Close()
	}
	if p.Engine != nil {
		p.Engine.Close()
	}
	if p.Typer != nil {
		p.Typer.Close()
	}
	if p.Backdrop != nil {
		p.Backdrop.Stop()
	}
	if p.Filter != nil {
		p.Filter.Close()
	}
	if p.Demo != nil {
		p.Demo.Close()
	}
}
