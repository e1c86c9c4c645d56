package widgets

import (
	"strings"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// TypingConfig describes the terminal banner.
type TypingConfig struct {
	TargetID     string   `json:"targetId" yaml:"target_id"`
	Lines        []string `json:"lines" yaml:"lines"`
	CharDelayMS  int      `json:"charDelayMs" yaml:"char_delay_ms"`
	LineDelayMS  int      `json:"lineDelayMs" yaml:"line_delay_ms"`
	StartDelayMS int      `json:"startDelayMs" yaml:"start_delay_ms"`
}

// DefaultTypingConfig types lines into #terminal-text at 25ms per character.
func DefaultTypingConfig(lines []string) TypingConfig {
	return TypingConfig{
		TargetID:     "terminal-text",
		Lines:        lines,
		CharDelayMS:  25,
		LineDelayMS:  120,
		StartDelayMS: 600,
	}
}

// Typer appends its lines to the target one character per tick. The text
// only ever grows; once all lines are out it stops for good.
type Typer struct {
	el    *dom.Element
	sched *clock.Scheduler
	cfg   TypingConfig
	lines [][]rune

	line, char int
	started    bool
	done       bool
	handle     *clock.Handle
	sub        *dom.Subscription
}

// NewTyper binds to the element with cfg.TargetID. A missing element makes
// every method a no-op.
func NewTyper(doc *dom.Document, sched *clock.Scheduler, cfg TypingConfig) *Typer {
	t := &Typer{el: doc.GetElementByID(cfg.TargetID), sched: sched, cfg: cfg}
	for _, l := range cfg.Lines {
		t.lines = append(t.lines, []rune(l))
	}
	return t
}

// Install starts typing StartDelayMS after the document's load signal.
func (t *Typer) Install(doc *dom.Document) {
	t.sub = doc.On("load", func(*dom.Event) {
		t.handle = t.sched.AfterFunc(ms(t.cfg.StartDelayMS), t.Start)
	})
}

// Start begins typing now. Later calls are ignored.
func (t *Typer) Start() {
	if t.started {
		return
	}
	t.started = true
	t.tick()
}

// Done reports whether every line has been typed.
func (t *Typer) Done() bool { return t.done }

// Text returns what has been typed so far.
func (t *Typer) Text() string {
	if t.el == nil {
		return ""
	}
	return t.el.TextContent()
}

// FullText is the text the banner ends with.
func (t *Typer) FullText() string {
	var b strings.Builder
	for _, l := range t.cfg.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Close stops a pending tick and the load listener.
func (t *Typer) Close() {
	t.sub.Cancel()
	t.handle.Cancel()
}

func (t *Typer) tick() {
	if t.el == nil {
		return
	}
	if t.line >= len(t.lines) {
		t.done = true
		return
	}
	line := t.lines[t.line]
	if t.char < len(line) {
		t.el.AppendText(string(line[t.char]))
		t.char++
		t.handle = t.sched.AfterFunc(ms(t.cfg.CharDelayMS), t.tick)
		return
	}
	t.el.AppendText("\n")
	t.char = 0
	t.line++
	t.handle = t.sched.AfterFunc(ms(t.cfg.LineDelayMS), t.tick)
}
