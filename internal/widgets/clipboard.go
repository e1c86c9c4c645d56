package widgets

import (
	"errors"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// ErrCopyUnsupported is returned when no copy mechanism is available.
var ErrCopyUnsupported = errors.New("copy command unsupported")

// Clipboard is the platform clipboard write API.
type Clipboard interface {
	WriteText(text string) error
}

// Copier copies text by some other means than the clipboard API.
type Copier interface {
	Copy(text string) error
}

// TextareaCopier is the selectable-element fallback: it places an
// invisible textarea holding the text in the body, runs the copy command
// against the selection and removes the textarea again.
type TextareaCopier struct {
	Doc  *dom.Document
	Exec func(selected string) error
}

// Copy implements Copier.
func (c TextareaCopier) Copy(text string) error {
	if c.Exec == nil || c.Doc == nil {
		return ErrCopyUnsupported
	}
	ta := c.Doc.CreateElement("textarea")
	ta.SetAttr("value", text)
	ta.SetStyle("position", "fixed")
	ta.SetStyle("opacity", "0")
	c.Doc.Body.AppendChild(ta)
	defer c.Doc.Body.RemoveChild(ta)

	selected, _ := ta.Attr("value")
	return c.Exec(selected)
}

// CopyConfig wires the copy-to-clipboard contact cards.
type CopyConfig struct {
	Selector       string `json:"selector" yaml:"selector"`
	StatusSelector string `json:"statusSelector" yaml:"status_selector"`
	HintSelector   string `json:"hintSelector" yaml:"hint_selector"`
	ShowClass      string `json:"showClass" yaml:"show_class"`
	CopiedLabel    string `json:"copiedLabel" yaml:"copied_label"`
	CopiedColor    string `json:"copiedColor" yaml:"copied_color"`
	FailedLabel    string `json:"failedLabel" yaml:"failed_label"`
	RevertMS       int    `json:"revertMs" yaml:"revert_ms"`
}

// DefaultCopyConfig matches the contact section markup.
func DefaultCopyConfig() CopyConfig {
	return CopyConfig{
		Selector:       ".copy-email",
		StatusSelector: ".copy-status",
		HintSelector:   ".copy-hint",
		ShowClass:      "show",
		CopiedLabel:    "Copied ✓",
		CopiedColor:    "#00ffd5",
		FailedLabel:    "Copy failed",
		RevertMS:       2000,
	}
}

// CopyCard copies its data-email value when clicked.
type CopyCard struct {
	el       *dom.Element
	sched    *clock.Scheduler
	clip     Clipboard
	fallback Copier
	cfg      CopyConfig

	status   *dom.Element
	hint     *dom.Element
	hintText string
	revert   *clock.Handle
}

// WireCopyCards attaches a CopyCard to every matching element. Either copy
// mechanism may be nil.
func WireCopyCards(doc *dom.Document, sched *clock.Scheduler, clip Clipboard, fallback Copier, cfg CopyConfig) ([]*CopyCard, dom.Subscriptions) {
	var cards []*CopyCard
	var subs dom.Subscriptions
	for _, el := range doc.QuerySelectorAll(cfg.Selector) {
		c := &CopyCard{
			el:       el,
			sched:    sched,
			clip:     clip,
			fallback: fallback,
			cfg:      cfg,
			status:   el.QuerySelector(cfg.StatusSelector),
			hint:     el.QuerySelector(cfg.HintSelector),
		}
		if c.hint != nil {
			c.hintText = c.hint.TextContent()
		}
		cards = append(cards, c)
		subs = append(subs, el.On("click", c.onClick))
	}
	return cards, subs
}

func (c *CopyCard) onClick(ev *dom.Event) {
	ev.PreventDefault()
	email := c.el.Data("email")
	if email == "" {
		return
	}
	if c.clip != nil {
		if err := c.clip.WriteText(email); err == nil {
			c.showSuccess()
			return
		}
	}
	if c.fallback != nil {
		if err := c.fallback.Copy(email); err == nil {
			c.showSuccess()
			return
		}
	}
	if c.hint != nil {
		c.hint.SetText(c.cfg.FailedLabel)
	}
}

func (c *CopyCard) showSuccess() {
	if c.status != nil {
		c.status.AddClass(c.cfg.ShowClass)
	}
	if c.hint != nil {
		c.hint.SetText(c.cfg.CopiedLabel)
		c.hint.SetStyle("color", c.cfg.CopiedColor)
	}
	c.revert.Cancel()
	c.revert = c.sched.AfterFunc(ms(c.cfg.RevertMS), func() {
		if c.status != nil {
			c.status.RemoveClass(c.cfg.ShowClass)
		}
		if c.hint != nil {
			c.hint.SetText(c.hintText)
			c.hint.SetStyle("color", "")
		}
	})
}
