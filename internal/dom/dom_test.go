package dom

import (
	"strings"
	"testing"
)

const samplePage = `<!doctype html>
<html><body>
<section class="hero-content"><h1><span>Hi</span><span>there</span></h1><p>intro</p></section>
<div class="contact-links">
  <a class="contact-card copy-email" data-email="me@example.com" data-category="email">Mail</a>
  <a class="contact-card" data-category="social">Social</a>
</div>
<pre id="terminal-text"></pre>
</body></html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestParseAndQuery(t *testing.T) {
	d := parseSample(t)

	spans := d.QuerySelectorAll(".hero-content h1 span")
	if len(spans) != 2 {
		t.Fatalf("expected 2 hero spans, got %d", len(spans))
	}
	if spans[0].TextContent() != "Hi" {
		t.Errorf("first span text = %q, want Hi", spans[0].TextContent())
	}

	cards := d.QuerySelectorAll(".contact-card")
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if got := cards[0].Data("email"); got != "me@example.com" {
		t.Errorf("data-email = %q", got)
	}
	if d.GetElementByID("terminal-text") == nil {
		t.Error("terminal-text not found")
	}
	if d.QuerySelector("#missing") != nil {
		t.Error("expected nil for missing id")
	}
}

func TestSelectorForms(t *testing.T) {
	d := parseSample(t)

	tests := []struct {
		selector string
		want     int
	}{
		{"a.contact-card.copy-email", 1},
		{"[data-category=social]", 1},
		{"[data-email]", 1},
		{".contact-links a", 2},
		{"section p, pre", 2},
		{"body span", 2},
		{".nope span", 0},
		{"*", 0},
	}
	for _, tt := range tests {
		got := len(d.Body.QuerySelectorAll(tt.selector))
		if tt.selector == "*" {
			if got == 0 {
				t.Errorf("%q matched nothing", tt.selector)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("%q matched %d, want %d", tt.selector, got, tt.want)
		}
	}

	if _, err := ParseSelector("div["); err == nil {
		t.Error("expected error for unterminated attribute")
	}
	if _, err := ParseSelector(" , "); err == nil {
		t.Error("expected error for empty selector")
	}
}

func TestClassHelpers(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("div")
	el.AddClass("a")
	el.AddClass("a")
	if len(el.Classes()) != 1 {
		t.Fatalf("duplicate class added: %v", el.Classes())
	}
	if !el.ToggleClass("b") || !el.HasClass("b") {
		t.Error("toggle should add b")
	}
	if el.ToggleClass("b") || el.HasClass("b") {
		t.Error("toggle should remove b")
	}
	el.RemoveClass("a")
	if el.HasClass("a") {
		t.Error("a not removed")
	}
}

func TestSubscriptionCancel(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("button")
	calls := 0
	sub := el.On("click", func(*Event) { calls++ })
	el.Click()
	sub.Cancel()
	sub.Cancel()
	el.Click()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if el.ListenerCount("click") != 0 {
		t.Errorf("listener not removed")
	}
}

func TestInnerHTML(t *testing.T) {
	d := NewDocument()
	out := d.CreateElement("div")
	d.Body.AppendChild(out)
	if err := out.SetInnerHTML("<pre>a &lt;b&gt;</pre>"); err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}
	if got := out.TextContent(); got != "a <b>" {
		t.Errorf("TextContent = %q", got)
	}
	if got := out.InnerHTML(); got != "<pre>a &lt;b&gt;</pre>" {
		t.Errorf("InnerHTML = %q", got)
	}
	if out.QuerySelector("pre") == nil {
		t.Error("pre child not created")
	}
}

func TestVisibleAndStyleFloat(t *testing.T) {
	d := NewDocument()
	parent := d.El("div", nil)
	child := d.El("span", nil)
	parent.AppendChild(child)
	d.Body.AppendChild(parent)

	parent.SetStyle("display", "none")
	if child.Visible() {
		t.Error("child of hidden parent reported visible")
	}
	parent.SetStyle("display", "")
	if !child.Visible() {
		t.Error("child should be visible")
	}

	child.SetStyle("width", "62.5%")
	if v, ok := child.StyleFloat("width"); !ok || v != 62.5 {
		t.Errorf("StyleFloat = %v, %v", v, ok)
	}
	if _, ok := child.StyleFloat("height"); ok {
		t.Error("expected missing style to report false")
	}
}
