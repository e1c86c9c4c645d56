// Package dom is a small headless document model: elements with classes,
// data attributes, inline style, text and a layout box, plus events and
// CSS-style selectors. It is the surface the page widgets operate on.
package dom

import (
	"strconv"
	"strings"
)

// Element is a node in the document tree.
type Element struct {
	EventTarget

	Tag   string
	ID    string
	Attrs map[string]string
	Style map[string]string

	// Top is the element's offset from the top of the document, Height its
	// box height, both in CSS pixels.
	Top    float64
	Height float64

	classes  []string
	text     string
	parent   *Element
	children []*Element
	doc      *Document
}

func newElement(tag string) *Element {
	return &Element{
		Tag:   strings.ToLower(tag),
		Attrs: make(map[string]string),
		Style: make(map[string]string),
	}
}

// Parent returns the parent element or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children.
func (e *Element) Children() []*Element { return e.children }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Classes returns a copy of the class list.
func (e *Element) Classes() []string { return append([]string(nil), e.classes...) }

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds name if absent.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass removes name if present.
func (e *Element) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i:i], e.classes[i+1:]...)
			return
		}
	}
}

// ToggleClass flips name and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// SetAttr sets an attribute. class and id are kept in sync with their fields.
func (e *Element) SetAttr(name, value string) {
	switch name {
	case "class":
		e.classes = strings.Fields(value)
		return
	case "id":
		e.ID = value
	}
	e.Attrs[name] = value
}

// Data returns the value of the data-<key> attribute.
func (e *Element) Data(key string) string {
	return e.Attrs["data-"+key]
}

// DataFloat parses data-<key> as a number.
func (e *Element) DataFloat(key string) (float64, bool) {
	raw := strings.TrimSpace(e.Data(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetStyle writes an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	if value == "" {
		delete(e.Style, prop)
		return
	}
	e.Style[prop] = value
}

// StyleFloat parses the leading number of a style value, so "60%" yields 60.
func (e *Element) StyleFloat(prop string) (float64, bool) {
	raw := strings.TrimSpace(e.Style[prop])
	end := 0
	for end < len(raw) && strings.ContainsRune("+-.0123456789eE", rune(raw[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Visible reports whether the element and its ancestors are laid out.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.Style["display"] == "none" {
			return false
		}
	}
	return true
}

// TextContent returns the concatenated text of the element and descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.text)
	for _, c := range e.children {
		c.writeText(b)
	}
}

// SetText replaces the element's content with text.
func (e *Element) SetText(text string) {
	e.detachChildren()
	e.text = text
}

// AppendText appends text to the element's own text node.
func (e *Element) AppendText(text string) {
	e.text += text
}

// AppendChild adds child as the last child, detaching it from any parent.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	child.setDocument(e.doc)
	e.children = append(e.children, child)
}

// RemoveChild detaches child. It reports whether child was found.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i:i], e.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (e *Element) detachChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *Element) setDocument(d *Document) {
	e.doc = d
	for _, c := range e.children {
		c.setDocument(d)
	}
}

// Click dispatches a click event to the element.
func (e *Element) Click() *Event {
	ev := &Event{Type: "click", Target: e}
	e.Dispatch(ev)
	return ev
}

// QuerySelector returns the first descendant matching selector, or nil.
func (e *Element) QuerySelector(selector string) *Element {
	all := e.QuerySelectorAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QuerySelectorAll returns descendants matching selector in document order.
// An invalid selector matches nothing.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	e.walk(func(n *Element) {
		if n != e && sel.Match(n) {
			out = append(out, n)
		}
	})
	return out
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	sel, err := ParseSelector(selector)
	if err != nil {
		return false
	}
	return sel.Match(e)
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}
