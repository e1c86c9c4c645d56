package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const textTag = "#text"

// Document is the root of an element tree plus its window.
type Document struct {
	EventTarget

	Root   *Element
	Body   *Element
	Window *Window

	loaded bool
}

// NewDocument creates an empty <html><body> document with a 1280x800 window.
func NewDocument() *Document {
	d := &Document{Window: NewWindow(1280, 800)}
	d.Root = d.CreateElement("html")
	d.Body = d.CreateElement("body")
	d.Root.AppendChild(d.Body)
	return d
}

// CreateElement returns a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	e := newElement(tag)
	e.doc = d
	return e
}

// El is a builder shortcut: it creates an element, applies "class" and
// "id" and any other attributes from attrs (name, value pairs) and appends
// the given children.
func (d *Document) El(tag string, attrs []string, children ...*Element) *Element {
	e := d.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttr(attrs[i], attrs[i+1])
	}
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// GetElementByID returns the first element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.Root.walk(func(e *Element) {
		if found == nil && e.ID == id && e.Tag != textTag {
			found = e
		}
	})
	return found
}

// QuerySelector returns the first element matching selector.
func (d *Document) QuerySelector(selector string) *Element {
	if d.Root.Matches(selector) {
		return d.Root
	}
	return d.Root.QuerySelector(selector)
}

// QuerySelectorAll returns every element matching selector.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	out := d.Root.QuerySelectorAll(selector)
	if d.Root.Matches(selector) {
		out = append([]*Element{d.Root}, out...)
	}
	return out
}

// Loaded reports whether FireLoad has run.
func (d *Document) Loaded() bool { return d.loaded }

// FireLoad dispatches the "all resources loaded" signal once.
func (d *Document) FireLoad() {
	if d.loaded {
		return
	}
	d.loaded = true
	d.Dispatch(&Event{Type: "load"})
}

// FireDOMContentLoaded dispatches the parse-complete signal.
func (d *Document) FireDOMContentLoaded() {
	d.Dispatch(&Event{Type: "DOMContentLoaded"})
}

// Parse builds a document from HTML. Layout boxes are left at zero.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	d := &Document{Window: NewWindow(1280, 800)}
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Html {
			d.Root = d.convert(n)
		}
	}
	if d.Root == nil {
		return nil, fmt.Errorf("parsing html: no <html> element")
	}
	for _, c := range d.Root.children {
		if c.Tag == "body" {
			d.Body = c
		}
	}
	if d.Body == nil {
		d.Body = d.CreateElement("body")
		d.Root.AppendChild(d.Body)
	}
	return d, nil
}

func (d *Document) convert(n *html.Node) *Element {
	e := d.CreateElement(n.Data)
	for _, a := range n.Attr {
		e.SetAttr(a.Key, a.Val)
	}
	d.appendNodes(e, n)
	return e
}

func (d *Document) appendNodes(e *Element, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			e.AppendChild(d.convert(c))
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" && len(e.children) > 0 {
				continue
			}
			t := d.CreateElement(textTag)
			t.text = c.Data
			e.AppendChild(t)
		}
	}
}

// SetInnerHTML replaces the element's children with parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: e.Tag, DataAtom: atom.Lookup([]byte(e.Tag))}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}
	e.SetText("")
	d := e.doc
	if d == nil {
		d = &Document{}
	}
	holder := &html.Node{Type: html.ElementNode}
	for _, n := range nodes {
		holder.AppendChild(n)
	}
	d.appendNodes(e, holder)
	return nil
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	if e.text != "" {
		b.WriteString(html.EscapeString(e.text))
	}
	for _, c := range e.children {
		c.render(&b)
	}
	return b.String()
}

func (e *Element) render(b *strings.Builder) {
	if e.Tag == textTag {
		b.WriteString(html.EscapeString(e.text))
		return
	}
	b.WriteString("<" + e.Tag)
	if e.ID != "" {
		fmt.Fprintf(b, " id=%q", e.ID)
	}
	if len(e.classes) > 0 {
		fmt.Fprintf(b, " class=%q", strings.Join(e.classes, " "))
	}
	b.WriteString(">")
	b.WriteString(e.InnerHTML())
	b.WriteString("</" + e.Tag + ">")
}
