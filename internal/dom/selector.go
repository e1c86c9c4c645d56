package dom

import (
	"fmt"
	"strings"
)

// Selector is a parsed selector group: compound selectors joined by the
// descendant combinator, with comma-separated alternatives.
type Selector struct {
	alternatives [][]compound
}

type attrMatch struct {
	name  string
	value string
	exact bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// ParseSelector parses selectors such as ".hero-content h1 span",
// "#contact", "div.card[data-category=email]" or ".a, .b".
func ParseSelector(s string) (*Selector, error) {
	sel := &Selector{}
	for _, alt := range strings.Split(s, ",") {
		parts := strings.Fields(alt)
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty selector in %q", s)
		}
		chain := make([]compound, 0, len(parts))
		for _, p := range parts {
			c, err := parseCompound(p)
			if err != nil {
				return nil, err
			}
			chain = append(chain, c)
		}
		sel.alternatives = append(sel.alternatives, chain)
	}
	return sel, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && !strings.ContainsRune(".#[", rune(s[i])) {
			i++
		}
		return s[start:i]
	}
	if i < len(s) && s[i] != '.' && s[i] != '#' && s[i] != '[' {
		c.tag = strings.ToLower(readIdent())
		if c.tag == "*" {
			c.tag = ""
		}
	}
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			name := readIdent()
			if name == "" {
				return c, fmt.Errorf("empty class in %q", s)
			}
			c.classes = append(c.classes, name)
		case '#':
			i++
			name := readIdent()
			if name == "" {
				return c, fmt.Errorf("empty id in %q", s)
			}
			c.id = name
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute in %q", s)
			}
			body := s[i+1 : i+end]
			i += end + 1
			am := attrMatch{name: body}
			if k, v, ok := strings.Cut(body, "="); ok {
				am = attrMatch{name: k, value: strings.Trim(v, `"'`), exact: true}
			}
			if am.name == "" {
				return c, fmt.Errorf("empty attribute in %q", s)
			}
			c.attrs = append(c.attrs, am)
		default:
			return c, fmt.Errorf("unexpected %q in %q", s[i], s)
		}
	}
	return c, nil
}

func (c compound) match(e *Element) bool {
	if e.Tag == textTag {
		return false
	}
	if c.tag != "" && c.tag != e.Tag {
		return false
	}
	if c.id != "" && c.id != e.ID {
		return false
	}
	for _, cl := range c.classes {
		if !e.HasClass(cl) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := e.Attrs[a.name]
		if !ok || (a.exact && v != a.value) {
			return false
		}
	}
	return true
}

// Match reports whether e matches any alternative of the selector.
func (s *Selector) Match(e *Element) bool {
	for _, chain := range s.alternatives {
		if matchChain(chain, e) {
			return true
		}
	}
	return false
}

func matchChain(chain []compound, e *Element) bool {
	last := len(chain) - 1
	if !chain[last].match(e) {
		return false
	}
	i := last - 1
	for n := e.parent; n != nil && i >= 0; n = n.parent {
		if chain[i].match(n) {
			i--
		}
	}
	return i < 0
}
