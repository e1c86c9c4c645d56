// Package content holds the site copy: who the owner is, their experience,
// projects, skills and ways to reach them. The copy ships compiled in and
// can be overridden section by section from a YAML file.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// Site is everything the index page renders.
type Site struct {
	Owner          string          `yaml:"owner"`
	Role           string          `yaml:"role"`
	Tagline        string          `yaml:"tagline"`
	About          string          `yaml:"about"`
	Stats          []Stat          `yaml:"stats"`
	Experience     []Job           `yaml:"experience"`
	Projects       []Project       `yaml:"projects"`
	Skills         []SkillGroup    `yaml:"skills"`
	Certifications []Certification `yaml:"certifications"`
	Thinking       []string        `yaml:"thinking"`
	Contacts       []Contact       `yaml:"contacts"`
	TerminalLines  []string        `yaml:"terminal_lines"`
}

// Stat is an animated counter in the about section.
type Stat struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// Job is one experience card.
type Job struct {
	Title   string   `yaml:"title"`
	Company string   `yaml:"company"`
	Period  string   `yaml:"period"`
	Points  []string `yaml:"points"`
}

// Project is one project card. Description is markdown.
type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	URL         string   `yaml:"url"`
}

// SkillGroup is an accordion panel of skill bars.
type SkillGroup struct {
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

// Skill is a bar filled to Percent.
type Skill struct {
	Name    string `yaml:"name"`
	Percent int    `yaml:"percent"`
}

// Certification is a badge in the certifications grid.
type Certification struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Year   string `yaml:"year"`
}

// Contact is a card in the contact section. Category may list several
// space-separated filter categories. Cards with an Email copy it on click.
type Contact struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Category string `yaml:"category"`
	Email    string `yaml:"email"`
	URL      string `yaml:"url"`
}

// Load reads path and overlays it on base. Sections present in the file
// replace base's; absent ones are kept. An empty path returns base.
func Load(path string, base Site) (Site, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading content file: %w", err)
	}
	site := base
	if err := yaml.Unmarshal(data, &site); err != nil {
		return base, fmt.Errorf("parsing content file: %w", err)
	}
	if err := site.Validate(); err != nil {
		return base, err
	}
	return site, nil
}

// Validate checks what the page's widgets rely on.
func (s Site) Validate() error {
	if s.Owner == "" {
		return fmt.Errorf("content: owner is required")
	}
	for _, sg := range s.Skills {
		for _, sk := range sg.Skills {
			if sk.Percent < 0 || sk.Percent > 100 {
				return fmt.Errorf("content: skill %q percent %d out of range", sk.Name, sk.Percent)
			}
		}
	}
	for _, st := range s.Stats {
		if st.Value < 0 {
			return fmt.Errorf("content: stat %q is negative", st.Label)
		}
	}
	return nil
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Markdown renders s to HTML. Raw HTML in s is not passed through.
func Markdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// MustMarkdown is Markdown for compiled-in copy; it renders the error
// message instead of failing.
func MustMarkdown(s string) template.HTML {
	out, err := Markdown(s)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return out
}
