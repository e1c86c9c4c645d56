// Package demo is the client half of the AI demo: it validates the visitor's
// text, posts it to the relay and renders the answer into the page.
package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/hemantsolanki/portfolio/internal/dom"
)

// Messages shown in the output region.
const (
	EmptyInputHTML  = "<p>Please paste some text to analyze.</p>"
	LoadingHTML     = "<p>Analyzing with AI… ⏳</p>"
	UnavailableHTML = "<p>AI service unavailable.</p>"
)

// ErrNoOutput is returned when the relay answers without an output field.
var ErrNoOutput = errors.New("relay response has no output")

// Analyzer sends text for analysis and returns the answer.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// HTTPAnalyzer posts to the relay's /api/analyze endpoint.
type HTTPAnalyzer struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPAnalyzer creates an analyzer for endpoint using the default client,
// which applies no timeout of its own.
func NewHTTPAnalyzer(endpoint string) *HTTPAnalyzer {
	return &HTTPAnalyzer{Endpoint: endpoint, Client: http.DefaultClient}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Output *string `json:"output"`
}

// Analyze implements Analyzer.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading relay response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding relay response: %w", err)
	}
	if out.Output == nil {
		return "", ErrNoOutput
	}
	return *out.Output, nil
}

// Config names the demo's elements.
type Config struct {
	ButtonID string `json:"buttonId" yaml:"button_id"`
	InputID  string `json:"inputId" yaml:"input_id"`
	OutputID string `json:"outputId" yaml:"output_id"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// DefaultConfig posts to the same-origin relay.
func DefaultConfig() Config {
	return Config{ButtonID: "demo-btn", InputID: "demo-input", OutputID: "demo-output", Endpoint: "/api/analyze"}
}

// Widget is the demo box: one request per submit, no retries.
type Widget struct {
	doc      *dom.Document
	cfg      Config
	analyzer Analyzer
	sub      *dom.Subscription
	requests int
}

// Mount wires the submit button. It returns nil if the button is absent.
func Mount(doc *dom.Document, analyzer Analyzer, cfg Config) *Widget {
	btn := doc.GetElementByID(cfg.ButtonID)
	if btn == nil {
		return nil
	}
	w := &Widget{doc: doc, cfg: cfg, analyzer: analyzer}
	w.sub = btn.On("click", func(*dom.Event) { w.Submit(context.Background()) })
	return w
}

// Requests returns how many requests the widget has issued.
func (w *Widget) Requests() int { return w.requests }

// Submit reads the input and renders the outcome into the output region.
func (w *Widget) Submit(ctx context.Context) {
	output := w.doc.GetElementByID(w.cfg.OutputID)
	input := w.doc.GetElementByID(w.cfg.InputID)
	if output == nil || input == nil {
		return
	}
	text := strings.TrimSpace(inputValue(input))
	if text == "" {
		output.SetInnerHTML(EmptyInputHTML)
		return
	}

	output.SetInnerHTML(LoadingHTML)
	w.requests++
	answer, err := w.analyzer.Analyze(ctx, text)
	if err != nil {
		output.SetInnerHTML(UnavailableHTML)
		return
	}
	output.SetInnerHTML("<pre>" + html.EscapeString(answer) + "</pre>")
}

// Close unwires the button.
func (w *Widget) Close() { w.sub.Cancel() }

func inputValue(el *dom.Element) string {
	if v, ok := el.Attr("value"); ok {
		return v
	}
	return el.TextContent()
}
