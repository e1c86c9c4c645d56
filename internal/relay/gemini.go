// Package relay forwards the AI demo's text to Gemini and hands back the
// first candidate's text. The API key never leaves the server.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the Gemini models endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator produces text for a single-turn prompt. An empty result with a
// nil error means the upstream answered without any text.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Gemini calls generateContent over plain HTTP.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a client. Empty model and baseURL take the defaults; a
// nil client is replaced by one without a timeout.
func NewGemini(apiKey, model, baseURL string, client *http.Client) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Model returns the model name requests go to.
func (g *Gemini) Model() string { return g.model }

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate sends text as one user turn and returns the text of the first
// part of the first candidate.
func (g *Gemini) Generate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: text}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Kept out of the URL, which transport errors quote.
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini API error (%s): %s", out.Error.Status, out.Error.Message)
	}
	// Upstream failures are 500s here; only a 2xx without text gets the fallback.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
