package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultGeminiBaseURL is the generateContent endpoint of the hosted Gemini
// API. The model segment is appended from configuration.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient calls the Gemini generateContent REST API. The static API key
// travels as the "key" query parameter, which is how this API authenticates
// browser-originated requests too.
type GeminiClient struct {
	BaseURL string
	Model   string
	APIKey  string
	// HTTPClient defaults to http.DefaultClient; timeouts are expected to be
	// configured on the client by the caller.
	HTTPClient *http.Client
}

// NewGeminiClient constructs a client for the given model and key.
func NewGeminiClient(apiKey, model string, httpClient *http.Client) *GeminiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiClient{
		BaseURL:    DefaultGeminiBaseURL,
		Model:      model,
		APIKey:     apiKey,
		HTTPClient: httpClient,
	}
}

// geminiRequest is the minimal generateContent request envelope: a single
// user turn carrying one text part.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse picks the one field this application reads out of the
// response envelope: candidates[0].content.parts[0].text.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends prompt to the generateContent endpoint and returns the
// text of the first candidate. Non-2xx statuses and transport failures yield
// *RequestError; a 2xx response without a readable text part yields
// *ParseError.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.BaseURL, c.Model, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body content is not
		// surfaced to users.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", &RequestError{StatusCode: resp.StatusCode}
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", &ParseError{Reason: "invalid response envelope: " + err.Error()}
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", &ParseError{Reason: "response envelope contains no candidate text"}
	}
	return envelope.Candidates[0].Content.Parts[0].Text, nil
}
