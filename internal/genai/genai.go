// Package genai talks to external text-generation endpoints and owns the
// untrusted-response pipeline: prompt construction, extraction of the JSON
// structure the model was asked to embed in its answer, decoding, field
// validation and normalization. Everything the rest of the application knows
// about model output goes through this one boundary, so prompt or response
// format drift surfaces here and nowhere else.
//
// Two providers are shipped: a Gemini REST client (the generateContent API,
// with the credential passed as a request parameter) and an OpenAI
// chat-completions client. Both satisfy Generator and are selected by
// configuration.
package genai

import (
	"context"
	"fmt"
)

// Generator produces free-form text for a single prompt. Implementations
// must honor ctx for cancellation and return *RequestError for transport
// failures or non-success statuses, and *ParseError when the endpoint
// answered successfully but the response envelope was uninterpretable.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Idea is one generated business concept, before persistence (no ID, no
// owner, no timestamp).
type Idea struct {
	BusinessName string   `json:"businessName"`
	Description  string   `json:"description"`
	Niche        string   `json:"niche"`
	Hashtags     []string `json:"hashtags"`
}

// RequestError reports a transport failure or a non-success status from the
// generation endpoint. These are surfaced verbatim to the caller and are not
// retried automatically.
type RequestError struct {
	// StatusCode is the HTTP status of the failed call, or 0 for transport
	// errors that produced no response.
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation request failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports that a successful endpoint response could not be
// interpreted as the expected structure. It is user-equivalent to a request
// error but is logged separately: it indicates prompt/schema drift, not a
// network fault.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "could not parse generation response: " + e.Reason
}
