package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newGeminiTestServer fakes the generateContent endpoint, capturing the
// request and answering with the given status and body.
func newGeminiTestServer(t *testing.T, status int, body string, captured *geminiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key query param = %q, want test-key", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func geminiEnvelope(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiClient_GenerateText(t *testing.T) {
	var req geminiRequest
	srv := newGeminiTestServer(t, http.StatusOK, geminiEnvelope("hello ideas"), &req)
	defer srv.Close()

	c := NewGeminiClient("test-key", "gemini-1.5-flash-latest", srv.Client())
	c.BaseURL = srv.URL

	got, err := c.GenerateText(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "hello ideas" {
		t.Fatalf("text = %q", got)
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 || req.Contents[0].Parts[0].Text != "the prompt" {
		t.Fatalf("request envelope wrong: %+v", req)
	}
}

func TestGeminiClient_NonSuccessStatus(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusTooManyRequests, `{"error":"quota"}`, nil)
	defer srv.Close()

	c := NewGeminiClient("test-key", "gemini-1.5-flash-latest", srv.Client())
	c.BaseURL = srv.URL

	_, err := c.GenerateText(context.Background(), "p")
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %T: %v", err, err)
	}
	if re.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("StatusCode = %d", re.StatusCode)
	}
}

func TestGeminiClient_BadEnvelope(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      "<html>busy</html>",
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := newGeminiTestServer(t, http.StatusOK, body, nil)
			defer srv.Close()

			c := NewGeminiClient("test-key", "m", srv.Client())
			c.BaseURL = srv.URL

			_, err := c.GenerateText(context.Background(), "p")
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("want *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestGeminiClient_TransportError(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusOK, "", nil)
	srv.Close() // refuse connections

	c := NewGeminiClient("test-key", "m", &http.Client{})
	c.BaseURL = srv.URL

	_, err := c.GenerateText(context.Background(), "p")
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %T: %v", err, err)
	}
	if re.StatusCode != 0 {
		t.Fatalf("transport error should carry no status, got %d", re.StatusCode)
	}
}
