package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/entitlement"
	"github.com/ideaspark/go-ideaspark-backend/internal/genai"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/services"
)

// ---------- stubs ----------

// Flexible idea service stub; nil funcs fall back to benign defaults.
type stubIdeaSvc struct {
	generate     func(ctx context.Context, userID, plan string, req services.GenerateRequest) ([]genai.Idea, error)
	codingPrompt func(ctx context.Context, userID, plan string, seed services.IdeaSeed) (string, error)
	subscription func(ctx context.Context, userID, plan string) (entitlement.Subscription, error)
}

func (s stubIdeaSvc) Generate(ctx context.Context, u, p string, req services.GenerateRequest) ([]genai.Idea, error) {
	if s.generate != nil {
		return s.generate(ctx, u, p, req)
	}
	return []genai.Idea{{BusinessName: "A", Description: "d", Niche: req.Niche}}, nil
}

func (s stubIdeaSvc) CodingPrompt(ctx context.Context, u, p string, seed services.IdeaSeed) (string, error) {
	if s.codingPrompt != nil {
		return s.codingPrompt(ctx, u, p, seed)
	}
	return "# Guide", nil
}

func (s stubIdeaSvc) Subscription(ctx context.Context, u, p string) (entitlement.Subscription, error) {
	if s.subscription != nil {
		return s.subscription(ctx, u, p)
	}
	return entitlement.Resolve(entitlement.ParsePlan(p), nil, "2025-03-14"), nil
}

type stubLibSvc struct {
	save     func(ctx context.Context, userID string, in repo.IdeaInput) (*domain.Idea, error)
	get      func(ctx context.Context, userID, ideaID string) (*domain.Idea, error)
	listPage func(ctx context.Context, userID string, page, pageSize int) ([]domain.Idea, int64, error)
	del      func(ctx context.Context, userID, ideaID string) error
	attach   func(ctx context.Context, userID, ideaID string, gen func(context.Context, services.IdeaSeed) (string, error)) (*domain.Idea, error)
}

func (s stubLibSvc) Save(ctx context.Context, u string, in repo.IdeaInput) (*domain.Idea, error) {
	if s.save != nil {
		return s.save(ctx, u, in)
	}
	return &domain.Idea{ID: "i1", UserID: u, BusinessName: in.BusinessName, Description: in.Description}, nil
}

func (s stubLibSvc) Get(ctx context.Context, u, id string) (*domain.Idea, error) {
	if s.get != nil {
		return s.get(ctx, u, id)
	}
	return nil, services.ErrIdeaNotFound
}

func (s stubLibSvc) ListPage(ctx context.Context, u string, p, ps int) ([]domain.Idea, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, u, p, ps)
	}
	return nil, 0, nil
}

func (s stubLibSvc) Delete(ctx context.Context, u, id string) error {
	if s.del != nil {
		return s.del(ctx, u, id)
	}
	return nil
}

func (s stubLibSvc) AttachCodingPrompt(ctx context.Context, u, id string, gen func(context.Context, services.IdeaSeed) (string, error)) (*domain.Idea, error) {
	if s.attach != nil {
		return s.attach(ctx, u, id, gen)
	}
	return nil, services.ErrIdeaNotFound
}

// ---------- helpers ----------

func newRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ideas/generate", h.GenerateIdeas)
	r.POST("/coding-prompt", h.CodingPrompt)
	r.GET("/me/subscription", h.Subscription)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return e
}

// ---------- GenerateIdeas ----------

func TestGenerateIdeas_Success_PassesIdentity(t *testing.T) {
	var gotUser, gotPlan string
	svc := stubIdeaSvc{
		generate: func(_ context.Context, u, p string, req services.GenerateRequest) ([]genai.Idea, error) {
			gotUser, gotPlan = u, p
			return []genai.Idea{
				{BusinessName: "LedgerLens", Description: "d", Niche: req.Niche, Hashtags: req.Hashtags},
			}, nil
		},
	}
	r := newRouter(New(svc, stubLibSvc{}))

	w := doJSON(t, r, http.MethodPost, "/ideas/generate",
		GenerateIdeasRequest{Niche: "Finance", Hashtags: []string{"AI"}, Count: 1},
		map[string]string{"X-User-ID": "u7", "X-User-Plan": "pro"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotUser != "u7" || gotPlan != "pro" {
		t.Fatalf("identity not forwarded: user=%q plan=%q", gotUser, gotPlan)
	}
	var resp GenerateIdeasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || len(resp.Ideas) != 1 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGenerateIdeas_DefaultsToFreePlanAndDemoUser(t *testing.T) {
	var gotUser, gotPlan string
	svc := stubIdeaSvc{
		generate: func(_ context.Context, u, p string, _ services.GenerateRequest) ([]genai.Idea, error) {
			gotUser, gotPlan = u, p
			return nil, services.ErrQuotaExhausted
		},
	}
	r := newRouter(New(svc, stubLibSvc{}))

	w := doJSON(t, r, http.MethodPost, "/ideas/generate",
		GenerateIdeasRequest{Niche: "IT", Count: 1}, nil)

	if gotUser != "demo-user" || gotPlan != "free" {
		t.Fatalf("defaults not applied: user=%q plan=%q", gotUser, gotPlan)
	}
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if e := decodeError(t, w); e.Code != ErrCodeQuotaExceeded {
		t.Fatalf("expected quota_exceeded code, got %q", e.Code)
	}
}

func TestGenerateIdeas_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid niche", services.ErrInvalidNiche, http.StatusBadRequest, ErrCodeBadRequest},
		{"count above plan", services.ErrCountExceedsPlan, http.StatusBadRequest, ErrCodeBadRequest},
		{"quota spent", services.ErrQuotaExhausted, http.StatusTooManyRequests, ErrCodeQuotaExceeded},
		{"upstream request failed", &genai.RequestError{StatusCode: 503}, http.StatusBadGateway, ErrCodeGenerationFailed},
		{"unusable model output", &genai.ParseError{Reason: "no json"}, http.StatusBadGateway, ErrCodeGenerationFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := stubIdeaSvc{
				generate: func(context.Context, string, string, services.GenerateRequest) ([]genai.Idea, error) {
					return nil, tc.err
				},
			}
			r := newRouter(New(svc, stubLibSvc{}))
			w := doJSON(t, r, http.MethodPost, "/ideas/generate",
				GenerateIdeasRequest{Niche: "Finance", Count: 1}, nil)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			if e := decodeError(t, w); e.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, e.Code)
			}
		})
	}
}

func TestGenerateIdeas_BadBody(t *testing.T) {
	r := newRouter(New(stubIdeaSvc{}, stubLibSvc{}))

	// Missing required count.
	w := doJSON(t, r, http.MethodPost, "/ideas/generate", map[string]any{"niche": "IT"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// ---------- CodingPrompt (unsaved) ----------

func TestCodingPrompt_Success(t *testing.T) {
	var gotSeed services.IdeaSeed
	svc := stubIdeaSvc{
		codingPrompt: func(_ context.Context, _, _ string, seed services.IdeaSeed) (string, error) {
			gotSeed = seed
			return "# Development Guide", nil
		},
	}
	r := newRouter(New(svc, stubLibSvc{}))

	w := doJSON(t, r, http.MethodPost, "/coding-prompt",
		CodingPromptRequest{BusinessName: "LedgerLens", Description: "d"},
		map[string]string{"X-User-Plan": "pro"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotSeed.BusinessName != "LedgerLens" {
		t.Fatalf("seed not forwarded: %+v", gotSeed)
	}
	var resp CodingPromptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.CodingPrompt != "# Development Guide" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCodingPrompt_ForbiddenOnFreePlan(t *testing.T) {
	svc := stubIdeaSvc{
		codingPrompt: func(context.Context, string, string, services.IdeaSeed) (string, error) {
			return "", services.ErrCodingPromptForbidden
		},
	}
	r := newRouter(New(svc, stubLibSvc{}))

	w := doJSON(t, r, http.MethodPost, "/coding-prompt",
		CodingPromptRequest{BusinessName: "A", Description: "d"}, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if e := decodeError(t, w); e.Code != ErrCodeForbidden {
		t.Fatalf("expected forbidden code, got %q", e.Code)
	}
}

func TestCodingPrompt_MissingFields(t *testing.T) {
	r := newRouter(New(stubIdeaSvc{}, stubLibSvc{}))
	w := doJSON(t, r, http.MethodPost, "/coding-prompt", map[string]any{"businessName": "A"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// ---------- Subscription ----------

func TestSubscription_SnapshotPerPlan(t *testing.T) {
	r := newRouter(New(stubIdeaSvc{}, stubLibSvc{}))

	w := doJSON(t, r, http.MethodGet, "/me/subscription", nil, map[string]string{"X-User-Plan": "pro"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var sub entitlement.Subscription
	if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.Plan != entitlement.PlanPro || sub.MaxIdeasPerGeneration != 20 || !sub.CanGenerateCodingPrompts {
		t.Fatalf("unexpected pro snapshot: %+v", sub)
	}

	w = doJSON(t, r, http.MethodGet, "/me/subscription", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.Plan != entitlement.PlanFree || sub.MaxGenerationsPerDay != 1 {
		t.Fatalf("unexpected free snapshot: %+v", sub)
	}
}
