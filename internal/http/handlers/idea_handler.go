// Idea generation HTTP handlers.
//
// This file exposes REST endpoints for the generation surface:
//   - POST /ideas/generate   (generate a batch of business ideas)
//   - POST /coding-prompt    (generate an implementation guide for an unsaved idea)
//   - GET  /me/subscription  (current entitlement snapshot)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Entitlement failures map to
// distinct statuses so clients can branch without parsing messages:
// 403 (plan lacks the feature), 429 with code quota_exceeded (daily allowance
// spent), 502 (the upstream model failed or returned unusable output).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/entitlement"
	"github.com/ideaspark/go-ideaspark-backend/internal/genai"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/services"
	"github.com/ideaspark/go-ideaspark-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// IdeaService defines generation operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IdeaService interface {
	// Generate produces a batch of normalized ideas within plan limits.
	Generate(ctx context.Context, userID, planTag string, req services.GenerateRequest) ([]genai.Idea, error)
	// CodingPrompt produces an implementation guide for one idea (pro only).
	CodingPrompt(ctx context.Context, userID, planTag string, seed services.IdeaSeed) (string, error)
	// Subscription resolves the caller's entitlement snapshot for today.
	Subscription(ctx context.Context, userID, planTag string) (entitlement.Subscription, error)
}

// LibraryService defines saved-idea operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LibraryService interface {
	// Save persists an idea for the user.
	Save(ctx context.Context, userID string, in repo.IdeaInput) (*domain.Idea, error)
	// Get returns one saved idea, enforcing ownership.
	Get(ctx context.Context, userID, ideaID string) (*domain.Idea, error)
	// ListPage returns a page of saved ideas and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Idea, int64, error)
	// Delete removes a saved idea owned by the user.
	Delete(ctx context.Context, userID, ideaID string) error
	// AttachCodingPrompt generates and persists a coding prompt on a saved idea.
	AttachCodingPrompt(ctx context.Context, userID, ideaID string, gen func(context.Context, services.IdeaSeed) (string, error)) (*domain.Idea, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for generation, the saved-ideas library, and
// subscription introspection. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	ideaSvc IdeaService
	libSvc  LibraryService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(ideaSvc IdeaService, libSvc LibraryService) *Handlers {
	return &Handlers{ideaSvc: ideaSvc, libSvc: libSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// planTag extracts the caller's plan tag from Gin context or the "X-User-Plan"
// header. The raw tag is passed through to the service layer, where anything
// that is not "pro" resolves to the free plan.
func planTag(c *gin.Context) string {
	if v, ok := c.Get("userPlan"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-Plan")); h != "" {
			return h
		}
	}
	return string(entitlement.PlanFree)
}

//
// DTOs
//

// GenerateIdeasRequest is the JSON payload for generating a batch of ideas.
type GenerateIdeasRequest struct {
	// Niche is the business category; must be one of the niche catalog.
	Niche string `json:"niche" binding:"required" example:"Finance"`
	// Hashtags are optional keywords steering the generation.
	Hashtags []string `json:"hashtags" example:"AI,SaaS"`
	// CustomPrompt optionally refines the generation instructions.
	CustomPrompt string `json:"customPrompt" example:"focus on solo founders"`
	// Count is the number of ideas requested (plan-limited).
	Count int `json:"count" binding:"required,min=1" example:"3"`
}

// GenerateIdeasResponse wraps a generated idea batch.
type GenerateIdeasResponse struct {
	Ideas []genai.Idea `json:"ideas"`
}

// CodingPromptRequest identifies the idea an implementation guide is
// generated for. Used for unsaved ideas; saved ideas use the path variant.
type CodingPromptRequest struct {
	BusinessName string `json:"businessName" binding:"required,min=1" example:"LedgerLens"`
	Description  string `json:"description" binding:"required,min=1" example:"Automated bookkeeping insights for freelancers"`
}

// CodingPromptResponse carries the generated implementation guide verbatim.
type CodingPromptResponse struct {
	CodingPrompt string `json:"codingPrompt"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// failGeneration maps model-call failures onto HTTP responses: transport and
// schema failures both surface as 502 so clients retry against us, not the
// upstream vendor directly.
func failGeneration(c *gin.Context, err error) {
	var re *genai.RequestError
	if errors.As(err, &re) {
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "upstream generation request failed")
		return
	}
	var pe *genai.ParseError
	if errors.As(err, &pe) {
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "model returned an unusable response")
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}

//
// Handlers
//

// GenerateIdeas godoc
// @ID          generateIdeas
// @Summary     Generate business ideas
// @Description Generates a batch of normalized business ideas for the given niche, within the caller's plan limits.
// @Description Free plan: up to 3 ideas, 1 generation per day. Pro plan: up to 20 ideas, unlimited generations.
// @Tags        Ideas
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID    header  string  false "User ID (demo header)"        example(user123)
// @Param       X-User-Plan  header  string  false "Plan tag (free|pro)"          example(pro)
// @Param       body         body    handlers.GenerateIdeasRequest  true  "Generation parameters"
//
// @Success     200  {object}  handlers.GenerateIdeasResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Daily quota exhausted"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ideas/generate [post]
func (h *Handlers) GenerateIdeas(c *gin.Context) {
	var req GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "niche and count required")
		return
	}

	ideas, err := h.ideaSvc.Generate(c.Request.Context(), userID(c), planTag(c), services.GenerateRequest{
		Niche:        req.Niche,
		Hashtags:     req.Hashtags,
		CustomPrompt: req.CustomPrompt,
		Count:        req.Count,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidNiche):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown niche")
		case errors.Is(err, services.ErrCountExceedsPlan):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "count exceeds the plan's per-generation limit")
		case errors.Is(err, services.ErrQuotaExhausted):
			fail(c, http.StatusTooManyRequests, ErrCodeQuotaExceeded, "daily generation limit reached")
		default:
			failGeneration(c, err)
		}
		return
	}

	ok(c, http.StatusOK, GenerateIdeasResponse{Ideas: ideas})
}

// CodingPrompt godoc
// @ID          codingPrompt
// @Summary     Generate a coding prompt for an unsaved idea
// @Description Generates a step-by-step implementation guide for an idea supplied in the request body.
// @Description Available on the pro plan only. The guide is returned verbatim and not persisted.
// @Tags        Ideas
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID    header  string  false "User ID (demo header)"  example(user123)
// @Param       X-User-Plan  header  string  false "Plan tag (free|pro)"    example(pro)
// @Param       body         body    handlers.CodingPromptRequest  true  "Idea to expand"
//
// @Success     200  {object}  handlers.CodingPromptResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Plan lacks coding prompts"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /coding-prompt [post]
func (h *Handlers) CodingPrompt(c *gin.Context) {
	var req CodingPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "businessName and description required")
		return
	}

	text, err := h.ideaSvc.CodingPrompt(c.Request.Context(), userID(c), planTag(c), services.IdeaSeed{
		BusinessName: req.BusinessName,
		Description:  req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodingPromptForbidden):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "coding prompts require the pro plan")
		case errors.Is(err, services.ErrEmptyIdea):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "businessName and description required")
		default:
			failGeneration(c, err)
		}
		return
	}

	ok(c, http.StatusOK, CodingPromptResponse{CodingPrompt: text})
}

// Subscription godoc
// @ID          getSubscription
// @Summary     Current subscription snapshot
// @Description Returns the caller's plan limits and today's effective usage.
// @Tags        Subscription
// @Produce     json
//
// @Param       X-User-ID    header  string  false "User ID (demo header)"  example(user123)
// @Param       X-User-Plan  header  string  false "Plan tag (free|pro)"    example(free)
//
// @Success     200  {object}  entitlement.Subscription
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/subscription [get]
func (h *Handlers) Subscription(c *gin.Context) {
	sub, err := h.ideaSvc.Subscription(c.Request.Context(), userID(c), planTag(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sub)
}
