// Saved-ideas library HTTP handlers.
//
// This file exposes REST endpoints for the saved-ideas library:
//   - POST   /ideas                    (save a generated idea; idempotent)
//   - GET    /ideas                    (list, paginated, ETag support)
//   - DELETE /ideas/{id}               (owner-scoped delete)
//   - POST   /ideas/{id}/coding-prompt (generate and persist a coding prompt)
//
// Handlers are transport-thin:
//   - validate & normalize inputs
//   - delegate to application services (LibraryService, IdeaService)
//   - implement conditional responses (ETag) and idempotency semantics
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// save exists for (user, route, key), the handler returns the recorded idea
// and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/http/middleware"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/services"
)

//
// DTOs
//

// SaveIdeaRequest is the JSON payload for persisting a generated idea.
type SaveIdeaRequest struct {
	// BusinessName is the idea's short name.
	BusinessName string `json:"businessName" binding:"required,min=1,max=255" example:"LedgerLens"`
	// Description is the idea pitch.
	Description string `json:"description" binding:"required,min=1" example:"Automated bookkeeping insights for freelancers"`
	// Niche is the idea's business category.
	Niche string `json:"niche" example:"Finance"`
	// Hashtags are the idea's keywords.
	Hashtags []string `json:"hashtags" example:"AI,SaaS"`
}

// ListIdeasResponse contains a page of saved ideas and pagination metadata.
type ListIdeasResponse struct {
	Ideas      []domain.Idea `json:"ideas"`
	Pagination Pagination    `json:"pagination"`
}

// IdeaResponse is the JSON envelope for a single saved idea.
type IdeaResponse struct {
	Idea *domain.Idea `json:"idea"`
}

//
// Helpers
//

// libraryDB inspects the concrete LibraryService for its database handle,
// used for idempotency records and ETag stats. Returns nil when the handler
// is wired with a fake in tests.
func (h *Handlers) libraryDB() *gorm.DB {
	if svc, ok := h.libSvc.(*services.LibraryService); ok {
		return svc.DB
	}
	return nil
}

// saveScope is the idempotency scope for the save endpoint: the matched route
// path, so a client key never collides with other operations.
func saveScope(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

//
// Handlers
//

// SaveIdea godoc
// @ID          saveIdea
// @Summary     Save a generated idea
// @Description Persists an idea into the user's library and returns the stored record.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Library
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.SaveIdeaRequest  true  "Idea payload"
//
// @Success     201  {object}  handlers.IdeaResponse  "Stored idea"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /ideas [post]
func (h *Handlers) SaveIdea(c *gin.Context) {
	ctx := c.Request.Context()

	var req SaveIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "businessName and description required")
		return
	}

	currentUser := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey == "" {
		idemKey = strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
	}
	db := h.libraryDB()
	if idemKey != "" && db != nil {
		if rec, err := repo.GetIdempotency(ctx, db, currentUser, saveScope(c), idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, err2 := h.libSvc.Get(ctx, currentUser, rec.IdeaID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusCreated, IdeaResponse{Idea: prev})
				return
			}
		}
	}

	idea, err := h.libSvc.Save(ctx, currentUser, repo.IdeaInput{
		BusinessName: strings.TrimSpace(req.BusinessName),
		Description:  strings.TrimSpace(req.Description),
		Niche:        req.Niche,
		Hashtags:     req.Hashtags,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyIdea) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "businessName and description required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && db != nil {
		ttl := 24 * time.Hour
		_, _ = repo.CreateIdempotency(ctx, db, currentUser, saveScope(c), idemKey, idea.ID, http.StatusCreated, ttl)
	}

	ok(c, http.StatusCreated, IdeaResponse{Idea: idea})
}

// ListIdeas godoc
// @ID          listIdeas
// @Summary     List saved ideas (paginated)
// @Description Returns a page of the user's saved ideas, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Library
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListIdeasResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ideas [get]
func (h *Handlers) ListIdeas(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if db := h.libraryDB(); db != nil {
		count, maxTS, err := repo.IdeasStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"ideas:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.libSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListIdeasResponse{
		Ideas: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// DeleteIdea godoc
// @ID          deleteIdea
// @Summary     Delete a saved idea
// @Description Removes an idea owned by the current user. Someone else's idea id yields 404.
// @Tags        Library
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Idea ID (UUID)"         format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Idea not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ideas/{id} [delete]
func (h *Handlers) DeleteIdea(c *gin.Context) {
	ideaID := c.Param("id")
	if _, err := uuid.Parse(ideaID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "idea id must be a UUID")
		return
	}

	if err := h.libSvc.Delete(c.Request.Context(), userID(c), ideaID); err != nil {
		if errors.Is(err, services.ErrIdeaNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "idea not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	noContent(c)
}

// AttachCodingPrompt godoc
// @ID          attachCodingPrompt
// @Summary     Generate a coding prompt for a saved idea
// @Description Generates a step-by-step implementation guide for a saved idea and persists it on the record.
// @Description Available on the pro plan only.
// @Tags        Library
// @Produce     json
//
// @Param       X-User-ID    header  string  false "User ID (demo header)"  example(user123)
// @Param       X-User-Plan  header  string  false "Plan tag (free|pro)"    example(pro)
// @Param       id           path    string  true  "Idea ID (UUID)"         format(uuid)
//
// @Success     200  {object} handlers.IdeaResponse "Idea with coding prompt attached"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Plan lacks coding prompts"
// @Failure     404  {object} handlers.ErrorResponse "Idea not found"
// @Failure     502  {object} handlers.ErrorResponse "Generation failed"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ideas/{id}/coding-prompt [post]
func (h *Handlers) AttachCodingPrompt(c *gin.Context) {
	ideaID := c.Param("id")
	if _, err := uuid.Parse(ideaID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "idea id must be a UUID")
		return
	}

	uid := userID(c)
	plan := planTag(c)

	// The entitlement gate lives in IdeaService.CodingPrompt; it runs after
	// ownership is verified but before any model call.
	gen := func(ctx context.Context, seed services.IdeaSeed) (string, error) {
		return h.ideaSvc.CodingPrompt(ctx, uid, plan, seed)
	}

	idea, err := h.libSvc.AttachCodingPrompt(c.Request.Context(), uid, ideaID, gen)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIdeaNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "idea not found")
		case errors.Is(err, services.ErrCodingPromptForbidden):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "coding prompts require the pro plan")
		case errors.Is(err, services.ErrEmptyIdea):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "idea is missing a name or description")
		default:
			failGeneration(c, err)
		}
		return
	}

	ok(c, http.StatusOK, IdeaResponse{Idea: idea})
}
