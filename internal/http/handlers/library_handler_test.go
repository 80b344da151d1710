package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/services"
)

// ---------- test DB + repo shim ----------

func newLibraryDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:library_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.Idea{}, &domain.UsageLedger{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Minimal shim implementing services.IdeaRepo using the repo package
// (mirrors the wiring in router.go).
type testIdeaRepo struct{}

func (testIdeaRepo) CreateIdea(ctx context.Context, db *gorm.DB, userID string, in repo.IdeaInput) (*domain.Idea, error) {
	return repo.CreateIdea(ctx, db, userID, in)
}

func (testIdeaRepo) GetIdea(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Idea, error) {
	return repo.GetIdea(ctx, db, id, userID)
}

func (testIdeaRepo) CountIdeas(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountIdeas(ctx, db, userID)
}

func (testIdeaRepo) ListIdeasPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Idea, error) {
	return repo.ListIdeasPage(ctx, db, userID, offset, limit)
}

func (testIdeaRepo) DeleteIdea(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteIdea(ctx, db, id, userID)
}

func (testIdeaRepo) UpdateIdeaCodingPrompt(ctx context.Context, db *gorm.DB, id, userID, codingPrompt string) error {
	return repo.UpdateIdeaCodingPrompt(ctx, db, id, userID, codingPrompt)
}

func newLibraryRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ideas", h.SaveIdea)
	r.GET("/ideas", h.ListIdeas)
	r.DELETE("/ideas/:id", h.DeleteIdea)
	r.POST("/ideas/:id/coding-prompt", h.AttachCodingPrompt)
	return r
}

// ---------- SaveIdea ----------

func TestSaveIdea_PersistsAndReturns201(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	w := doJSON(t, r, http.MethodPost, "/ideas",
		SaveIdeaRequest{BusinessName: "LedgerLens", Description: "d", Niche: "Finance", Hashtags: []string{"AI"}},
		map[string]string{"X-User-ID": "u1"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp IdeaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Idea == nil {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if resp.Idea.ID == "" || resp.Idea.UserID != "u1" {
		t.Fatalf("idea not persisted correctly: %+v", resp.Idea)
	}
}

func TestSaveIdea_BadBody(t *testing.T) {
	h := New(stubIdeaSvc{}, stubLibSvc{})
	r := newLibraryRouter(h)

	w := doJSON(t, r, http.MethodPost, "/ideas", map[string]any{"businessName": "A"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSaveIdea_IdempotentReplay(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	body := SaveIdeaRequest{BusinessName: "LedgerLens", Description: "d", Niche: "Finance"}
	hdr := map[string]string{"X-User-ID": "u1", "Idempotency-Key": "save-key-1"}

	w1 := doJSON(t, r, http.MethodPost, "/ideas", body, hdr)
	if w1.Code != http.StatusCreated {
		t.Fatalf("first save: expected 201, got %d: %s", w1.Code, w1.Body.String())
	}
	var first IdeaResponse
	if err := json.Unmarshal(w1.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode first: %v", err)
	}

	w2 := doJSON(t, r, http.MethodPost, "/ideas", body, hdr)
	if w2.Code != http.StatusCreated {
		t.Fatalf("replay: expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	if w2.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("replay header missing")
	}
	var second IdeaResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if first.Idea.ID != second.Idea.ID {
		t.Fatalf("replay returned a different idea: %q vs %q", first.Idea.ID, second.Idea.ID)
	}

	// Only one row must exist.
	total, err := repo.CountIdeas(context.Background(), db, "u1")
	if err != nil || total != 1 {
		t.Fatalf("expected exactly one idea, got %d (err=%v)", total, err)
	}
}

// ---------- ListIdeas ----------

func TestListIdeas_PaginationAndETag(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateIdea(context.Background(), db, "u1", repo.IdeaInput{
			BusinessName: fmt.Sprintf("Idea %d", i), Description: "d", Niche: "IT",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/ideas?page=1&page_size=2", nil, map[string]string{"X-User-ID": "u1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}
	var resp ListIdeasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Ideas) != 2 || resp.Pagination.Total != 3 || !resp.Pagination.HasNext {
		t.Fatalf("unexpected page: %+v", resp.Pagination)
	}

	// Conditional request with matching ETag returns 304.
	req := httptest.NewRequest(http.MethodGet, "/ideas?page=1&page_size=2", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w2.Code)
	}
}

func TestListIdeas_EmptyForOtherUser(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	if _, err := repo.CreateIdea(context.Background(), db, "owner", repo.IdeaInput{BusinessName: "A", Description: "d"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/ideas", nil, map[string]string{"X-User-ID": "someone-else"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ListIdeasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.Total != 0 || len(resp.Ideas) != 0 {
		t.Fatalf("library must be owner-scoped: %+v", resp)
	}
}

// ---------- DeleteIdea ----------

func TestDeleteIdea_OwnerScoped(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	idea, err := repo.CreateIdea(context.Background(), db, "owner", repo.IdeaInput{BusinessName: "A", Description: "d"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Someone else's delete is indistinguishable from missing.
	w := doJSON(t, r, http.MethodDelete, "/ideas/"+idea.ID, nil, map[string]string{"X-User-ID": "intruder"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign idea, got %d", w.Code)
	}

	// The owner succeeds.
	w = doJSON(t, r, http.MethodDelete, "/ideas/"+idea.ID, nil, map[string]string{"X-User-ID": "owner"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// Second delete: the row is gone.
	w = doJSON(t, r, http.MethodDelete, "/ideas/"+idea.ID, nil, map[string]string{"X-User-ID": "owner"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestDeleteIdea_BadID(t *testing.T) {
	h := New(stubIdeaSvc{}, stubLibSvc{})
	r := newLibraryRouter(h)

	w := doJSON(t, r, http.MethodDelete, "/ideas/not-a-uuid", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// ---------- AttachCodingPrompt ----------

func TestAttachCodingPrompt_PersistsGuide(t *testing.T) {
	db := newLibraryDB(t)
	ideaSvc := stubIdeaSvc{
		codingPrompt: func(_ context.Context, _, _ string, seed services.IdeaSeed) (string, error) {
			return "# Guide for " + seed.BusinessName, nil
		},
	}
	h := New(ideaSvc, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	idea, err := repo.CreateIdea(context.Background(), db, "u1", repo.IdeaInput{BusinessName: "LedgerLens", Description: "d"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/ideas/"+idea.ID+"/coding-prompt", nil,
		map[string]string{"X-User-ID": "u1", "X-User-Plan": "pro"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp IdeaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Idea.CodingPrompt == nil || *resp.Idea.CodingPrompt != "# Guide for LedgerLens" {
		t.Fatalf("coding prompt not attached: %+v", resp.Idea)
	}

	// And it is persisted.
	stored, err := repo.GetIdea(context.Background(), db, idea.ID, "u1")
	if err != nil || stored.CodingPrompt == nil {
		t.Fatalf("coding prompt not stored: %+v (err=%v)", stored, err)
	}
}

func TestAttachCodingPrompt_ForbiddenBeforeGeneration(t *testing.T) {
	db := newLibraryDB(t)
	ideaSvc := stubIdeaSvc{
		codingPrompt: func(context.Context, string, string, services.IdeaSeed) (string, error) {
			return "", services.ErrCodingPromptForbidden
		},
	}
	h := New(ideaSvc, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	idea, err := repo.CreateIdea(context.Background(), db, "u1", repo.IdeaInput{BusinessName: "A", Description: "d"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/ideas/"+idea.ID+"/coding-prompt", nil,
		map[string]string{"X-User-ID": "u1"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	// Nothing was written to the row.
	stored, err := repo.GetIdea(context.Background(), db, idea.ID, "u1")
	if err != nil || stored.CodingPrompt != nil {
		t.Fatalf("row must be untouched on failure: %+v (err=%v)", stored, err)
	}
}

func TestAttachCodingPrompt_NotFound(t *testing.T) {
	db := newLibraryDB(t)
	h := New(stubIdeaSvc{}, services.NewLibraryService(db, testIdeaRepo{}))
	r := newLibraryRouter(h)

	w := doJSON(t, r, http.MethodPost, "/ideas/"+uuid.NewString()+"/coding-prompt", nil,
		map[string]string{"X-User-ID": "u1", "X-User-Plan": "pro"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
