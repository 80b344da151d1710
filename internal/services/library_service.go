// Package services – LibraryService
//
// This file implements LibraryService, which manages the saved-ideas
// library: explicit save, paginated owner-scoped listing, owner-scoped
// delete, and attaching a generated coding prompt to an already-saved idea.
// Service-level errors (e.g. ErrIdeaNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
)

// IdeaRepo defines the repository contract required by LibraryService.
type IdeaRepo interface {
	CreateIdea(ctx context.Context, db *gorm.DB, userID string, in repo.IdeaInput) (*domain.Idea, error)
	GetIdea(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Idea, error)
	CountIdeas(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	ListIdeasPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Idea, error)
	DeleteIdea(ctx context.Context, db *gorm.DB, id, userID string) error
	UpdateIdeaCodingPrompt(ctx context.Context, db *gorm.DB, id, userID, codingPrompt string) error
}

// LibraryService provides CRUD over a user's saved ideas. Every operation
// takes the owner's identity explicitly; nothing is read from ambient state.
type LibraryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the idea repository used by this service.
	Repo IdeaRepo
}

// NewLibraryService constructs a LibraryService.
func NewLibraryService(db *gorm.DB, r IdeaRepo) *LibraryService {
	return &LibraryService{DB: db, Repo: r}
}

// Save persists an idea for userID and returns the stored record with its
// assigned id and timestamp. The in-memory idea is untouched on failure, so
// the caller can retry.
func (s *LibraryService) Save(ctx context.Context, userID string, in repo.IdeaInput) (*domain.Idea, error) {
	if strings.TrimSpace(in.BusinessName) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, ErrEmptyIdea
	}
	return s.Repo.CreateIdea(ctx, s.DB, userID, in)
}

// Get returns one saved idea, enforcing ownership.
func (s *LibraryService) Get(ctx context.Context, userID, ideaID string) (*domain.Idea, error) {
	idea, err := s.Repo.GetIdea(ctx, s.DB, ideaID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// ListPage returns a page of the user's saved ideas, newest first, plus the
// total count. Invalid page/pageSize values fall back to defaults.
func (s *LibraryService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Idea, int64, error) {
	tr := otel.Tracer("services/LibraryService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountIdeas(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Idea{}, 0, nil
	}

	items, err := s.Repo.ListIdeasPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Delete removes a saved idea, enforcing ownership: an id belonging to a
// different user yields ErrIdeaNotFound, indistinguishable from a missing
// row.
func (s *LibraryService) Delete(ctx context.Context, userID, ideaID string) error {
	err := s.Repo.DeleteIdea(ctx, s.DB, ideaID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIdeaNotFound
	}
	return err
}

// AttachCodingPrompt generates an implementation guide for a saved idea via
// gen and persists it on the row. The entitlement gate lives in
// IdeaService.CodingPrompt, which gen wraps here through a closure at the
// handler level; this method only requires that the idea exists and belongs
// to userID.
func (s *LibraryService) AttachCodingPrompt(ctx context.Context, userID, ideaID string, gen func(context.Context, IdeaSeed) (string, error)) (*domain.Idea, error) {
	idea, err := s.Get(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}

	text, err := gen(ctx, IdeaSeed{BusinessName: idea.BusinessName, Description: idea.Description})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateIdeaCodingPrompt(ctx, s.DB, ideaID, userID, text); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	idea.CodingPrompt = &text
	return idea, nil
}
