package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
)

// ----- Fake repo -----

type fakeIdeaRepo struct {
	createUserID string
	createInput  repo.IdeaInput
	createErr    error

	getIdea *domain.Idea
	getErr  error

	countTotal int64
	countErr   error

	pageOffset int
	pageLimit  int
	pageItems  []domain.Idea
	pageErr    error

	deleteID     string
	deleteUserID string
	deleteErr    error

	updateID     string
	updatePrompt string
	updateErr    error
}

func (r *fakeIdeaRepo) CreateIdea(ctx context.Context, db *gorm.DB, userID string, in repo.IdeaInput) (*domain.Idea, error) {
	r.createUserID, r.createInput = userID, in
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &domain.Idea{ID: "i1", UserID: userID, BusinessName: in.BusinessName, Description: in.Description}, nil
}

func (r *fakeIdeaRepo) GetIdea(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Idea, error) {
	return r.getIdea, r.getErr
}

func (r *fakeIdeaRepo) CountIdeas(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return r.countTotal, r.countErr
}

func (r *fakeIdeaRepo) ListIdeasPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Idea, error) {
	r.pageOffset, r.pageLimit = offset, limit
	return r.pageItems, r.pageErr
}

func (r *fakeIdeaRepo) DeleteIdea(ctx context.Context, db *gorm.DB, id, userID string) error {
	r.deleteID, r.deleteUserID = id, userID
	return r.deleteErr
}

func (r *fakeIdeaRepo) UpdateIdeaCodingPrompt(ctx context.Context, db *gorm.DB, id, userID, codingPrompt string) error {
	r.updateID, r.updatePrompt = id, codingPrompt
	return r.updateErr
}

// ----- Tests -----

func TestSave_RejectsEmptyIdea(t *testing.T) {
	s := NewLibraryService(nil, &fakeIdeaRepo{})
	for _, in := range []repo.IdeaInput{
		{},
		{BusinessName: "A"},
		{Description: "d"},
		{BusinessName: "  ", Description: "d"},
	} {
		if _, err := s.Save(context.Background(), "u1", in); !errors.Is(err, ErrEmptyIdea) {
			t.Errorf("Save(%+v) = %v; want ErrEmptyIdea", in, err)
		}
	}
}

func TestSave_PassesThrough(t *testing.T) {
	r := &fakeIdeaRepo{}
	s := NewLibraryService(nil, r)

	in := repo.IdeaInput{BusinessName: "LedgerLens", Description: "d", Niche: "Finance", Hashtags: []string{"AI"}}
	idea, err := s.Save(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if idea.ID == "" || r.createUserID != "u1" || r.createInput.BusinessName != "LedgerLens" {
		t.Fatalf("save not forwarded: %+v / %+v", idea, r)
	}
}

func TestListPage_DefaultsAndEmpty(t *testing.T) {
	r := &fakeIdeaRepo{countTotal: 0}
	s := NewLibraryService(nil, r)

	items, total, err := s.ListPage(context.Background(), "u1", -3, 0)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("empty list: items=%v total=%d err=%v", items, total, err)
	}

	r.countTotal = 50
	r.pageItems = []domain.Idea{{ID: "a"}}
	if _, _, err := s.ListPage(context.Background(), "u1", 3, 10); err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if r.pageOffset != 20 || r.pageLimit != 10 {
		t.Fatalf("pagination math wrong: offset=%d limit=%d", r.pageOffset, r.pageLimit)
	}
}

func TestDelete_MapsNotFound(t *testing.T) {
	r := &fakeIdeaRepo{deleteErr: gorm.ErrRecordNotFound}
	s := NewLibraryService(nil, r)

	if err := s.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrIdeaNotFound) {
		t.Fatalf("want ErrIdeaNotFound, got %v", err)
	}
	if r.deleteID != "missing" || r.deleteUserID != "u1" {
		t.Fatalf("delete must be owner-scoped: %+v", r)
	}

	r.deleteErr = nil
	if err := s.Delete(context.Background(), "u1", "i1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestAttachCodingPrompt(t *testing.T) {
	r := &fakeIdeaRepo{getIdea: &domain.Idea{ID: "i1", UserID: "u1", BusinessName: "LedgerLens", Description: "d"}}
	s := NewLibraryService(nil, r)

	var gotSeed IdeaSeed
	gen := func(ctx context.Context, seed IdeaSeed) (string, error) {
		gotSeed = seed
		return "# Guide", nil
	}

	idea, err := s.AttachCodingPrompt(context.Background(), "u1", "i1", gen)
	if err != nil {
		t.Fatalf("AttachCodingPrompt: %v", err)
	}
	if gotSeed.BusinessName != "LedgerLens" {
		t.Fatalf("generator fed wrong seed: %+v", gotSeed)
	}
	if r.updateID != "i1" || r.updatePrompt != "# Guide" {
		t.Fatalf("prompt not persisted: %+v", r)
	}
	if idea.CodingPrompt == nil || *idea.CodingPrompt != "# Guide" {
		t.Fatalf("returned idea missing prompt: %+v", idea)
	}
}

func TestAttachCodingPrompt_MissingIdea(t *testing.T) {
	r := &fakeIdeaRepo{getErr: gorm.ErrRecordNotFound}
	s := NewLibraryService(nil, r)

	called := false
	gen := func(ctx context.Context, seed IdeaSeed) (string, error) {
		called = true
		return "", nil
	}
	if _, err := s.AttachCodingPrompt(context.Background(), "u1", "nope", gen); !errors.Is(err, ErrIdeaNotFound) {
		t.Fatalf("want ErrIdeaNotFound, got %v", err)
	}
	if called {
		t.Fatal("generator must not run for a missing idea")
	}
}

func TestAttachCodingPrompt_GeneratorFailureNotPersisted(t *testing.T) {
	r := &fakeIdeaRepo{getIdea: &domain.Idea{ID: "i1", UserID: "u1", BusinessName: "A", Description: "d"}}
	s := NewLibraryService(nil, r)

	genErr := errors.New("upstream down")
	_, err := s.AttachCodingPrompt(context.Background(), "u1", "i1", func(context.Context, IdeaSeed) (string, error) {
		return "", genErr
	})
	if !errors.Is(err, genErr) {
		t.Fatalf("generator error must propagate, got %v", err)
	}
	if r.updateID != "" {
		t.Fatal("nothing may be persisted when generation fails")
	}
}
