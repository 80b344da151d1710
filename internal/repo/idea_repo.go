// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Idea model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an idea is not found (or not owned by the caller), functions
//     return gorm.ErrRecordNotFound (also exported here as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Every read, update, and delete is owner-scoped: an idea id alone is never
// enough to touch a row.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// IdeaInput carries the fields of an idea about to be persisted. The ID and
// CreatedAt are store-assigned.
type IdeaInput struct {
	BusinessName string
	Description  string
	Niche        string
	Hashtags     []string
	CodingPrompt *string
}

// CreateIdea inserts a new Idea row owned by userID. The idea ID is a
// randomly generated UUID, and CreatedAt is set to UTC.
func CreateIdea(ctx context.Context, db *gorm.DB, userID string, in IdeaInput) (*domain.Idea, error) {
	idea := &domain.Idea{
		ID:           uuid.NewString(),
		UserID:       userID,
		BusinessName: in.BusinessName,
		Description:  in.Description,
		Niche:        in.Niche,
		Hashtags:     in.Hashtags,
		CodingPrompt: in.CodingPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

// ListIdeas returns all ideas belonging to userID, newest first. It returns
// an empty slice if the user has none.
func ListIdeas(ctx context.Context, db *gorm.DB, userID string) ([]domain.Idea, error) {
	var out []domain.Idea
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountIdeas returns the total number of ideas owned by userID.
func CountIdeas(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Idea{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListIdeasPage returns a paginated slice of ideas for userID, newest first.
// Use CountIdeas to obtain the total for pagination metadata. The caller is
// responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListIdeasPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Idea, error) {
	var out []domain.Idea
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetIdea fetches a single idea by its ID and owner. If the record does not
// exist or belongs to someone else, it returns ErrNotFound.
func GetIdea(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Idea, error) {
	var idea domain.Idea
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&idea).Error
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// DeleteIdea removes an idea identified by id and owned by userID. If no
// rows are affected (missing or not owned), it returns ErrNotFound.
func DeleteIdea(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Idea{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateIdeaCodingPrompt attaches a generated coding prompt to a persisted
// idea, enforcing ownership. Returns ErrNotFound when nothing matched.
func UpdateIdeaCodingPrompt(ctx context.Context, db *gorm.DB, id, userID, codingPrompt string) error {
	res := db.WithContext(ctx).
		Model(&domain.Idea{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("coding_prompt", codingPrompt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
