// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
)

// IdeasStats returns aggregate metadata for a user's saved ideas: the total
// number of rows and the maximum UpdatedAt timestamp among them. When the
// user has no ideas, count is 0 and maxUpdatedAt is nil.
//
// The pair changes whenever an idea is saved, deleted, or gains a coding
// prompt, which makes it a cheap weak-ETag source for GET /ideas.
func IdeasStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Idea{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
