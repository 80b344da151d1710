// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the usage-ledger accessor: the per-user
// daily generation counter.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
)

// GetUsage returns the ledger row for userID, or (nil, nil) when the user
// has never generated. An absent row is a valid state, not an error; the
// daily-reset interpretation of the row is entitlement.EffectiveUsage's job.
func GetUsage(ctx context.Context, db *gorm.DB, userID string) (*domain.UsageLedger, error) {
	var led domain.UsageLedger
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&led).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &led, nil
}

// UpsertUsage records a completed generation: it inserts or overwrites the
// user's ledger row with the new count and today's date. Last write wins;
// concurrent requests from the same user (two tabs) may double-spend one
// slot, which is the accepted policy.
func UpsertUsage(ctx context.Context, db *gorm.DB, userID string, used int, date string) error {
	led := &domain.UsageLedger{
		UserID:             userID,
		GenerationsUsed:    used,
		LastGenerationDate: date,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"generations_used", "last_generation_date", "updated_at"}),
		}).
		Create(led).Error
}
