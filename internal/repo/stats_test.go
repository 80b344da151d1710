package repo

import (
	"context"
	"testing"
	"time"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
)

func TestIdeasStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	_, _, err := IdeasStats(context.Background(), db, "u1")
	if err == nil {
		t.Fatalf("expected error due to missing ideas table")
	}
}

func TestIdeasStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.Idea{})
	count, maxAt, err := IdeasStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("IdeasStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestIdeasStats_Success_FilterAndMax(t *testing.T) {
	db := newTestDB(t, &domain.Idea{})

	// Seed ideas for two users; ensure UpdatedAt is exactly what we set.
	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for u1
	t3 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)   // for other user

	i1 := &domain.Idea{ID: "i1", UserID: "u1", BusinessName: "a", Description: "d", Niche: "IT", CreatedAt: t1, UpdatedAt: t1}
	i2 := &domain.Idea{ID: "i2", UserID: "u1", BusinessName: "b", Description: "d", Niche: "IT", CreatedAt: t2, UpdatedAt: t2}
	i3 := &domain.Idea{ID: "i3", UserID: "u2", BusinessName: "x", Description: "d", Niche: "IT", CreatedAt: t3, UpdatedAt: t3}

	for _, row := range []*domain.Idea{i1, i2, i3} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %s: %v", row.ID, err)
		}
	}

	count, maxAt, err := IdeasStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("IdeasStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", t2, maxAt)
	}
}

// Force the second query (SELECT updated_at ...) to fail by renaming the column.
func TestIdeasStats_SelectLatest_ErrorPath(t *testing.T) {
	db := newTestDB(t, &domain.Idea{})

	// Seed at least one row so count > 0
	now := time.Now().UTC()
	if err := db.Create(&domain.Idea{
		ID:           "ix",
		UserID:       "uerr",
		BusinessName: "x",
		Description:  "d",
		Niche:        "IT",
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error; err != nil {
		t.Fatalf("seed idea: %v", err)
	}

	// Break the follow-up select by removing/renaming updated_at.
	if err := db.Exec(`ALTER TABLE ideas RENAME COLUMN updated_at TO updated_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}

	_, _, err := IdeasStats(context.Background(), db, "uerr")
	if err == nil {
		t.Fatalf("expected error from latest-updated select after column rename")
	}
}
