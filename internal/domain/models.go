// Package domain defines the persistence models for saved ideas and the
// per-user usage ledger. These types are mapped with GORM and form the core
// data layer of the idea-generation backend.
package domain

import "time"

// Idea is one persisted SaaS business concept, owned by exactly one user.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned on save.
//   - UserID: identifier of the owner; indexed for owner-scoped retrieval.
//   - BusinessName: short display name, never empty for persisted rows.
//   - Description: generated prose (soft 100–150 word target, not enforced).
//   - Niche: one of the fixed niche categories (see entitlement.Niches).
//   - Hashtags: ordered tags, stored as JSON; the leading '#' is a display
//     concern and is not enforced on storage.
//   - CodingPrompt: optional implementation guide, present only after an
//     explicit coding-prompt generation.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Idea struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	UserID       string    `json:"user_id"       gorm:"type:varchar(64);not null;index:idx_user_ideas"`
	BusinessName string    `json:"business_name" gorm:"type:varchar(255);not null"`
	Description  string    `json:"description"   gorm:"type:text;not null"`
	Niche        string    `json:"niche"         gorm:"type:varchar(32);not null"`
	Hashtags     []string  `json:"hashtags"      gorm:"serializer:json"`
	CodingPrompt *string   `json:"coding_prompt,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index:idx_user_ideas,priority:2"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Idea.
func (Idea) TableName() string { return "ideas" }

// UsageLedger tracks how many generations a user has consumed on a given
// calendar day. One row per user; rows are upserted on each successful
// generation and never deleted by the user-facing system.
//
// LastGenerationDate is a UTC calendar date string ("2006-01-02"). The
// daily-reset rule compares this string against today's date; a mismatch
// means the stored count belongs to a previous day and resolves to zero.
type UsageLedger struct {
	UserID             string    `json:"user_id"              gorm:"type:varchar(64);primaryKey"`
	GenerationsUsed    int       `json:"generations_used"     gorm:"not null;default:0;check:generations_used >= 0"`
	LastGenerationDate string    `json:"last_generation_date" gorm:"type:char(10);not null"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName returns the database table name for UsageLedger.
func (UsageLedger) TableName() string { return "usage_ledger" }
