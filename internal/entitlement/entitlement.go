// Package entitlement implements the plan → limits mapping and the daily
// quota accounting rules. Everything here is a pure function of its inputs
// so the rules are unit-testable without a live store: the resolver takes
// the current ledger row (possibly absent) and today's UTC date, and the
// daily-reset rule is factored out as EffectiveUsage.
package entitlement

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
)

// Plan is the entitlement tier of a user.
type Plan string

const (
	// PlanFree is the default tier: 3 ideas per generation, 1 generation
	// per day, no coding prompts.
	PlanFree Plan = "free"
	// PlanPro removes the daily cap, raises the per-generation limit to 20
	// and unlocks coding-prompt generation.
	PlanPro Plan = "pro"
)

// Unlimited is the sentinel for "no daily cap".
const Unlimited = -1

// ParsePlan maps an externally supplied plan tag to a Plan. Anything that is
// not exactly "pro" (case-insensitive) resolves to free: unrecognized values
// fail safe, they never unlock paid features.
func ParsePlan(tag string) Plan {
	if strings.EqualFold(strings.TrimSpace(tag), string(PlanPro)) {
		return PlanPro
	}
	return PlanFree
}

// Subscription is the derived entitlement snapshot for one user on one day.
// It is never stored; it is recomputed from the plan tag and the ledger row.
type Subscription struct {
	Plan                     Plan `json:"plan"`
	MaxIdeasPerGeneration    int  `json:"max_ideas_per_generation"`
	CanGenerateCodingPrompts bool `json:"can_generate_coding_prompts"`
	// MaxGenerationsPerDay is Unlimited (-1) for pro.
	MaxGenerationsPerDay int `json:"max_generations_per_day"`
	// GenerationsUsed is the effective count for today, after the reset rule.
	GenerationsUsed int  `json:"generations_used"`
	CanGenerate     bool `json:"can_generate"`
}

// EffectiveUsage applies the daily-reset rule: a ledger recorded on a
// different calendar day than today counts as zero. An absent ledger (new
// user) also counts as zero.
func EffectiveUsage(ledger *domain.UsageLedger, today string) int {
	if ledger == nil || ledger.LastGenerationDate != today {
		return 0
	}
	return ledger.GenerationsUsed
}

// Resolve computes the Subscription for a plan given the stored ledger row
// (nil when the user has never generated) and today's UTC date string.
func Resolve(plan Plan, ledger *domain.UsageLedger, today string) Subscription {
	used := EffectiveUsage(ledger, today)

	if plan == PlanPro {
		return Subscription{
			Plan:                     PlanPro,
			MaxIdeasPerGeneration:    20,
			CanGenerateCodingPrompts: true,
			MaxGenerationsPerDay:     Unlimited,
			GenerationsUsed:          used,
			CanGenerate:              true,
		}
	}
	return Subscription{
		Plan:                     PlanFree,
		MaxIdeasPerGeneration:    3,
		CanGenerateCodingPrompts: false,
		MaxGenerationsPerDay:     1,
		GenerationsUsed:          used,
		CanGenerate:              used < 1,
	}
}

// ValidateCount checks a requested idea count against the plan's
// per-generation limit. It fails for non-positive counts and for counts
// above max; every value in [1, max] passes.
func ValidateCount(requested, max int) error {
	if requested < 1 {
		return fmt.Errorf("count must be at least 1, got %d", requested)
	}
	if requested > max {
		return fmt.Errorf("count %d exceeds the plan limit of %d", requested, max)
	}
	return nil
}

// DateUTC formats t as the UTC calendar date string used by the ledger.
func DateUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Niches is the fixed category catalog, in display order.
var Niches = []string{"IT", "Finance", "Productivity", "Crypto", "Healthcare", "Business", "Others"}

// foldCaser performs Unicode case folding for niche comparison.
var foldCaser = cases.Fold()

// CanonicalNiche matches an input against the niche catalog ignoring case
// and surrounding whitespace, returning the canonical spelling. The second
// return value is false when the input is not a known niche.
func CanonicalNiche(input string) (string, bool) {
	folded := foldCaser.String(strings.TrimSpace(input))
	for _, n := range Niches {
		if foldCaser.String(n) == folded {
			return n, true
		}
	}
	return "", false
}
