// Package services – IdeaService
//
// This file implements IdeaService, the application-level component that
// owns idea generation and coding-prompt generation. It resolves the
// caller's entitlements, validates the request against them (niche, count,
// daily quota) before any network call, delegates text generation to the
// configured genai.Generator, and records quota consumption in the usage
// ledger after a successful generation.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// user/plan identifiers and request parameters.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/entitlement"
	"github.com/ideaspark/go-ideaspark-backend/internal/genai"
)

// LedgerRepo defines the usage-ledger contract required by IdeaService.
type LedgerRepo interface {
	// GetUsage returns the ledger row for userID, or (nil, nil) when the
	// user has never generated.
	GetUsage(ctx context.Context, db *gorm.DB, userID string) (*domain.UsageLedger, error)

	// UpsertUsage overwrites the user's ledger row with the new count and date.
	UpsertUsage(ctx context.Context, db *gorm.DB, userID string, used int, date string) error
}

// GenerateRequest carries the caller's generation parameters.
type GenerateRequest struct {
	Niche        string
	Hashtags     []string
	CustomPrompt string
	Count        int
}

// IdeaSeed identifies an idea for coding-prompt generation: the two fields
// the prompt is built from.
type IdeaSeed struct {
	BusinessName string
	Description  string
}

// IdeaService coordinates entitlement checks, prompt construction, model
// calls, response normalization, and quota accounting.
type IdeaService struct {
	// DB is the GORM handle used for ledger persistence.
	DB *gorm.DB
	// Ledger is the usage-ledger repository.
	Ledger LedgerRepo
	// Gen produces model text for prompts.
	Gen genai.Generator

	// Now is the clock used for daily-quota dates; defaults to time.Now.
	// Tests pin it to exercise the reset rule.
	Now func() time.Time
}

// NewIdeaService constructs an IdeaService with the real clock.
func NewIdeaService(db *gorm.DB, ledger LedgerRepo, gen genai.Generator) *IdeaService {
	return &IdeaService{DB: db, Ledger: ledger, Gen: gen, Now: time.Now}
}

func (s *IdeaService) today() string {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return entitlement.DateUTC(now())
}

// Subscription resolves the current entitlement snapshot for a user: plan
// limits plus today's effective usage.
func (s *IdeaService) Subscription(ctx context.Context, userID, planTag string) (entitlement.Subscription, error) {
	led, err := s.Ledger.GetUsage(ctx, s.DB, userID)
	if err != nil {
		return entitlement.Subscription{}, err
	}
	return entitlement.Resolve(entitlement.ParsePlan(planTag), led, s.today()), nil
}

// Generate produces req.Count normalized ideas for the user, or fails. The
// order of checks matters: every validation error is raised before the model
// is called, and quota is recorded only after the model call and parsing
// both succeeded — a crash in between under-counts usage, which is the
// accepted fail-open behavior.
func (s *IdeaService) Generate(ctx context.Context, userID, planTag string, req GenerateRequest) ([]genai.Idea, error) {
	tr := otel.Tracer("services/IdeaService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("niche", req.Niche),
			attribute.Int("count", req.Count),
		),
	)
	defer span.End()

	niche, ok := entitlement.CanonicalNiche(req.Niche)
	if !ok {
		generationFailures.WithLabelValues("validation").Inc()
		return nil, ErrInvalidNiche
	}

	led, err := s.Ledger.GetUsage(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	sub := entitlement.Resolve(entitlement.ParsePlan(planTag), led, today)

	if !sub.CanGenerate {
		generationFailures.WithLabelValues("validation").Inc()
		return nil, ErrQuotaExhausted
	}
	if err := entitlement.ValidateCount(req.Count, sub.MaxIdeasPerGeneration); err != nil {
		generationFailures.WithLabelValues("validation").Inc()
		return nil, ErrCountExceedsPlan
	}

	tags := cleanTags(req.Hashtags)
	prompt := genai.IdeaPrompt(niche, tags, req.CustomPrompt, req.Count)

	raw, err := s.Gen.GenerateText(ctx, prompt)
	if err != nil {
		generationFailures.WithLabelValues(failureKind(err)).Inc()
		return nil, err
	}

	ideas, err := genai.ParseIdeas(raw, req.Count, niche, tags)
	if err != nil {
		generationFailures.WithLabelValues(failureKind(err)).Inc()
		return nil, err
	}

	// Record the spend before reporting success to the caller.
	if err := s.Ledger.UpsertUsage(ctx, s.DB, userID, sub.GenerationsUsed+1, today); err != nil {
		return nil, err
	}

	generationsTotal.WithLabelValues(string(sub.Plan)).Inc()
	return ideas, nil
}

// CodingPrompt generates an implementation guide for one idea. The
// entitlement gate runs before any network call; free-plan requests never
// reach the model.
func (s *IdeaService) CodingPrompt(ctx context.Context, userID, planTag string, seed IdeaSeed) (string, error) {
	tr := otel.Tracer("services/IdeaService")
	ctx, span := tr.Start(ctx, "CodingPrompt",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	led, err := s.Ledger.GetUsage(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	sub := entitlement.Resolve(entitlement.ParsePlan(planTag), led, s.today())
	if !sub.CanGenerateCodingPrompts {
		return "", ErrCodingPromptForbidden
	}

	if strings.TrimSpace(seed.BusinessName) == "" || strings.TrimSpace(seed.Description) == "" {
		return "", ErrEmptyIdea
	}

	text, err := s.Gen.GenerateText(ctx, genai.CodingPrompt(seed.BusinessName, seed.Description))
	if err != nil {
		generationFailures.WithLabelValues(failureKind(err)).Inc()
		return "", err
	}
	codingPromptsTotal.Inc()
	return text, nil
}

// cleanTags trims whitespace and drops empty entries, preserving order.
// A leading '#' is kept as supplied; display normalization is the client's
// concern.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// failureKind buckets generation errors for metrics.
func failureKind(err error) string {
	var pe *genai.ParseError
	if errors.As(err, &pe) {
		return "parse"
	}
	return "request"
}
