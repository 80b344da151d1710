// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/ideaspark/go-ideaspark-backend/docs"
	"github.com/ideaspark/go-ideaspark-backend/internal/config"
	"github.com/ideaspark/go-ideaspark-backend/internal/domain"
	"github.com/ideaspark/go-ideaspark-backend/internal/genai"
	"github.com/ideaspark/go-ideaspark-backend/internal/http/handlers"
	"github.com/ideaspark/go-ideaspark-backend/internal/http/middleware"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/services"
)

// ideaRepoShim adapts the repository free functions to the services.IdeaRepo
// interface expected by the LibraryService. This keeps services decoupled
// from the concrete repo package while reusing existing functions.
type ideaRepoShim struct{}

// CreateIdea proxies repo.CreateIdea.
func (ideaRepoShim) CreateIdea(ctx context.Context, db *gorm.DB, userID string, in repo.IdeaInput) (*domain.Idea, error) {
	return repo.CreateIdea(ctx, db, userID, in)
}

// GetIdea proxies repo.GetIdea.
func (ideaRepoShim) GetIdea(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Idea, error) {
	return repo.GetIdea(ctx, db, id, userID)
}

// CountIdeas proxies repo.CountIdeas (pagination support).
func (ideaRepoShim) CountIdeas(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountIdeas(ctx, db, userID)
}

// ListIdeasPage proxies repo.ListIdeasPage (pagination support).
func (ideaRepoShim) ListIdeasPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Idea, error) {
	return repo.ListIdeasPage(ctx, db, userID, offset, limit)
}

// DeleteIdea proxies repo.DeleteIdea.
func (ideaRepoShim) DeleteIdea(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteIdea(ctx, db, id, userID)
}

// UpdateIdeaCodingPrompt proxies repo.UpdateIdeaCodingPrompt.
func (ideaRepoShim) UpdateIdeaCodingPrompt(ctx context.Context, db *gorm.DB, id, userID, codingPrompt string) error {
	return repo.UpdateIdeaCodingPrompt(ctx, db, id, userID, codingPrompt)
}

// ledgerRepoShim adapts the usage-ledger free functions to services.LedgerRepo.
type ledgerRepoShim struct{}

// GetUsage proxies repo.GetUsage.
func (ledgerRepoShim) GetUsage(ctx context.Context, db *gorm.DB, userID string) (*domain.UsageLedger, error) {
	return repo.GetUsage(ctx, db, userID)
}

// UpsertUsage proxies repo.UpsertUsage.
func (ledgerRepoShim) UpsertUsage(ctx context.Context, db *gorm.DB, userID string, used int, date string) error {
	return repo.UpsertUsage(ctx, db, userID, used, date)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter, response compression
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gen genai.Generator, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-User-ID", // demo identity header; treat as PII in logs
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB) and gzip responses
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-User-Plan", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-User-Plan", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/generator
	ideaSvc := services.NewIdeaService(db, ledgerRepoShim{}, gen)
	libSvc := services.NewLibraryService(db, ideaRepoShim{})
	h := handlers.New(ideaSvc, libSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Generation
		api.POST("/ideas/generate", h.GenerateIdeas)
		api.POST("/coding-prompt", h.CodingPrompt)

		// Library
		api.POST("/ideas", h.SaveIdea)
		api.GET("/ideas", h.ListIdeas)
		api.DELETE("/ideas/:id", h.DeleteIdea)
		api.POST("/ideas/:id/coding-prompt", h.AttachCodingPrompt)

		// Account
		api.GET("/me/subscription", h.Subscription)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
