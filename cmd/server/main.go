// Command server runs the idea-generation backend: a Gin HTTP API backed by
// SQLite, with plan-based entitlements, a Gemini/OpenAI generation client,
// and a saved-ideas library.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ideaspark/go-ideaspark-backend/internal/config"
	"github.com/ideaspark/go-ideaspark-backend/internal/genai"
	httpapi "github.com/ideaspark/go-ideaspark-backend/internal/http"
	"github.com/ideaspark/go-ideaspark-backend/internal/observability"
	"github.com/ideaspark/go-ideaspark-backend/internal/repo"
	"github.com/ideaspark/go-ideaspark-backend/internal/sysutil"
)

const version = "1.0.0"

// @title        IdeaSpark API
// @version      1.0
// @description  Business idea generation backend with plan-based entitlements and a saved-ideas library.
// @BasePath     /api/v1
func main() {
	// Local development convenience; absent .env is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// Generation provider
	gen := newGenerator(cfg.GenAI)

	// HTTP
	r := gin.New()
	httpapi.RegisterRoutes(r, db, gen, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("provider", cfg.GenAI.Provider).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newGenerator selects the text-generation provider from configuration.
func newGenerator(cfg config.GenAIConfig) genai.Generator {
	switch cfg.Provider {
	case "openai":
		return genai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		client := genai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, &http.Client{Timeout: cfg.Timeout})
		if cfg.GeminiBaseURL != "" {
			client.BaseURL = cfg.GeminiBaseURL
		}
		return client
	}
}
