package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/handler"
	"github.com/imgoedu/imgo-backend/internal/logger"
	"github.com/imgoedu/imgo-backend/internal/router"
	"github.com/imgoedu/imgo-backend/internal/service"
	"github.com/imgoedu/imgo-backend/internal/store"
	"github.com/imgoedu/imgo-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting IMGO Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Store ────────────────────────────────────────────────────
	// Redis when configured, JSON file otherwise.
	var st store.Store
	if cfg.RedisURL != "" {
		rs, err := store.NewRedisStore(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rs.Close()
		st = rs
	} else {
		st = store.NewFileStore(cfg.DBFile, log)
		log.Info().Str("path", cfg.DBFile).Msg("Using JSON file store")
	}

	// ─── Initialize Services ───────────────────────────────────────────
	eventService := service.NewEventService(st, log)
	leadService := service.NewLeadService(st, log)
	agreementService := service.NewAgreementService(st, log)
	metricsService := service.NewMetricsService(st, log)
	insightsService := service.NewInsightsService(cfg.DatasetFile, log)

	// ─── Initialize Handlers ───────────────────────────────────────────
	handlers := &router.Handlers{
		Event:     handler.NewEventHandler(eventService),
		Lead:      handler.NewLeadHandler(leadService),
		Agreement: handler.NewAgreementHandler(agreementService),
		Metrics:   handler.NewMetricsHandler(metricsService),
		Insights:  handler.NewInsightsHandler(insightsService),
		System:    handler.NewSystemHandler(cfg.DatasetFile),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
