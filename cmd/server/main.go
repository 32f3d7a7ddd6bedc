package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/intervue/intervue-backend/internal/analysis"
	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/database"
	"github.com/intervue/intervue-backend/internal/handler"
	"github.com/intervue/intervue-backend/internal/logger"
	"github.com/intervue/intervue-backend/internal/questionbank"
	"github.com/intervue/intervue-backend/internal/repository"
	"github.com/intervue/intervue-backend/internal/router"
	"github.com/intervue/intervue-backend/internal/service"
	"github.com/intervue/intervue-backend/internal/session"
	"github.com/intervue/intervue-backend/internal/validator"
	"github.com/intervue/intervue-backend/internal/worker"
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
		Msg("Starting Intervue Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Scoring Policy & Question Bank ───────────────────────────
	policy, err := config.LoadScoringPolicy(cfg.ScoringPolicyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid scoring policy")
	}

	bank, err := questionbank.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load question bank")
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Engine ─────────────────────────────────────────────
	// The embedding client is created once and shared by all sessions.
	embedder := analysis.NewOpenAIEmbedder(cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel, log)
	analyzer := analysis.NewAnalyzer(policy, embedder, log)
	store := session.NewStore(cfg.MaxSessions, log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	interviewService := service.NewInterviewService(bank, store, analyzer, rdb, cfg, rng, log)
	reportRepo := repository.NewReportRepository(pool)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Interview: handler.NewInterviewHandler(interviewService),
		Report:    handler.NewReportHandler(reportRepo),
		System:    handler.NewSystemHandler(cfg.EmbeddingModel),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reportWorker := worker.NewReportWorker(reportRepo, rdb, log)
	go reportWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
