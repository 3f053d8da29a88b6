package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beltranalain/argufiight-sub000/internal/bootstrap"
	"github.com/beltranalain/argufiight-sub000/internal/config"
	"github.com/beltranalain/argufiight-sub000/internal/database"
	"github.com/beltranalain/argufiight-sub000/internal/database/postgres"
	"github.com/beltranalain/argufiight-sub000/internal/debate"
	"github.com/beltranalain/argufiight-sub000/internal/elimination"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/moderation"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/server"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
	"github.com/beltranalain/argufiight-sub000/internal/verdict"
	"github.com/beltranalain/argufiight-sub000/internal/worker"
)

const (
	dbMaxConns        = 10
	dbMaxConnIdle     = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))
	slog.Info("Configuration loaded", "environment", cfg.Environment, "port", cfg.Port)

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxConnIdle, dbMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Repositories
	debateRepo := postgres.NewDebateRepository(dbPool)
	verdictRepo := postgres.NewVerdictRepository(dbPool)
	moderationRepo := postgres.NewModerationRepository(dbPool)
	usageRepo := postgres.NewUsageRepository(dbPool)

	// Collaborator client and usage ledger
	llmClient := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	ledger := usage.NewService(usageRepo)

	// Event system
	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg.EventDeadLetterPath)
	if err != nil {
		log.Fatalf("Failed to initialize event system: %v", err)
	}

	// Services
	judgeService := verdict.NewService(llmClient, ledger)
	scoringService := elimination.NewService(llmClient, ledger)
	moderationService := moderation.NewService(llmClient, moderationRepo, ledger, resilientPublisher)
	responder := debate.NewAIResponder(debateRepo, llmClient, ledger)
	debateService := debate.NewService(debateRepo, verdictRepo, judgeService, responder, resilientPublisher, debate.Config{
		RoundDuration:    cfg.RoundDuration,
		JudgePersonality: persona.Key(cfg.JudgePersonality),
	})

	// Background workers
	deadlineWorker := worker.NewDeadlineWorker(debateService, worker.DefaultSweepInterval)
	deadlineWorker.Start()
	bootstrap.RegisterDeadlineScheduler(eventBus, deadlineWorker, cfg.RoundDuration)

	moderationPool := worker.NewPool(worker.DefaultPoolWorkers, worker.DefaultPoolQueueSize)
	moderationPool.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, debateService, moderationService, scoringService, verdictRepo, moderationPool)

	// Start server in a goroutine so we can listen for shutdown signals
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		DebateService:      debateService,
		DeadlineWorker:     deadlineWorker,
		ModerationPool:     moderationPool,
		Ledger:             ledger,
		ResilientPublisher: resilientPublisher,
	})
}
