package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/config"
	"github.com/beltranalain/argufiight-sub000/internal/database"
	"github.com/beltranalain/argufiight-sub000/internal/database/postgres"
	"github.com/beltranalain/argufiight-sub000/internal/debate"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
	"github.com/beltranalain/argufiight-sub000/internal/verdict"
)

const ledgerDrainTimeout = 10 * time.Second

// Operator tool for nudging stuck debates. Advancing is idempotent, so
// running it against a healthy debate does nothing.
func main() {
	debateIDStr := flag.String("debate", "", "debate ID to advance; empty sweeps all overdue debates")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	dbPool, err := database.NewPool(cfg.GetDBConnString(), 2, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	debateRepo := postgres.NewDebateRepository(dbPool)
	verdictRepo := postgres.NewVerdictRepository(dbPool)
	usageRepo := postgres.NewUsageRepository(dbPool)

	llmClient := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	ledger := usage.NewService(usageRepo)
	judgeService := verdict.NewService(llmClient, ledger)

	// No AI responder here: the tool settles state, it does not play turns
	debateService := debate.NewService(debateRepo, verdictRepo, judgeService, nil, event.NewMemoryBus(), debate.Config{
		RoundDuration:    cfg.RoundDuration,
		JudgePersonality: persona.Key(cfg.JudgePersonality),
	})

	ctx := context.Background()

	if *debateIDStr == "" {
		processed, err := debateService.ExpireOverdueRounds(ctx, time.Now())
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		drainLedger(ctx, ledger)
		log.Printf("Processed %d overdue debate(s)", processed)
		return
	}

	debateID, err := uuid.Parse(*debateIDStr)
	if err != nil {
		log.Fatalf("Invalid debate ID %q: %v", *debateIDStr, err)
	}

	if err := debateService.AdvanceDebate(ctx, debateID); err != nil {
		log.Fatalf("Failed to advance debate: %v", err)
	}
	drainLedger(ctx, ledger)
	log.Printf("Debate %s advanced", debateID)
}

// drainLedger waits for async invocation writes before the process exits.
// Without it a verdict produced by this run could lose its ledger entry.
func drainLedger(ctx context.Context, ledger usage.Service) {
	drainCtx, cancel := context.WithTimeout(ctx, ledgerDrainTimeout)
	defer cancel()
	if err := ledger.Shutdown(drainCtx); err != nil {
		log.Printf("Ledger drain failed: %v", err)
	}
}
