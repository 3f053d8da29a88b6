package bootstrap

import (
	"context"
	"log/slog"

	"github.com/beltranalain/argufiight-sub000/internal/debate"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/server"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
	"github.com/beltranalain/argufiight-sub000/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	DebateService      debate.Service
	DeadlineWorker     *worker.DeadlineWorker
	ModerationPool     *worker.Pool
	Ledger             usage.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components:
// 1. HTTP server (stop accepting new requests)
// 2. Deadline worker (cancel pending timers)
// 3. Debate service (drain in-flight AI responses)
// 4. Moderation pool (finish queued reviews)
// 5. Usage ledger (drain async invocation writes)
// 6. Event publisher (flush pending retries)
//
// The ledger drains after the services and pools because their last jobs may
// still enqueue invocation writes. Errors during shutdown are logged but do
// not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.DeadlineWorker != nil {
		if err := components.DeadlineWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDeadlineWorkerFailed, "error", err)
		}
	}

	if components.DebateService != nil {
		if err := components.DebateService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDebateShutdownFailed, "error", err)
		}
	}

	if components.ModerationPool != nil {
		components.ModerationPool.Stop()
	}

	if components.Ledger != nil {
		if err := components.Ledger.Shutdown(ctx); err != nil {
			slog.Error(LogMsgLedgerDrainFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
