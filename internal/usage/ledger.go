package usage

import (
	"context"
	"sync"
	"time"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/repository"
)

// Service defines the interface for the usage ledger. LogInvocation is
// fire-and-forget: it never blocks the caller and a failed write never
// propagates beyond a log line.
type Service interface {
	LogInvocation(ctx context.Context, record domain.InvocationRecord)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo repository.Usage
	wg   sync.WaitGroup // Tracks async writes for graceful shutdown
}

// NewService creates a new usage ledger service
func NewService(repo repository.Usage) Service {
	return &service{repo: repo}
}

// LogInvocation records one collaborator invocation asynchronously.
// Run with a detached context so request cancellation does not drop the entry.
func (s *service) LogInvocation(ctx context.Context, record domain.InvocationRecord) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.repo.InsertInvocation(writeCtx, &record); err != nil {
			logger.FromContext(ctx).Warn(LogMsgFailedToRecordInvocation,
				"provider", record.Provider,
				"subject_id", record.SubjectID,
				"error", err)
		}
	}()
}

// Shutdown waits for in-flight ledger writes to complete
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDownLedger)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgLedgerShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgLedgerShutdownForced)
		return ctx.Err()
	}
}
