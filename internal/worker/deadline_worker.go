package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/debate"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
)

// DeadlineWorker forces overdue debate rounds to completion. It combines two
// mechanisms: precise per-debate timers armed by ScheduleDeadline, and a
// periodic sweep that catches debates whose timers were lost to a restart.
// Both paths go through the idempotent AdvanceDebate, so firing twice is
// harmless.
type DeadlineWorker struct {
	BaseWorker
	svc           debate.Service
	sweepInterval time.Duration
	ticker        *time.Ticker
}

// NewDeadlineWorker creates a new DeadlineWorker
func NewDeadlineWorker(svc debate.Service, sweepInterval time.Duration) *DeadlineWorker {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	w := &DeadlineWorker{
		svc:           svc,
		sweepInterval: sweepInterval,
	}
	w.init()
	return w
}

// Start launches the periodic sweep loop
func (w *DeadlineWorker) Start() {
	w.ticker = time.NewTicker(w.sweepInterval)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ticker.C:
				w.sweep()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// ScheduleDeadline arms a timer that advances the debate when its round
// deadline passes. Re-scheduling the same debate replaces the previous timer.
func (w *DeadlineWorker) ScheduleDeadline(debateID uuid.UUID, deadline time.Time) {
	w.stopTimer(debateID)

	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}

	timer := time.AfterFunc(wait, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		w.removeTimer(debateID)
		w.fire(debateID)
	})
	w.registerTimer(debateID, timer)

	logger.Info(LogMsgDeadlineScheduled, "debate_id", debateID, "deadline", deadline)
}

// CancelDeadline drops the pending timer for a debate, if any
func (w *DeadlineWorker) CancelDeadline(debateID uuid.UUID) {
	w.stopTimer(debateID)
}

func (w *DeadlineWorker) fire(debateID uuid.UUID) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDeadlineFired, "debate_id", debateID)

		if err := w.svc.AdvanceDebate(ctx, debateID); err != nil {
			// The sweep will retry; AdvanceDebate is idempotent
			log.Error(LogMsgDeadlineAdvanceFail, "debate_id", debateID, "error", err)
		}
	}()
}

func (w *DeadlineWorker) sweep() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		if _, err := w.svc.ExpireOverdueRounds(ctx, time.Now()); err != nil {
			logger.FromContext(ctx).Error(LogMsgSweepFailed, "error", err)
		}
	}()
}

// Shutdown stops the sweep loop, cancels pending timers and waits for
// in-flight advances
func (w *DeadlineWorker) Shutdown(ctx context.Context) error {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	return w.shutdownInternal(ctx, "deadline worker")
}
