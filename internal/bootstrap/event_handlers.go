package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/worker"
)

// RegisterDeadlineScheduler keeps the deadline worker's timers in step with
// round transitions. Each completed round arms a timer for the next round's
// deadline; a completed or adjudicated debate drops its timer. A timer that
// fires after its debate settled is harmless, advancing is idempotent.
func RegisterDeadlineScheduler(bus event.Bus, deadlineWorker *worker.DeadlineWorker, roundDuration time.Duration) {
	bus.Subscribe(event.RoundCompleted, func(ctx context.Context, e event.Event) error {
		payload, ok := e.Payload.(event.RoundCompletedPayloadV1)
		if !ok {
			return nil
		}
		debateID, err := uuid.Parse(payload.DebateID)
		if err != nil {
			return err
		}
		deadlineWorker.ScheduleDeadline(debateID, time.Now().Add(roundDuration))
		return nil
	})

	bus.Subscribe(event.DebateCompleted, func(ctx context.Context, e event.Event) error {
		payload, ok := e.Payload.(event.DebateCompletedPayloadV1)
		if !ok {
			return nil
		}
		debateID, err := uuid.Parse(payload.DebateID)
		if err != nil {
			return err
		}
		deadlineWorker.CancelDeadline(debateID)
		return nil
	})

	slog.Info(LogMsgDeadlineSchedulerWired)
}
