package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/logger"
)

// BaseWorker holds the timer bookkeeping shared by background workers that
// schedule one-shot work per entity.
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[uuid.UUID]*time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// init makes the zero value usable; embedders call it from their constructor
func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

func (w *BaseWorker) stopTimer(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[id]; ok {
		timer.Stop()
		delete(w.timers, id)
	}
}

func (w *BaseWorker) registerTimer(id uuid.UUID, timer *time.Timer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timers[id] = timer
}

func (w *BaseWorker) removeTimer(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.timers, id)
}

// shutdownInternal cancels pending timers and waits for in-flight executions
// until ctx expires.
func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	close(w.shutdown)

	w.mu.Lock()
	cancelled := len(w.timers)
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[uuid.UUID]*time.Timer)
	w.mu.Unlock()

	if cancelled > 0 {
		log.Info("Cancelled pending executions", "worker", workerName, "count", cancelled)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
