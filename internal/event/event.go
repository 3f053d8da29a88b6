package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
)

// Type represents the type of an event
type Type string

// Event types
const (
	RoundCompleted     = Type(domain.EventRoundCompleted)
	DebateCompleted    = Type(domain.EventDebateCompleted)
	VerdictReady       = Type(domain.EventVerdictReady)
	ModerationResolved = Type(domain.EventModerationResolved)
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// RoundCompletedPayloadV1 is the typed payload for round completion events
type RoundCompletedPayloadV1 struct {
	DebateID  string `json:"debate_id"`
	Round     int    `json:"round"`
	Expired   bool   `json:"expired"` // true when the deadline, not submissions, closed the round
	Timestamp int64  `json:"timestamp"`
}

// DebateCompletedPayloadV1 is the typed payload for debate completion events
type DebateCompletedPayloadV1 struct {
	DebateID          string `json:"debate_id"`
	Rounds            int    `json:"rounds"`
	NaturalCompletion bool   `json:"natural_completion"`
	Timestamp         int64  `json:"timestamp"`
}

// VerdictReadyPayloadV1 is the typed payload for verdict ready events
type VerdictReadyPayloadV1 struct {
	DebateID  string `json:"debate_id"`
	VerdictID string `json:"verdict_id"`
	Winner    string `json:"winner"`
	Timestamp int64  `json:"timestamp"`
}

// ModerationResolvedPayloadV1 is the typed payload for moderation resolution events
type ModerationResolvedPayloadV1 struct {
	DecisionID  string `json:"decision_id"`
	SubjectID   string `json:"subject_id"`
	SubjectType string `json:"subject_type"`
	Action      string `json:"action"`
	Fallback    bool   `json:"fallback"`
	Timestamp   int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewRoundCompletedEvent creates a new round completed event
func NewRoundCompletedEvent(debateID uuid.UUID, round int, expired bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundCompleted,
		Payload: RoundCompletedPayloadV1{
			DebateID:  debateID.String(),
			Round:     round,
			Expired:   expired,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewDebateCompletedEvent creates a new debate completed event
func NewDebateCompletedEvent(debateID uuid.UUID, rounds int, natural bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DebateCompleted,
		Payload: DebateCompletedPayloadV1{
			DebateID:          debateID.String(),
			Rounds:            rounds,
			NaturalCompletion: natural,
			Timestamp:         time.Now().Unix(),
		},
	}
}

// NewVerdictReadyEvent creates a new verdict ready event
func NewVerdictReadyEvent(verdict *domain.Verdict) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    VerdictReady,
		Payload: VerdictReadyPayloadV1{
			DebateID:  verdict.DebateID.String(),
			VerdictID: verdict.ID.String(),
			Winner:    string(verdict.Winner),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewModerationResolvedEvent creates a new moderation resolved event
func NewModerationResolvedEvent(decision *domain.ModerationDecision) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ModerationResolved,
		Payload: ModerationResolvedPayloadV1{
			DecisionID:  decision.ID.String(),
			SubjectID:   decision.SubjectID.String(),
			SubjectType: string(decision.SubjectType),
			Action:      string(decision.Action),
			Fallback:    decision.Fallback,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
