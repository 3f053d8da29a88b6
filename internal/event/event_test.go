package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

func TestMemoryBusPublishesToSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var got []Event
	bus.Subscribe(RoundCompleted, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	debateID := uuid.New()
	err := bus.Publish(context.Background(), NewRoundCompletedEvent(debateID, 2, false))
	require.NoError(t, err)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(RoundCompletedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, debateID.String(), payload.DebateID)
	assert.Equal(t, 2, payload.Round)
	assert.False(t, payload.Expired)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewDebateCompletedEvent(uuid.New(), 3, true))
	assert.NoError(t, err)
}

func TestMemoryBusHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()

	called := 0
	bus.Subscribe(VerdictReady, func(ctx context.Context, e Event) error {
		return errors.New("handler one failed")
	})
	bus.Subscribe(VerdictReady, func(ctx context.Context, e Event) error {
		called++
		return nil
	})

	verdict := &domain.Verdict{ID: uuid.New(), DebateID: uuid.New(), Winner: domain.WinnerTie}
	err := bus.Publish(context.Background(), NewVerdictReadyEvent(verdict))

	assert.Error(t, err)
	assert.Equal(t, 1, called)
}

func TestResilientPublisherRetriesThenDeadLetters(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(ModerationResolved, func(ctx context.Context, e Event) error {
		return errors.New("always failing")
	})

	deadLetterPath := filepath.Join(t.TempDir(), "deadletter.jsonl")
	pub := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})

	decision := &domain.ModerationDecision{
		ID:          uuid.New(),
		SubjectID:   uuid.New(),
		SubjectType: domain.SubjectStatement,
		Action:      domain.ActionEscalate,
		Fallback:    true,
	}
	err := pub.Publish(context.Background(), NewModerationResolvedEvent(decision))
	require.NoError(t, err, "caller is decoupled from retry failures")

	pub.Wait()

	data, err := os.ReadFile(deadLetterPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), decision.ID.String())
	assert.Contains(t, string(data), string(ModerationResolved))
}

func TestResilientPublisherRecovery(t *testing.T) {
	bus := NewMemoryBus()

	failures := 1
	delivered := make(chan Event, 1)
	bus.Subscribe(DebateCompleted, func(ctx context.Context, e Event) error {
		if failures > 0 {
			failures--
			return errors.New("transient")
		}
		delivered <- e
		return nil
	})

	pub := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "deadletter.jsonl"),
	})

	require.NoError(t, pub.Publish(context.Background(), NewDebateCompletedEvent(uuid.New(), 3, true)))
	pub.Wait()

	select {
	case e := <-delivered:
		assert.Equal(t, DebateCompleted, e.Type)
	default:
		t.Fatal("event was never delivered after retry")
	}
}
