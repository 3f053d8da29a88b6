package debate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
)

// submitFunc matches Service.SubmitStatement; the orchestration service wires
// itself in so AI submissions pass through the same turn validation as human
// ones.
type submitFunc func(ctx context.Context, debateID, authorID uuid.UUID, content string) (*domain.Statement, error)

// AIResponder generates debate statements for AI participants
type AIResponder struct {
	repo   statementReader
	client llm.Client
	ledger usage.Service
	submit submitFunc
}

// statementReader is the slice of the debate repository the responder needs
type statementReader interface {
	GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error)
	GetStatements(ctx context.Context, debateID uuid.UUID) ([]domain.Statement, error)
}

// NewAIResponder creates a responder for AI debate participants
func NewAIResponder(repo statementReader, client llm.Client, ledger usage.Service) *AIResponder {
	return &AIResponder{repo: repo, client: client, ledger: ledger}
}

// Respond generates and submits one statement for an AI participant. Failures
// are logged, not propagated: a silent AI participant eventually hits the
// round deadline like any human who walked away.
func (r *AIResponder) Respond(ctx context.Context, d *domain.Debate, p domain.Participant) {
	log := logger.FromContext(ctx)

	// Re-fetch; the debate may have moved since the trigger
	fresh, err := r.repo.GetDebate(ctx, d.ID)
	if err != nil {
		log.Error(LogMsgAIResponseFailed, "debate_id", d.ID, "participant_id", p.ID, "error", err)
		return
	}
	if fresh.Status != domain.DebateStatusActive {
		return
	}

	content, err := r.generate(ctx, fresh, p)
	if err != nil {
		metrics.LLMInvocations.WithLabelValues(metrics.ComponentAIResponse, metrics.OutcomeFailure).Inc()
		log.Error(LogMsgAIResponseFailed, "debate_id", d.ID, "participant_id", p.ID, "error", err)
		return
	}
	metrics.LLMInvocations.WithLabelValues(metrics.ComponentAIResponse, metrics.OutcomeSuccess).Inc()

	if _, err := r.submit(ctx, d.ID, p.ID, content); err != nil {
		// Losing the turn race or a round change is expected, not an incident
		if errors.Is(err, domain.ErrDuplicateSubmission) || errors.Is(err, domain.ErrNotYourTurn) {
			return
		}
		log.Error(LogMsgAIResponseFailed, "debate_id", d.ID, "participant_id", p.ID, "error", err)
		return
	}
	log.Info(LogMsgAIResponseSubmitted, "debate_id", d.ID, "participant_id", p.ID)
}

func (r *AIResponder) generate(ctx context.Context, d *domain.Debate, p domain.Participant) (string, error) {
	stmts, err := r.repo.GetStatements(ctx, d.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextFailedToGetStatements, err)
	}

	pers := persona.MustGet(persona.Key(p.Personality))

	req := llm.CompletionRequest{
		SystemPrompt: pers.SystemPersona,
		UserPrompt:   buildResponsePrompt(d, p, stmts),
		Temperature:  llm.TemperatureAIResponse,
		MaxTokens:    llm.DefaultMaxTokens,
	}

	start := time.Now()
	completion, err := r.client.Complete(ctx, req)
	latency := time.Since(start)
	metrics.LLMInvocationDuration.WithLabelValues(metrics.ComponentAIResponse).Observe(latency.Seconds())

	record := domain.InvocationRecord{
		Provider:  r.client.Provider(),
		Success:   err == nil,
		LatencyMs: latency.Milliseconds(),
		SubjectID: d.ID.String(),
	}
	if err != nil {
		record.ErrorMessage = err.Error()
	} else {
		record.PromptTokens = completion.PromptTokens
		record.CompletionTokens = completion.CompletionTokens
	}
	r.ledger.LogInvocation(ctx, record)

	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(completion.Text)
	if content == "" {
		return "", fmt.Errorf("empty completion: %w", domain.ErrMalformedResponse)
	}
	if len(content) > MaxStatementLength {
		content = content[:MaxStatementLength]
	}
	return content, nil
}

// buildResponsePrompt frames the debate so far from the AI participant's seat
func buildResponsePrompt(d *domain.Debate, p domain.Participant, stmts []domain.Statement) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a participant in a debate.\n", p.DisplayName)
	fmt.Fprintf(&b, "Topic: %s\n", d.Topic)
	if d.Description != "" {
		fmt.Fprintf(&b, "Context: %s\n", d.Description)
	}
	if p.Position != "" {
		fmt.Fprintf(&b, "Your position: %s\n", p.Position)
	}
	fmt.Fprintf(&b, "This is round %d of %d.\n\n", d.CurrentRound, d.TotalRounds)

	if len(stmts) > 0 {
		names := participantNames(d)
		b.WriteString("Statements so far:\n")
		for _, stmt := range stmts {
			if stmt.IsMissed() {
				continue
			}
			name := names[stmt.AuthorID]
			if name == "" {
				name = stmt.AuthorID.String()
			}
			fmt.Fprintf(&b, "Round %d, %s: %s\n", stmt.Round, name, stmt.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("Write your statement for this round. Argue your position directly and respond to the strongest opposing points. Reply with the statement text only.")

	return b.String()
}

func participantNames(d *domain.Debate) map[uuid.UUID]string {
	names := map[uuid.UUID]string{d.Challenger.ID: d.Challenger.DisplayName}
	if d.Opponent != nil {
		names[d.Opponent.ID] = d.Opponent.DisplayName
	}
	for _, p := range d.Participants {
		names[p.ID] = p.DisplayName
	}
	return names
}
