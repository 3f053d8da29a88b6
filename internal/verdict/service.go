package verdict

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
)

// Input carries everything the judge needs for one adjudication
type Input struct {
	Debate     *domain.Debate
	Statements []domain.Statement
	// NaturalCompletion is false when the debate was forced complete by
	// deadline expiry rather than finishing all rounds
	NaturalCompletion bool
	Personality       persona.Key
}

// Service defines the interface for 1-on-1 debate adjudication.
// JudgeDebate either returns a fully valid verdict or a typed error; there is
// no partial or fallback verdict for this format.
type Service interface {
	JudgeDebate(ctx context.Context, in Input) (*domain.Verdict, error)
}

type service struct {
	client llm.Client
	ledger usage.Service
}

// NewService creates a new verdict service
func NewService(client llm.Client, ledger usage.Service) Service {
	return &service{client: client, ledger: ledger}
}

var verdictSchema = llm.Schema{
	Fields: []llm.Field{
		{Name: "winner", Type: llm.TypeString, Required: true},
		{Name: "reasoning", Type: llm.TypeString, Required: true},
		{Name: "challengerScore", Type: llm.TypeNumber, Required: false},
		{Name: "opponentScore", Type: llm.TypeNumber, Required: false},
	},
}

// JudgeDebate renders the statement history for the configured judge persona,
// makes a single completion call and validates the reply against the verdict
// schema. Scores outside [0,100] are clamped; a missing winner or reasoning
// is a hard failure surfaced to the caller.
func (s *service) JudgeDebate(ctx context.Context, in Input) (*domain.Verdict, error) {
	log := logger.FromContext(ctx)

	if in.Debate == nil || in.Debate.Format != domain.FormatOneOnOne || in.Debate.Opponent == nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInvalidDebate, domain.ErrInvalidInput)
	}

	log.Info(LogMsgJudgeDebateCalled,
		"debate_id", in.Debate.ID,
		"personality", in.Personality,
		"natural_completion", in.NaturalCompletion)

	p := persona.MustGet(in.Personality)

	req := llm.CompletionRequest{
		SystemPrompt: p.SystemPersona,
		UserPrompt:   buildUserPrompt(in, p.StyleGuidance),
		Temperature:  llm.TemperatureVerdict,
		MaxTokens:    llm.DefaultMaxTokens,
	}

	start := time.Now()
	completion, err := s.client.Complete(ctx, req)
	latency := time.Since(start)
	metrics.LLMInvocationDuration.WithLabelValues(metrics.ComponentVerdict).Observe(latency.Seconds())

	record := domain.InvocationRecord{
		Provider:  s.client.Provider(),
		Success:   err == nil,
		LatencyMs: latency.Milliseconds(),
		SubjectID: in.Debate.ID.String(),
	}
	if err != nil {
		record.ErrorMessage = err.Error()
	} else {
		record.PromptTokens = completion.PromptTokens
		record.CompletionTokens = completion.CompletionTokens
	}
	s.ledger.LogInvocation(ctx, record)

	if err != nil {
		metrics.LLMInvocations.WithLabelValues(metrics.ComponentVerdict, metrics.OutcomeFailure).Inc()
		log.Error(LogMsgAdjudicationFailed, "debate_id", in.Debate.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrContextCompletionFailed, err)
	}

	parsed, err := llm.Parse(completion.Text, verdictSchema)
	if err != nil {
		metrics.LLMInvocations.WithLabelValues(metrics.ComponentVerdict, metrics.OutcomeFailure).Inc()
		log.Error(LogMsgAdjudicationFailed, "debate_id", in.Debate.ID, "error", err)
		return nil, err
	}

	winner := domain.VerdictWinner(llm.String(parsed, "winner"))
	if !domain.ValidWinner(winner) {
		metrics.LLMInvocations.WithLabelValues(metrics.ComponentVerdict, metrics.OutcomeFailure).Inc()
		err := fmt.Errorf("%s %q: %w", ErrContextInvalidWinner, winner, domain.ErrSchemaViolation)
		log.Error(LogMsgAdjudicationFailed, "debate_id", in.Debate.ID, "error", err)
		return nil, err
	}

	v := &domain.Verdict{
		ID:              uuid.New(),
		DebateID:        in.Debate.ID,
		Judge:           string(in.Personality),
		Winner:          winner,
		ChallengerScore: llm.ClampScore(llm.Number(parsed, "challengerScore", DefaultScore)),
		OpponentScore:   llm.ClampScore(llm.Number(parsed, "opponentScore", DefaultScore)),
		Reasoning:       llm.String(parsed, "reasoning"),
		CreatedAt:       time.Now(),
	}

	metrics.LLMInvocations.WithLabelValues(metrics.ComponentVerdict, metrics.OutcomeSuccess).Inc()
	metrics.VerdictsRecorded.WithLabelValues(string(v.Winner)).Inc()
	log.Info(LogMsgVerdictProduced,
		"debate_id", v.DebateID,
		"winner", v.Winner,
		"challenger_score", v.ChallengerScore,
		"opponent_score", v.OpponentScore)

	return v, nil
}
