package elimination

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
)

// Input carries one King of the Hill round for scoring. Submissions must
// contain every active participant; a non-submitter appears with empty
// content, never missing.
type Input struct {
	TournamentRoundID uuid.UUID
	Topic             string
	Submissions       []domain.RoundSubmission
	Personality       persona.Key
}

// EliminateCount returns how many participants fall this round: a quarter of
// the active roster rounded up, and never fewer than one.
func (in Input) EliminateCount() int {
	n := len(in.Submissions)
	if n == 0 {
		return 0
	}
	count := int(math.Ceil(float64(n) * EliminationFraction))
	if count < 1 {
		count = 1
	}
	return count
}

// Service scores King of the Hill rounds. ScoreRound always returns a usable
// score set: collaborator failure degrades to uniform neutral scores instead
// of propagating an error, because a tournament round must always resolve.
type Service interface {
	ScoreRound(ctx context.Context, in Input) (*domain.RoundScoreSet, error)
}

type service struct {
	client llm.Client
	ledger usage.Service
}

// NewService creates a new elimination scoring service
func NewService(client llm.Client, ledger usage.Service) Service {
	return &service{client: client, ledger: ledger}
}

var scoreSchema = llm.Schema{
	Fields: []llm.Field{
		{Name: "scores", Type: llm.TypeObject, Required: true},
		{Name: "reasoning", Type: llm.TypeObject, Required: false},
		{Name: "eliminationReasoning", Type: llm.TypeString, Required: false},
	},
}

// ScoreRound makes a single completion call covering every submission in the
// round, then repairs the reply to completeness: every active participant
// gets exactly one score, synthesized neutrally if the judge omitted them,
// and ids outside the roster are dropped.
func (s *service) ScoreRound(ctx context.Context, in Input) (*domain.RoundScoreSet, error) {
	log := logger.FromContext(ctx)

	log.Info(LogMsgScoreRoundCalled,
		"tournament_round_id", in.TournamentRoundID,
		"participants", len(in.Submissions),
		"eliminate_count", in.EliminateCount())

	p := persona.MustGet(in.Personality)

	req := llm.CompletionRequest{
		SystemPrompt: p.SystemPersona,
		UserPrompt:   buildUserPrompt(in, p.StyleGuidance),
		Temperature:  llm.TemperatureElimination,
		MaxTokens:    llm.EliminationMaxTokens,
	}

	start := time.Now()
	completion, err := s.client.Complete(ctx, req)
	latency := time.Since(start)
	metrics.LLMInvocationDuration.WithLabelValues(metrics.ComponentElimination).Observe(latency.Seconds())

	record := domain.InvocationRecord{
		Provider:  s.client.Provider(),
		Success:   err == nil,
		LatencyMs: latency.Milliseconds(),
		SubjectID: in.TournamentRoundID.String(),
	}
	if err != nil {
		record.ErrorMessage = err.Error()
	} else {
		record.PromptTokens = completion.PromptTokens
		record.CompletionTokens = completion.CompletionTokens
	}
	s.ledger.LogInvocation(ctx, record)

	if err != nil {
		return s.degradedScoreSet(ctx, in, err), nil
	}

	parsed, err := llm.Parse(completion.Text, scoreSchema)
	if err != nil {
		return s.degradedScoreSet(ctx, in, err), nil
	}

	rawScores := llm.Object(parsed, "scores")
	rawReasoning := llm.Object(parsed, "reasoning")

	set := &domain.RoundScoreSet{
		ID:                   uuid.New(),
		TournamentRoundID:    in.TournamentRoundID,
		Judge:                string(in.Personality),
		Scores:               make(map[uuid.UUID]int, len(in.Submissions)),
		Reasoning:            make(map[uuid.UUID]string, len(in.Submissions)),
		EliminationReasoning: llm.String(parsed, "eliminationReasoning"),
		EliminateCount:       in.EliminateCount(),
		CreatedAt:            time.Now(),
	}

	roster := make(map[string]uuid.UUID, len(in.Submissions))
	for _, sub := range in.Submissions {
		roster[sub.ParticipantID.String()] = sub.ParticipantID
	}
	for key := range rawScores {
		if _, ok := roster[key]; !ok {
			log.Warn(LogMsgUnknownScoreKey,
				"tournament_round_id", in.TournamentRoundID,
				"participant_id", key)
		}
	}

	for _, sub := range in.Submissions {
		id := sub.ParticipantID
		key := id.String()

		if raw, ok := rawScores[key].(float64); ok {
			set.Scores[id] = llm.ClampScore(raw)
			if reason, ok := rawReasoning[key].(string); ok {
				set.Reasoning[id] = reason
			}
			continue
		}

		// Judge skipped this participant. Score neutrally rather than
		// letting an incomplete map corrupt the elimination ordering.
		set.Scores[id] = DefaultScore
		set.Reasoning[id] = OmittedReasoning
		metrics.EliminationScoreRepairs.Inc()
		log.Warn(LogMsgScoreRepaired,
			"tournament_round_id", in.TournamentRoundID,
			"participant_id", id,
			"display_name", sub.DisplayName)
	}

	metrics.LLMInvocations.WithLabelValues(metrics.ComponentElimination, metrics.OutcomeSuccess).Inc()
	metrics.EliminationRoundsScored.Inc()
	log.Info(LogMsgRoundScored,
		"tournament_round_id", in.TournamentRoundID,
		"eliminate_count", set.EliminateCount,
		"degraded", false)

	return set, nil
}

// degradedScoreSet is the uniform fallback applied when the collaborator
// failed or replied unusably. Every participant scores the same neutral
// value, so the subsequent elimination ordering falls back to deterministic
// tie-breaking instead of crashing the tournament.
func (s *service) degradedScoreSet(ctx context.Context, in Input, cause error) *domain.RoundScoreSet {
	metrics.LLMInvocations.WithLabelValues(metrics.ComponentElimination, metrics.OutcomeFailure).Inc()
	metrics.EliminationRoundsScored.Inc()
	logger.FromContext(ctx).Error(LogMsgDegradedFallback,
		"tournament_round_id", in.TournamentRoundID,
		"error", cause)

	set := &domain.RoundScoreSet{
		ID:                   uuid.New(),
		TournamentRoundID:    in.TournamentRoundID,
		Judge:                string(in.Personality),
		Scores:               make(map[uuid.UUID]int, len(in.Submissions)),
		Reasoning:            make(map[uuid.UUID]string, len(in.Submissions)),
		EliminationReasoning: DegradedReasoning,
		EliminateCount:       in.EliminateCount(),
		Degraded:             true,
		CreatedAt:            time.Now(),
	}
	for _, sub := range in.Submissions {
		set.Scores[sub.ParticipantID] = DefaultScore
		set.Reasoning[sub.ParticipantID] = DegradedReasoning
	}
	return set
}
