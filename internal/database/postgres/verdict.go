package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// VerdictRepository implements the verdict repository for PostgreSQL
type VerdictRepository struct {
	db *pgxpool.Pool
}

// NewVerdictRepository creates a new VerdictRepository
func NewVerdictRepository(db *pgxpool.Pool) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// RecordVerdict inserts a verdict. Verdicts are append-only and unique per
// (debate, judge); a concurrent duplicate is silently absorbed so repeated
// adjudication attempts after a crash stay idempotent.
func (r *VerdictRepository) RecordVerdict(ctx context.Context, verdict *domain.Verdict) error {
	const query = `
		INSERT INTO verdicts (id, debate_id, judge, winner, challenger_score, opponent_score, reasoning, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (debate_id, judge) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		verdict.ID, verdict.DebateID, verdict.Judge, verdict.Winner,
		verdict.ChallengerScore, verdict.OpponentScore, verdict.Reasoning, verdict.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	return nil
}

// GetVerdict retrieves the verdict a judge produced for a debate
func (r *VerdictRepository) GetVerdict(ctx context.Context, debateID uuid.UUID, judge string) (*domain.Verdict, error) {
	const query = `
		SELECT id, debate_id, judge, winner, challenger_score, opponent_score, reasoning, created_at
		FROM verdicts WHERE debate_id = $1 AND judge = $2`

	v := &domain.Verdict{}
	err := r.db.QueryRow(ctx, query, debateID, judge).Scan(
		&v.ID, &v.DebateID, &v.Judge, &v.Winner,
		&v.ChallengerScore, &v.OpponentScore, &v.Reasoning, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVerdictNotFound
		}
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}
	return v, nil
}

// RecordRoundScores inserts a King of the Hill round score set. Score and
// reasoning maps are stored as JSONB keyed by participant id.
func (r *VerdictRepository) RecordRoundScores(ctx context.Context, scores *domain.RoundScoreSet) error {
	scoresJSON, err := json.Marshal(scores.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	reasoningJSON, err := json.Marshal(scores.Reasoning)
	if err != nil {
		return fmt.Errorf("failed to marshal reasoning: %w", err)
	}

	const query = `
		INSERT INTO round_scores (id, tournament_round_id, judge, scores, reasoning,
		                          elimination_reasoning, eliminate_count, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tournament_round_id, judge) DO NOTHING`

	_, err = r.db.Exec(ctx, query,
		scores.ID, scores.TournamentRoundID, scores.Judge, scoresJSON, reasoningJSON,
		scores.EliminationReasoning, scores.EliminateCount, scores.Degraded, scores.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record round scores: %w", err)
	}
	return nil
}
