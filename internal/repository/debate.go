package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// Debate defines the interface for data access required by the debate
// orchestration service. CreateStatement returns domain.ErrDuplicateSubmission
// when the (debate, author, round) triple already exists; that uniqueness
// constraint is the concurrency guard for turn races.
type Debate interface {
	GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error)
	GetStatements(ctx context.Context, debateID uuid.UUID) ([]domain.Statement, error)
	GetRoundStatements(ctx context.Context, debateID uuid.UUID, round int) ([]domain.Statement, error)
	CreateStatement(ctx context.Context, statement *domain.Statement) error
	UpdateDebateRound(ctx context.Context, id uuid.UUID, currentRound int, roundDeadline time.Time) error
	CompleteDebate(ctx context.Context, id uuid.UUID) error
	MarkVerdictReady(ctx context.Context, id uuid.UUID) error
	ListDebatesPastDeadline(ctx context.Context, now time.Time) ([]domain.Debate, error)
}

// Verdict defines the interface for persisting adjudication results
type Verdict interface {
	RecordVerdict(ctx context.Context, verdict *domain.Verdict) error
	GetVerdict(ctx context.Context, debateID uuid.UUID, judge string) (*domain.Verdict, error)
	RecordRoundScores(ctx context.Context, scores *domain.RoundScoreSet) error
}
