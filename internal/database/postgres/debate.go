package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// DebateRepository implements the debate repository for PostgreSQL
type DebateRepository struct {
	db *pgxpool.Pool
}

// NewDebateRepository creates a new DebateRepository
func NewDebateRepository(db *pgxpool.Pool) *DebateRepository {
	return &DebateRepository{db: db}
}

// GetDebate retrieves a debate with its full participant roster
func (r *DebateRepository) GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error) {
	const query = `
		SELECT id, topic, description, format, status, current_round, total_rounds,
		       COALESCE(round_deadline, 'epoch'::timestamptz), created_at
		FROM debates WHERE id = $1`

	d := &domain.Debate{}
	var deadline time.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Topic, &d.Description, &d.Format, &d.Status,
		&d.CurrentRound, &d.TotalRounds, &deadline, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDebateNotFound
		}
		return nil, fmt.Errorf("failed to get debate: %w", err)
	}
	if deadline.Unix() > 0 {
		d.RoundDeadline = deadline
	}

	if err := r.loadParticipants(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DebateRepository) loadParticipants(ctx context.Context, d *domain.Debate) error {
	const query = `
		SELECT participant_id, display_name, position, role, is_ai, personality, eliminated
		FROM debate_participants WHERE debate_id = $1
		ORDER BY role, display_name`

	rows, err := r.db.Query(ctx, query, d.ID)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Participant
		var role string
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Position, &role, &p.IsAI, &p.Personality, &p.Eliminated); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		switch role {
		case roleChallenger:
			d.Challenger = p
		case roleOpponent:
			opponent := p
			d.Opponent = &opponent
		}
		if d.Format == domain.FormatGroup {
			d.Participants = append(d.Participants, p)
		}
	}
	return rows.Err()
}

// GetStatements retrieves all statements of a debate in round order
func (r *DebateRepository) GetStatements(ctx context.Context, debateID uuid.UUID) ([]domain.Statement, error) {
	const query = `
		SELECT id, debate_id, author_id, round, content, created_at
		FROM statements WHERE debate_id = $1
		ORDER BY round, created_at`

	rows, err := r.db.Query(ctx, query, debateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	defer rows.Close()
	return scanStatements(rows)
}

// GetRoundStatements retrieves the statements of one round
func (r *DebateRepository) GetRoundStatements(ctx context.Context, debateID uuid.UUID, round int) ([]domain.Statement, error) {
	const query = `
		SELECT id, debate_id, author_id, round, content, created_at
		FROM statements WHERE debate_id = $1 AND round = $2
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, debateID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to get round statements: %w", err)
	}
	defer rows.Close()
	return scanStatements(rows)
}

func scanStatements(rows pgx.Rows) ([]domain.Statement, error) {
	stmts := make([]domain.Statement, 0)
	for rows.Next() {
		var s domain.Statement
		if err := rows.Scan(&s.ID, &s.DebateID, &s.AuthorID, &s.Round, &s.Content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		stmts = append(stmts, s)
	}
	return stmts, rows.Err()
}

// CreateStatement inserts a statement. The unique constraint on
// (debate_id, author_id, round) converts turn races into
// domain.ErrDuplicateSubmission.
func (r *DebateRepository) CreateStatement(ctx context.Context, statement *domain.Statement) error {
	const query = `
		INSERT INTO statements (id, debate_id, author_id, round, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		statement.ID, statement.DebateID, statement.AuthorID,
		statement.Round, statement.Content, statement.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrCodeUniqueViolation {
			return domain.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to create statement: %w", err)
	}
	return nil
}

// UpdateDebateRound advances a debate to a new round with a fresh deadline.
// The guard on current_round keeps stale or repeated advances from moving the
// round backwards.
func (r *DebateRepository) UpdateDebateRound(ctx context.Context, id uuid.UUID, currentRound int, roundDeadline time.Time) error {
	const query = `
		UPDATE debates SET current_round = $2, round_deadline = $3
		WHERE id = $1 AND status = 'ACTIVE' AND current_round < $2`

	_, err := r.db.Exec(ctx, query, id, currentRound, roundDeadline)
	if err != nil {
		return fmt.Errorf("failed to update debate round: %w", err)
	}
	return nil
}

// CompleteDebate transitions an active debate to COMPLETED
func (r *DebateRepository) CompleteDebate(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE debates SET status = 'COMPLETED' WHERE id = $1 AND status = 'ACTIVE'`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to complete debate: %w", err)
	}
	return nil
}

// MarkVerdictReady transitions a completed debate to VERDICT_READY
func (r *DebateRepository) MarkVerdictReady(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE debates SET status = 'VERDICT_READY' WHERE id = $1 AND status = 'COMPLETED'`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark verdict ready: %w", err)
	}
	return nil
}

// ListDebatesPastDeadline returns active debates whose round deadline has
// passed. Participant rosters are loaded for each, since expiry handling
// needs to know who failed to submit.
func (r *DebateRepository) ListDebatesPastDeadline(ctx context.Context, now time.Time) ([]domain.Debate, error) {
	const query = `
		SELECT id, topic, description, format, status, current_round, total_rounds,
		       round_deadline, created_at
		FROM debates
		WHERE status = 'ACTIVE' AND round_deadline IS NOT NULL AND round_deadline < $1
		ORDER BY round_deadline`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue debates: %w", err)
	}
	defer rows.Close()

	debates := make([]domain.Debate, 0)
	for rows.Next() {
		var d domain.Debate
		if err := rows.Scan(&d.ID, &d.Topic, &d.Description, &d.Format, &d.Status,
			&d.CurrentRound, &d.TotalRounds, &d.RoundDeadline, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debate: %w", err)
		}
		debates = append(debates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range debates {
		if err := r.loadParticipants(ctx, &debates[i]); err != nil {
			return nil, err
		}
	}
	return debates, nil
}
