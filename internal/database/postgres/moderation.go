package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// ModerationRepository implements the moderation repository for PostgreSQL
type ModerationRepository struct {
	db *pgxpool.Pool
}

// NewModerationRepository creates a new ModerationRepository
func NewModerationRepository(db *pgxpool.Pool) *ModerationRepository {
	return &ModerationRepository{db: db}
}

// RecordModerationDecision inserts one moderation decision
func (r *ModerationRepository) RecordModerationDecision(ctx context.Context, decision *domain.ModerationDecision) error {
	const query = `
		INSERT INTO moderation_decisions
			(id, subject_id, subject_type, action, confidence, reasoning, severity, fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		decision.ID, decision.SubjectID, decision.SubjectType, decision.Action,
		decision.Confidence, decision.Reasoning, decision.Severity, decision.Fallback, decision.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record moderation decision: %w", err)
	}
	return nil
}

// GetReport retrieves a report by id
func (r *ModerationRepository) GetReport(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const query = `
		SELECT id, reason, description, reported_content, created_at
		FROM reports WHERE id = $1`

	report := &domain.Report{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Reason, &report.Description, &report.ReportedContent, &report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}
