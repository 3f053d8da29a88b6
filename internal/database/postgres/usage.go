package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// UsageRepository implements the usage ledger repository for PostgreSQL
type UsageRepository struct {
	db *pgxpool.Pool
}

// NewUsageRepository creates a new UsageRepository
func NewUsageRepository(db *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{db: db}
}

// InsertInvocation appends one collaborator invocation to the ledger
func (r *UsageRepository) InsertInvocation(ctx context.Context, record *domain.InvocationRecord) error {
	const query = `
		INSERT INTO llm_invocations
			(provider, prompt_tokens, completion_tokens, success, error_message, latency_ms, subject_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		record.Provider, record.PromptTokens, record.CompletionTokens,
		record.Success, record.ErrorMessage, record.LatencyMs, record.SubjectID, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invocation: %w", err)
	}
	return nil
}
