package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// Moderation defines the interface for persisting moderation decisions
type Moderation interface {
	RecordModerationDecision(ctx context.Context, decision *domain.ModerationDecision) error
	GetReport(ctx context.Context, id uuid.UUID) (*domain.Report, error)
}
