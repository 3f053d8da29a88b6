package repository

import (
	"context"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// Usage defines the interface for the collaborator invocation ledger
type Usage interface {
	InsertInvocation(ctx context.Context, record *domain.InvocationRecord) error
}
