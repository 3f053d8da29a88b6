package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	records []domain.InvocationRecord
	err     error
}

func (r *recordingRepo) InsertInvocation(ctx context.Context, record *domain.InvocationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func TestLogInvocationWritesAsync(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)

	svc.LogInvocation(context.Background(), domain.InvocationRecord{
		Provider:  "openai",
		Success:   true,
		LatencyMs: 420,
		SubjectID: "debate-1",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	require.Equal(t, 1, repo.count())
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, "openai", repo.records[0].Provider)
	assert.False(t, repo.records[0].CreatedAt.IsZero(), "CreatedAt should be stamped")
}

func TestLogInvocationSwallowsRepoErrors(t *testing.T) {
	repo := &recordingRepo{err: errors.New("db down")}
	svc := NewService(repo)

	// Must not panic or propagate
	svc.LogInvocation(context.Background(), domain.InvocationRecord{Provider: "openai"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, svc.Shutdown(ctx))
}

func TestShutdownTimesOut(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo).(*service)

	// Simulate a hung write
	svc.wg.Add(1)
	defer svc.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, svc.Shutdown(ctx))
}
