package debate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
)

type stubClient struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (c *stubClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Completion{Text: c.reply, PromptTokens: 80, CompletionTokens: 120}, nil
}

func (c *stubClient) Provider() string { return "stub" }

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type nopLedger struct{}

func (nopLedger) LogInvocation(ctx context.Context, record domain.InvocationRecord) {}
func (nopLedger) Shutdown(ctx context.Context) error                                { return nil }

func newAITestService(repo *fakeDebateRepo, client *stubClient) Service {
	responder := NewAIResponder(repo, client, nopLedger{})
	return NewService(repo, newFakeVerdictRepo(), &fakeJudge{}, responder, event.NewMemoryBus(), Config{
		RoundDuration:    time.Hour,
		JudgePersonality: persona.Balanced,
	})
}

func TestAIOpponentRespondsAfterHumanSubmission(t *testing.T) {
	d := oneOnOneDebate(2)
	d.Opponent.IsAI = true
	d.Opponent.Personality = string(persona.Calm)
	repo := newFakeDebateRepo(d)
	client := &stubClient{reply: "A measured rebuttal grounded in evidence."}
	svc := newAITestService(repo, client)

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening argument")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	roundOne, err := repo.GetRoundStatements(context.Background(), d.ID, 1)
	require.NoError(t, err)
	require.Len(t, roundOne, 2, "the AI opponent answered")

	var aiStmt *domain.Statement
	for i := range roundOne {
		if roundOne[i].AuthorID == d.Opponent.ID {
			aiStmt = &roundOne[i]
		}
	}
	require.NotNil(t, aiStmt)
	assert.Equal(t, "A measured rebuttal grounded in evidence.", aiStmt.Content)
	assert.Equal(t, 2, repo.currentRound(d.ID), "round advanced once both sides submitted")
}

func TestAIResponderFailureLeavesRoundOpen(t *testing.T) {
	d := oneOnOneDebate(2)
	d.Opponent.IsAI = true
	d.Opponent.Personality = string(persona.Witty)
	repo := newFakeDebateRepo(d)
	client := &stubClient{err: fmt.Errorf("down: %w", domain.ErrCollaboratorUnavailable)}
	svc := newAITestService(repo, client)

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening argument")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))

	roundOne, err := repo.GetRoundStatements(context.Background(), d.ID, 1)
	require.NoError(t, err)
	assert.Len(t, roundOne, 1, "no statement is forged for a failed generation")
	assert.Equal(t, 1, repo.currentRound(d.ID))
	assert.GreaterOrEqual(t, client.callCount(), 1)
}

func TestBuildResponsePromptIncludesHistoryAndPosition(t *testing.T) {
	d := oneOnOneDebate(2)
	stmts := []domain.Statement{
		{DebateID: d.ID, AuthorID: d.Challenger.ID, Round: 1, Content: "Homework steals childhood."},
		{DebateID: d.ID, AuthorID: d.Opponent.ID, Round: 1, Content: domain.StatementContentMissed},
	}

	prompt := buildResponsePrompt(d, *d.Opponent, stmts)

	assert.Contains(t, prompt, d.Topic)
	assert.Contains(t, prompt, "Your position: AGAINST")
	assert.Contains(t, prompt, "Homework steals childhood.")
	assert.NotContains(t, prompt, domain.StatementContentMissed, "missed markers are not replayed to participants")
}
