package debate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/verdict"
)

type fakeDebateRepo struct {
	mu         sync.Mutex
	debates    map[uuid.UUID]*domain.Debate
	statements []domain.Statement
}

func newFakeDebateRepo(debates ...*domain.Debate) *fakeDebateRepo {
	repo := &fakeDebateRepo{debates: make(map[uuid.UUID]*domain.Debate)}
	for _, d := range debates {
		repo.debates[d.ID] = d
	}
	return repo
}

func (r *fakeDebateRepo) GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debates[id]
	if !ok {
		return nil, domain.ErrDebateNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDebateRepo) GetStatements(ctx context.Context, debateID uuid.UUID) ([]domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Statement, 0)
	for _, s := range r.statements {
		if s.DebateID == debateID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeDebateRepo) GetRoundStatements(ctx context.Context, debateID uuid.UUID, round int) ([]domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Statement, 0)
	for _, s := range r.statements {
		if s.DebateID == debateID && s.Round == round {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeDebateRepo) CreateStatement(ctx context.Context, statement *domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.statements {
		if s.DebateID == statement.DebateID && s.AuthorID == statement.AuthorID && s.Round == statement.Round {
			return domain.ErrDuplicateSubmission
		}
	}
	r.statements = append(r.statements, *statement)
	return nil
}

func (r *fakeDebateRepo) UpdateDebateRound(ctx context.Context, id uuid.UUID, currentRound int, roundDeadline time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debates[id]
	if !ok {
		return domain.ErrDebateNotFound
	}
	d.CurrentRound = currentRound
	d.RoundDeadline = roundDeadline
	return nil
}

func (r *fakeDebateRepo) CompleteDebate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debates[id]
	if !ok {
		return domain.ErrDebateNotFound
	}
	d.Status = domain.DebateStatusCompleted
	return nil
}

func (r *fakeDebateRepo) MarkVerdictReady(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.debates[id]
	if !ok {
		return domain.ErrDebateNotFound
	}
	d.Status = domain.DebateStatusVerdictReady
	return nil
}

func (r *fakeDebateRepo) ListDebatesPastDeadline(ctx context.Context, now time.Time) ([]domain.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Debate, 0)
	for _, d := range r.debates {
		if d.Status == domain.DebateStatusActive && !d.RoundDeadline.IsZero() && now.After(d.RoundDeadline) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDebateRepo) status(id uuid.UUID) domain.DebateStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debates[id].Status
}

func (r *fakeDebateRepo) currentRound(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debates[id].CurrentRound
}

type fakeVerdictRepo struct {
	mu       sync.Mutex
	verdicts map[string]*domain.Verdict
	scores   []domain.RoundScoreSet
}

func newFakeVerdictRepo() *fakeVerdictRepo {
	return &fakeVerdictRepo{verdicts: make(map[string]*domain.Verdict)}
}

func verdictKey(debateID uuid.UUID, judge string) string {
	return debateID.String() + "/" + judge
}

func (r *fakeVerdictRepo) RecordVerdict(ctx context.Context, v *domain.Verdict) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts[verdictKey(v.DebateID, v.Judge)] = v
	return nil
}

func (r *fakeVerdictRepo) GetVerdict(ctx context.Context, debateID uuid.UUID, judge string) (*domain.Verdict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.verdicts[verdictKey(debateID, judge)]
	if !ok {
		return nil, domain.ErrVerdictNotFound
	}
	return v, nil
}

func (r *fakeVerdictRepo) RecordRoundScores(ctx context.Context, scores *domain.RoundScoreSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, *scores)
	return nil
}

type fakeJudge struct {
	mu    sync.Mutex
	err   error
	calls int
	last  verdict.Input
}

func (j *fakeJudge) JudgeDebate(ctx context.Context, in verdict.Input) (*domain.Verdict, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls++
	j.last = in
	if j.err != nil {
		return nil, j.err
	}
	return &domain.Verdict{
		ID:              uuid.New(),
		DebateID:        in.Debate.ID,
		Judge:           string(in.Personality),
		Winner:          domain.WinnerChallenger,
		ChallengerScore: 70,
		OpponentScore:   60,
		Reasoning:       "stronger case",
		CreatedAt:       time.Now(),
	}, nil
}

func (j *fakeJudge) callCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.calls
}

func oneOnOneDebate(rounds int) *domain.Debate {
	return &domain.Debate{
		ID:            uuid.New(),
		Topic:         "Homework should be abolished",
		Format:        domain.FormatOneOnOne,
		Status:        domain.DebateStatusActive,
		CurrentRound:  1,
		TotalRounds:   rounds,
		RoundDeadline: time.Now().Add(time.Hour),
		Challenger:    domain.Participant{ID: uuid.New(), DisplayName: "Ada", Position: "FOR"},
		Opponent:      &domain.Participant{ID: uuid.New(), DisplayName: "Grace", Position: "AGAINST"},
	}
}

func groupDebate(participants int) *domain.Debate {
	d := &domain.Debate{
		ID:            uuid.New(),
		Topic:         "Best city for a startup",
		Format:        domain.FormatGroup,
		Status:        domain.DebateStatusActive,
		CurrentRound:  1,
		TotalRounds:   3,
		RoundDeadline: time.Now().Add(time.Hour),
	}
	for i := 0; i < participants; i++ {
		d.Participants = append(d.Participants, domain.Participant{
			ID:          uuid.New(),
			DisplayName: fmt.Sprintf("Speaker %d", i+1),
		})
	}
	d.Challenger = d.Participants[0]
	return d
}

func newTestService(repo *fakeDebateRepo, verdicts *fakeVerdictRepo, judge *fakeJudge) Service {
	return NewService(repo, verdicts, judge, nil, event.NewMemoryBus(), Config{
		RoundDuration:    time.Hour,
		JudgePersonality: persona.Balanced,
	})
}

func TestSubmitStatementChallengerFirst(t *testing.T) {
	d := oneOnOneDebate(3)
	repo := newFakeDebateRepo(d)
	svc := newTestService(repo, newFakeVerdictRepo(), &fakeJudge{})

	// Opponent cannot open the round
	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "me first")
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)

	stmt, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening argument")
	require.NoError(t, err)
	assert.Equal(t, 1, stmt.Round)

	// Round is still open, waiting for the opponent
	assert.Equal(t, 1, repo.currentRound(d.ID))

	_, err = svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "rebuttal")
	require.NoError(t, err)

	// Both sides in; round advances and order resets to the challenger
	assert.Equal(t, 2, repo.currentRound(d.ID))
	_, err = svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "again me first")
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)
}

func TestSubmitStatementDuplicate(t *testing.T) {
	d := oneOnOneDebate(3)
	svc := newTestService(newFakeDebateRepo(d), newFakeVerdictRepo(), &fakeJudge{})

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening")
	require.NoError(t, err)

	// Challenger's second submission in the same round is out of turn
	_, err = svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "more")
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)
}

func TestSubmitStatementValidation(t *testing.T) {
	d := oneOnOneDebate(3)
	svc := newTestService(newFakeDebateRepo(d), newFakeVerdictRepo(), &fakeJudge{})

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SubmitStatement(context.Background(), uuid.New(), d.Challenger.ID, "hello")
	assert.ErrorIs(t, err, domain.ErrDebateNotFound)

	_, err = svc.SubmitStatement(context.Background(), d.ID, uuid.New(), "stranger")
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)
}

func TestFinalRoundTriggersAdjudication(t *testing.T) {
	d := oneOnOneDebate(1)
	repo := newFakeDebateRepo(d)
	verdicts := newFakeVerdictRepo()
	judge := &fakeJudge{}
	svc := newTestService(repo, verdicts, judge)

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening")
	require.NoError(t, err)
	_, err = svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "closing")
	require.NoError(t, err)

	assert.Equal(t, domain.DebateStatusVerdictReady, repo.status(d.ID))
	assert.Equal(t, 1, judge.callCount())

	v, err := verdicts.GetVerdict(context.Background(), d.ID, string(persona.Balanced))
	require.NoError(t, err)
	assert.Equal(t, domain.WinnerChallenger, v.Winner)
	assert.True(t, judge.last.NaturalCompletion)
}

func TestAdvanceDebateIdempotent(t *testing.T) {
	d := oneOnOneDebate(1)
	repo := newFakeDebateRepo(d)
	judge := &fakeJudge{}
	svc := newTestService(repo, newFakeVerdictRepo(), judge)

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening")
	require.NoError(t, err)
	_, err = svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "closing")
	require.NoError(t, err)

	// Repeated advances find nothing left to do and never re-judge
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.AdvanceDebate(context.Background(), d.ID))
	}
	assert.Equal(t, 1, judge.callCount())
	assert.Equal(t, domain.DebateStatusVerdictReady, repo.status(d.ID))
}

func TestAdvanceDebateIncompleteRoundIsNoOp(t *testing.T) {
	d := oneOnOneDebate(3)
	repo := newFakeDebateRepo(d)
	svc := newTestService(repo, newFakeVerdictRepo(), &fakeJudge{})

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening")
	require.NoError(t, err)

	require.NoError(t, svc.AdvanceDebate(context.Background(), d.ID))
	assert.Equal(t, 1, repo.currentRound(d.ID))
	assert.Equal(t, domain.DebateStatusActive, repo.status(d.ID))
}

func TestExpirySynthesizesMissedStatements(t *testing.T) {
	d := oneOnOneDebate(1)
	d.RoundDeadline = time.Now().Add(-time.Minute)
	repo := newFakeDebateRepo(d)
	judge := &fakeJudge{}
	svc := newTestService(repo, newFakeVerdictRepo(), judge)

	require.NoError(t, svc.AdvanceDebate(context.Background(), d.ID))

	stmts, err := repo.GetStatements(context.Background(), d.ID)
	require.NoError(t, err)
	require.Len(t, stmts, 2, "both sides get a missed marker")
	for _, s := range stmts {
		assert.True(t, s.IsMissed())
		assert.Equal(t, domain.StatementContentMissed, s.Content)
	}

	assert.Equal(t, domain.DebateStatusVerdictReady, repo.status(d.ID))
	assert.False(t, judge.last.NaturalCompletion, "expiry is not a natural completion")
}

func TestExpiryAdvancesMidDebate(t *testing.T) {
	d := oneOnOneDebate(3)
	d.RoundDeadline = time.Now().Add(-time.Minute)
	repo := newFakeDebateRepo(d)
	svc := newTestService(repo, newFakeVerdictRepo(), &fakeJudge{})

	// Challenger submitted, opponent went silent past the deadline
	repo.statements = append(repo.statements, domain.Statement{
		ID: uuid.New(), DebateID: d.ID, AuthorID: d.Challenger.ID, Round: 1, Content: "opening",
	})

	require.NoError(t, svc.AdvanceDebate(context.Background(), d.ID))

	assert.Equal(t, 2, repo.currentRound(d.ID))
	roundOne, _ := repo.GetRoundStatements(context.Background(), d.ID, 1)
	require.Len(t, roundOne, 2)
}

func TestGroupRoundCompletesOnAllSubmissions(t *testing.T) {
	d := groupDebate(3)
	repo := newFakeDebateRepo(d)
	svc := newTestService(repo, newFakeVerdictRepo(), &fakeJudge{})

	for _, p := range d.Participants {
		_, err := svc.SubmitStatement(context.Background(), d.ID, p.ID, "my take")
		require.NoError(t, err)
	}

	assert.Equal(t, 2, repo.currentRound(d.ID), "group round advances once all actives submit")
}

func TestJudgeFailureIsRetriable(t *testing.T) {
	d := oneOnOneDebate(1)
	repo := newFakeDebateRepo(d)
	judge := &fakeJudge{err: fmt.Errorf("down: %w", domain.ErrCollaboratorUnavailable)}
	svc := newTestService(repo, newFakeVerdictRepo(), judge)

	_, err := svc.SubmitStatement(context.Background(), d.ID, d.Challenger.ID, "opening")
	require.NoError(t, err)
	// The opponent's statement lands even though judging fails afterwards
	stmt, err := svc.SubmitStatement(context.Background(), d.ID, d.Opponent.ID, "closing")
	require.NoError(t, err)
	require.NotNil(t, stmt)

	assert.Equal(t, domain.DebateStatusCompleted, repo.status(d.ID))

	// Collaborator recovers; a later advance finishes the job
	judge.mu.Lock()
	judge.err = nil
	judge.mu.Unlock()
	require.NoError(t, svc.AdvanceDebate(context.Background(), d.ID))
	assert.Equal(t, domain.DebateStatusVerdictReady, repo.status(d.ID))
	assert.Equal(t, 2, judge.callCount())
}

func TestExpireOverdueRounds(t *testing.T) {
	overdue := oneOnOneDebate(1)
	overdue.RoundDeadline = time.Now().Add(-time.Minute)
	current := oneOnOneDebate(1)
	repo := newFakeDebateRepo(overdue, current)
	svc := newTestService(repo, newFakeVerdictRepo(), &fakeJudge{})

	processed, err := svc.ExpireOverdueRounds(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, processed)
	assert.Equal(t, domain.DebateStatusVerdictReady, repo.status(overdue.ID))
	assert.Equal(t, domain.DebateStatusActive, repo.status(current.ID))
}
