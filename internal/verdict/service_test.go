package verdict

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
)

type stubClient struct {
	reply   string
	err     error
	lastReq llm.CompletionRequest
	calls   int
}

func (c *stubClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	c.calls++
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Completion{Text: c.reply, PromptTokens: 100, CompletionTokens: 50}, nil
}

func (c *stubClient) Provider() string { return "stub" }

type nopLedger struct{ records []domain.InvocationRecord }

func (l *nopLedger) LogInvocation(ctx context.Context, record domain.InvocationRecord) {
	l.records = append(l.records, record)
}

func (l *nopLedger) Shutdown(ctx context.Context) error { return nil }

func testDebate() *domain.Debate {
	challengerID := uuid.New()
	opponentID := uuid.New()
	return &domain.Debate{
		ID:          uuid.New(),
		Topic:       "Remote work is better than office work",
		Format:      domain.FormatOneOnOne,
		Status:      domain.DebateStatusActive,
		TotalRounds: 2,
		Challenger:  domain.Participant{ID: challengerID, DisplayName: "Ada", Position: "FOR"},
		Opponent:    &domain.Participant{ID: opponentID, DisplayName: "Grace", Position: "AGAINST"},
	}
}

func testStatements(d *domain.Debate) []domain.Statement {
	return []domain.Statement{
		{ID: uuid.New(), DebateID: d.ID, AuthorID: d.Challenger.ID, Round: 1, Content: "Commutes waste hours every day.", CreatedAt: time.Now()},
		{ID: uuid.New(), DebateID: d.ID, AuthorID: d.Opponent.ID, Round: 1, Content: "Offices build team cohesion.", CreatedAt: time.Now()},
	}
}

func TestJudgeDebateProducesVerdict(t *testing.T) {
	client := &stubClient{reply: `{"winner": "CHALLENGER", "reasoning": "Stronger evidence on productivity.", "challengerScore": 72, "opponentScore": 55}`}
	ledger := &nopLedger{}
	svc := NewService(client, ledger)

	d := testDebate()
	v, err := svc.JudgeDebate(context.Background(), Input{
		Debate:            d,
		Statements:        testStatements(d),
		NaturalCompletion: true,
		Personality:       persona.Balanced,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.WinnerChallenger, v.Winner)
	assert.Equal(t, 72, v.ChallengerScore)
	assert.Equal(t, 55, v.OpponentScore)
	assert.Equal(t, "Stronger evidence on productivity.", v.Reasoning)
	assert.Equal(t, d.ID, v.DebateID)
	assert.Equal(t, string(persona.Balanced), v.Judge)
	assert.Equal(t, 1, client.calls, "exactly one completion call per adjudication")
	assert.Equal(t, llm.TemperatureVerdict, client.lastReq.Temperature)

	require.Len(t, ledger.records, 1)
	assert.True(t, ledger.records[0].Success)
	assert.Equal(t, d.ID.String(), ledger.records[0].SubjectID)
}

func TestJudgeDebateClampsScores(t *testing.T) {
	client := &stubClient{reply: `{"winner": "OPPONENT", "reasoning": "ok", "challengerScore": 140, "opponentScore": -20}`}
	svc := NewService(client, &nopLedger{})

	d := testDebate()
	v, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Smart})

	require.NoError(t, err)
	assert.Equal(t, 100, v.ChallengerScore)
	assert.Equal(t, 0, v.OpponentScore)
}

func TestJudgeDebateDefaultsMissingScores(t *testing.T) {
	client := &stubClient{reply: `{"winner": "TIE", "reasoning": "evenly matched"}`}
	svc := NewService(client, &nopLedger{})

	d := testDebate()
	v, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Balanced})

	require.NoError(t, err)
	assert.Equal(t, domain.WinnerTie, v.Winner)
	assert.Equal(t, DefaultScore, v.ChallengerScore)
	assert.Equal(t, DefaultScore, v.OpponentScore)
}

func TestJudgeDebateStripsFences(t *testing.T) {
	client := &stubClient{reply: "```json\n{\"winner\": \"TIE\", \"reasoning\": \"close call\"}\n```"}
	svc := NewService(client, &nopLedger{})

	d := testDebate()
	v, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Balanced})

	require.NoError(t, err)
	assert.Equal(t, domain.WinnerTie, v.Winner)
}

func TestJudgeDebateHardFailures(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		wantErr error
	}{
		{
			name:    "collaborator unavailable",
			err:     fmt.Errorf("boom: %w", domain.ErrCollaboratorUnavailable),
			wantErr: domain.ErrCollaboratorUnavailable,
		},
		{
			name:    "not json",
			reply:   "I think the challenger wins!",
			wantErr: domain.ErrMalformedResponse,
		},
		{
			name:    "missing winner",
			reply:   `{"reasoning": "hmm"}`,
			wantErr: domain.ErrSchemaViolation,
		},
		{
			name:    "missing reasoning",
			reply:   `{"winner": "CHALLENGER"}`,
			wantErr: domain.ErrSchemaViolation,
		},
		{
			name:    "winner outside enum",
			reply:   `{"winner": "BOTH", "reasoning": "everyone wins"}`,
			wantErr: domain.ErrSchemaViolation,
		},
		{
			name:    "winner wrong type",
			reply:   `{"winner": 1, "reasoning": "numeric"}`,
			wantErr: domain.ErrSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{reply: tt.reply, err: tt.err}
			ledger := &nopLedger{}
			svc := NewService(client, ledger)

			d := testDebate()
			v, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Balanced})

			require.Error(t, err)
			assert.Nil(t, v, "no partial verdict on failure")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJudgeDebateRejectsGroupFormat(t *testing.T) {
	svc := NewService(&stubClient{}, &nopLedger{})

	d := testDebate()
	d.Format = domain.FormatGroup
	d.Opponent = nil

	_, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Personality: persona.Balanced})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJudgeDebateLogsFailedInvocation(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("timeout: %w", domain.ErrCollaboratorUnavailable)}
	ledger := &nopLedger{}
	svc := NewService(client, ledger)

	d := testDebate()
	_, err := svc.JudgeDebate(context.Background(), Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Balanced})

	require.Error(t, err)
	require.Len(t, ledger.records, 1, "failed invocations are still recorded")
	assert.False(t, ledger.records[0].Success)
	assert.NotEmpty(t, ledger.records[0].ErrorMessage)
}

func TestBuildDebateSummaryMarksMissedDeadlines(t *testing.T) {
	d := testDebate()
	stmts := []domain.Statement{
		{DebateID: d.ID, AuthorID: d.Challenger.ID, Round: 1, Content: "Opening point."},
		{DebateID: d.ID, AuthorID: d.Opponent.ID, Round: 1, Content: domain.StatementContentMissed},
	}

	summary := BuildDebateSummary(d, stmts)

	assert.Contains(t, summary, "Round 1:")
	assert.Contains(t, summary, "Ada (FOR): Opening point.")
	assert.Contains(t, summary, "Grace (AGAINST): "+MissedDeadlineMarker)
	assert.NotContains(t, summary, domain.StatementContentMissed)
}

func TestUserPromptFlagsForcedCompletion(t *testing.T) {
	d := testDebate()
	in := Input{Debate: d, Statements: testStatements(d), NaturalCompletion: false, Personality: persona.Balanced}

	prompt := buildUserPrompt(in, "")

	assert.Contains(t, prompt, "did not reach natural completion")
	assert.Contains(t, prompt, "Weigh missed deadlines negatively")
}

func TestUserPromptOmitsDeadlineNoteOnCleanDebate(t *testing.T) {
	d := testDebate()
	in := Input{Debate: d, Statements: testStatements(d), NaturalCompletion: true, Personality: persona.Balanced}

	prompt := buildUserPrompt(in, "")

	assert.NotContains(t, prompt, "Weigh missed deadlines negatively")
	assert.Contains(t, prompt, d.Topic)
	assert.Contains(t, prompt, "Ada (FOR)")
}
