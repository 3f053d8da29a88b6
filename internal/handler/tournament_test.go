package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/elimination"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
)

type fakeScorer struct {
	lastInput elimination.Input
	set       *domain.RoundScoreSet
}

func (f *fakeScorer) ScoreRound(ctx context.Context, in elimination.Input) (*domain.RoundScoreSet, error) {
	f.lastInput = in
	return f.set, nil
}

type fakeScoreStore struct {
	recorded *domain.RoundScoreSet
}

func (f *fakeScoreStore) RecordVerdict(ctx context.Context, verdict *domain.Verdict) error { return nil }

func (f *fakeScoreStore) GetVerdict(ctx context.Context, debateID uuid.UUID, judge string) (*domain.Verdict, error) {
	return nil, domain.ErrVerdictNotFound
}

func (f *fakeScoreStore) RecordRoundScores(ctx context.Context, scores *domain.RoundScoreSet) error {
	f.recorded = scores
	return nil
}

func TestHandleScoreRound(t *testing.T) {
	roundID := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()

	set := &domain.RoundScoreSet{
		ID:                roundID,
		TournamentRoundID: roundID,
		Judge:             string(persona.Balanced),
		Scores:            map[uuid.UUID]int{p1: 80, p2: 40},
		EliminateCount:    1,
	}
	scorer := &fakeScorer{set: set}
	store := &fakeScoreStore{}
	h := NewTournamentHandler(scorer, store)

	body, err := json.Marshal(ScoreRoundRequest{
		TournamentRoundID: roundID.String(),
		Topic:             "Is remote work better?",
		Personality:       string(persona.Balanced),
		Submissions: []RoundSubmissionRequest{
			{ParticipantID: p1.String(), DisplayName: "Ada", Content: "Yes, because focus"},
			{ParticipantID: p2.String(), DisplayName: "Ben", Content: ""},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournament/score", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleScoreRound(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.recorded)
	assert.Equal(t, set, store.recorded)

	// Non-submitters still reach the scorer with empty content
	require.Len(t, scorer.lastInput.Submissions, 2)
	assert.Equal(t, p2, scorer.lastInput.Submissions[1].ParticipantID)
	assert.Empty(t, scorer.lastInput.Submissions[1].Content)
	assert.Equal(t, persona.Balanced, scorer.lastInput.Personality)
}

func TestHandleScoreRoundValidation(t *testing.T) {
	h := NewTournamentHandler(&fakeScorer{}, &fakeScoreStore{})

	tests := []struct {
		name         string
		reqBody      interface{}
		expectedBody string
	}{
		{
			name: "unknown personality",
			reqBody: ScoreRoundRequest{
				TournamentRoundID: uuid.New().String(),
				Topic:             "topic",
				Personality:       "SARCASTIC",
				Submissions: []RoundSubmissionRequest{
					{ParticipantID: uuid.New().String(), DisplayName: "Ada"},
				},
			},
			expectedBody: "Invalid judge personality",
		},
		{
			name: "empty roster",
			reqBody: ScoreRoundRequest{
				TournamentRoundID: uuid.New().String(),
				Topic:             "topic",
				Personality:       string(persona.Balanced),
			},
			expectedBody: ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.reqBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/tournament/score", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			h.HandleScoreRound(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
