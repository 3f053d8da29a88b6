package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/elimination"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/repository"
)

type TournamentHandler struct {
	scorer   elimination.Service
	verdicts repository.Verdict
}

func NewTournamentHandler(scorer elimination.Service, verdicts repository.Verdict) *TournamentHandler {
	return &TournamentHandler{scorer: scorer, verdicts: verdicts}
}

type RoundSubmissionRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	DisplayName   string `json:"display_name" validate:"required"`
	Content       string `json:"content"`
}

type ScoreRoundRequest struct {
	TournamentRoundID string                   `json:"tournament_round_id" validate:"required,uuid"`
	Topic             string                   `json:"topic" validate:"required"`
	Personality       string                   `json:"personality" validate:"required,personality"`
	Submissions       []RoundSubmissionRequest `json:"submissions" validate:"required,min=1,dive"`
}

// HandleScoreRound scores one King of the Hill round and persists the result.
// Scoring always resolves; a judging outage produces a degraded uniform score
// set rather than an error.
func (h *TournamentHandler) HandleScoreRound(w http.ResponseWriter, r *http.Request) {
	var req ScoreRoundRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Score round"); err != nil {
		return
	}

	roundID, _ := uuid.Parse(req.TournamentRoundID)
	submissions := make([]domain.RoundSubmission, 0, len(req.Submissions))
	for _, s := range req.Submissions {
		participantID, _ := uuid.Parse(s.ParticipantID)
		submissions = append(submissions, domain.RoundSubmission{
			ParticipantID: participantID,
			DisplayName:   s.DisplayName,
			Content:       s.Content,
		})
	}

	set, err := h.scorer.ScoreRound(r.Context(), elimination.Input{
		TournamentRoundID: roundID,
		Topic:             req.Topic,
		Submissions:       submissions,
		Personality:       persona.Key(req.Personality),
	})
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to score round", "error", err)
		respondServiceError(w, err)
		return
	}

	if err := h.verdicts.RecordRoundScores(r.Context(), set); err != nil {
		logger.FromContext(r.Context()).Error("Failed to record round scores", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, set)
}
