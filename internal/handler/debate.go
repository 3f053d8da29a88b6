package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/debate"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
)

type DebateHandler struct {
	service debate.Service
}

func NewDebateHandler(service debate.Service) *DebateHandler {
	return &DebateHandler{service: service}
}

func (h *DebateHandler) HandleGetDebate(w http.ResponseWriter, r *http.Request) {
	debateID, ok := getDebateID(w, r)
	if !ok {
		return
	}

	d, err := h.service.GetDebate(r.Context(), debateID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get debate", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, d)
}

func (h *DebateHandler) HandleGetVerdict(w http.ResponseWriter, r *http.Request) {
	debateID, ok := getDebateID(w, r)
	if !ok {
		return
	}

	v, err := h.service.GetVerdict(r.Context(), debateID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get verdict", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, v)
}

type SubmitStatementRequest struct {
	DebateID string `json:"debate_id" validate:"required,uuid"`
	AuthorID string `json:"author_id" validate:"required,uuid"`
	Content  string `json:"content" validate:"required"`
}

func (h *DebateHandler) HandleSubmitStatement(w http.ResponseWriter, r *http.Request) {
	var req SubmitStatementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit statement"); err != nil {
		return
	}

	// UUID format is covered by validation tags; parse errors cannot occur here
	debateID, _ := uuid.Parse(req.DebateID)
	authorID, _ := uuid.Parse(req.AuthorID)

	stmt, err := h.service.SubmitStatement(r.Context(), debateID, authorID, req.Content)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to submit statement", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, stmt)
}

// HandleAdvanceDebate triggers a manual advance. Advancing is idempotent, so
// repeated calls on a settled debate are harmless.
func (h *DebateHandler) HandleAdvanceDebate(w http.ResponseWriter, r *http.Request) {
	debateID, ok := getDebateID(w, r)
	if !ok {
		return
	}

	if err := h.service.AdvanceDebate(r.Context(), debateID); err != nil {
		logger.FromContext(r.Context()).Error("Failed to advance debate", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAdvanceTriggeredSuccess})
}

func getDebateID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr, ok := GetQueryParam(r, w, "id")
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidDebateID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
