package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/moderation"
	"github.com/beltranalain/argufiight-sub000/internal/worker"
)

type ModerationHandler struct {
	service moderation.Service
	pool    *worker.Pool
}

func NewModerationHandler(service moderation.Service, pool *worker.Pool) *ModerationHandler {
	return &ModerationHandler{service: service, pool: pool}
}

// HandleResolveReport moderates a stored report and returns the decision.
// Moderation never fails open; a collaborator outage still yields an
// ESCALATE decision, so this endpoint only errors when the report is missing.
func (h *ModerationHandler) HandleResolveReport(w http.ResponseWriter, r *http.Request) {
	idStr, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}
	reportID, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidReportID, http.StatusBadRequest)
		return
	}

	decision, err := h.service.ResolveReport(r.Context(), reportID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to resolve report", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, decision)
}

type ModerateReportRequest struct {
	Reason          string `json:"reason" validate:"required"`
	Description     string `json:"description"`
	ReportedContent string `json:"reported_content"`
}

// HandleModerateReport classifies an ad-hoc report synchronously
func (h *ModerationHandler) HandleModerateReport(w http.ResponseWriter, r *http.Request) {
	var req ModerateReportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Moderate report"); err != nil {
		return
	}

	report := &domain.Report{
		ID:              uuid.New(),
		Reason:          req.Reason,
		Description:     req.Description,
		ReportedContent: req.ReportedContent,
	}

	decision := h.service.ModerateReport(r.Context(), report)
	respondJSON(w, http.StatusOK, decision)
}

type FlagStatementRequest struct {
	StatementID string `json:"statement_id" validate:"required,uuid"`
	Content     string `json:"content" validate:"required"`
	AuthorName  string `json:"author_name"`
	Topic       string `json:"topic"`
	Round       int    `json:"round"`
}

// HandleFlagStatement queues a flagged statement for background review. The
// decision lands in storage; the caller gets an acknowledgement, not a verdict.
func (h *ModerationHandler) HandleFlagStatement(w http.ResponseWriter, r *http.Request) {
	var req FlagStatementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Flag statement"); err != nil {
		return
	}

	statementID, _ := uuid.Parse(req.StatementID)
	flagged := &domain.FlaggedStatement{
		StatementID: statementID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		Topic:       req.Topic,
		Round:       req.Round,
	}

	job := worker.JobFunc(func(ctx context.Context) error {
		h.service.ModerateStatement(ctx, flagged)
		return nil
	})
	if !h.pool.TryEnqueue(job) {
		logger.FromContext(r.Context()).Warn("Moderation queue full", "statement_id", statementID)
		respondError(w, http.StatusServiceUnavailable, ErrMsgModerationQueueFull)
		return
	}

	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgStatementFlaggedSuccess})
}
