package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := acquireBuffer()
	defer releaseBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError   = "Judging service is temporarily unavailable. Please try again later."

	// Debate messages
	ErrMsgDebateNotFoundError  = "Debate not found"
	ErrMsgDebateNotActiveError = "Debate is not active"
	ErrMsgNotYourTurnError     = "It is not your turn to respond"
	ErrMsgAlreadySubmittedErr  = "You already submitted a statement this round"
	ErrMsgRoundNotCompleteErr  = "Round is not complete yet"
	ErrMsgNotJudgeableError    = "Debate is not ready for judgment"

	// Verdict messages
	ErrMsgVerdictNotFoundError = "Verdict is not available yet"

	// Moderation messages
	ErrMsgReportNotFoundError = "Report not found"

	// Persona messages
	ErrMsgUnknownPersonalityErr = "Unknown judge personality"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// This function converts internal service errors to appropriate HTTP status codes
// and messages that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrDebateNotFound):
		return http.StatusNotFound, ErrMsgDebateNotFoundError
	case errors.Is(err, domain.ErrVerdictNotFound):
		return http.StatusNotFound, ErrMsgVerdictNotFoundError
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, ErrMsgReportNotFoundError
	case errors.Is(err, domain.ErrNotYourTurn):
		return http.StatusConflict, ErrMsgNotYourTurnError
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, ErrMsgAlreadySubmittedErr
	case errors.Is(err, domain.ErrDebateNotActive):
		return http.StatusBadRequest, ErrMsgDebateNotActiveError
	case errors.Is(err, domain.ErrRoundNotComplete):
		return http.StatusBadRequest, ErrMsgRoundNotCompleteErr
	case errors.Is(err, domain.ErrDebateNotJudgeable):
		return http.StatusBadRequest, ErrMsgNotJudgeableError
	case errors.Is(err, domain.ErrUnknownPersonality):
		return http.StatusBadRequest, ErrMsgUnknownPersonalityErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrMalformedResponse),
		errors.Is(err, domain.ErrSchemaViolation):
		return http.StatusBadGateway, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the error and writes the mapped HTTP response
func respondServiceError(w http.ResponseWriter, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}
