package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"debate not found", domain.ErrDebateNotFound, http.StatusNotFound, ErrMsgDebateNotFoundError},
		{"wrapped not found", fmt.Errorf("failed to get debate: %w", domain.ErrDebateNotFound), http.StatusNotFound, ErrMsgDebateNotFoundError},
		{"not your turn", domain.ErrNotYourTurn, http.StatusConflict, ErrMsgNotYourTurnError},
		{"duplicate submission", domain.ErrDuplicateSubmission, http.StatusConflict, ErrMsgAlreadySubmittedErr},
		{"verdict pending", domain.ErrVerdictNotFound, http.StatusNotFound, ErrMsgVerdictNotFoundError},
		{"collaborator down", fmt.Errorf("judging: %w", domain.ErrCollaboratorUnavailable), http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"schema violation", domain.ErrSchemaViolation, http.StatusBadGateway, ErrMsgGenericServerError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"database error", domain.ErrDatabaseError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown error", errors.New("something odd"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, msg)
		})
	}
}
