package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Collaborator errors
	ErrMsgCollaboratorUnavailable = "collaborator unavailable"
	ErrMsgMalformedResponse       = "malformed collaborator response"
	ErrMsgSchemaViolation         = "response schema violation"

	// Debate errors
	ErrMsgDebateNotFound      = "debate not found"
	ErrMsgDebateNotActive     = "debate is not active"
	ErrMsgDebateNotJudgeable  = "debate is not ready for judgment"
	ErrMsgNotYourTurn         = "not this participant's turn"
	ErrMsgRoundNotComplete    = "round is not complete"
	ErrMsgDuplicateSubmission = "statement already exists for this author and round"

	// Verdict errors
	ErrMsgVerdictNotFound = "verdict not found"

	// Moderation errors
	ErrMsgReportNotFound = "report not found"

	// Persona errors
	ErrMsgUnknownPersonality = "unknown judge personality"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap with fmt.Errorf("%s: %w", context, domain.ErrXxx) for additional context.
var (
	// Collaborator errors. CollaboratorUnavailable covers network, timeout and
	// non-2xx failures of the text-generation service; MalformedResponse means
	// the text could not be parsed as JSON after fence stripping;
	// SchemaViolation means a required field was missing or mistyped.
	// Numeric-range violations are clamped silently and are none of these.
	ErrCollaboratorUnavailable = errors.New(ErrMsgCollaboratorUnavailable)
	ErrMalformedResponse       = errors.New(ErrMsgMalformedResponse)
	ErrSchemaViolation         = errors.New(ErrMsgSchemaViolation)

	// Debate errors
	ErrDebateNotFound     = errors.New(ErrMsgDebateNotFound)
	ErrDebateNotActive    = errors.New(ErrMsgDebateNotActive)
	ErrDebateNotJudgeable = errors.New(ErrMsgDebateNotJudgeable)
	ErrNotYourTurn        = errors.New(ErrMsgNotYourTurn)
	ErrRoundNotComplete   = errors.New(ErrMsgRoundNotComplete)

	// DuplicateSubmission is the expected signal that a concurrent actor won
	// the race for a (debate, author, round) slot. Callers re-fetch state and
	// re-evaluate; it is not a crash condition.
	ErrDuplicateSubmission = errors.New(ErrMsgDuplicateSubmission)

	// Verdict errors
	ErrVerdictNotFound = errors.New(ErrMsgVerdictNotFound)

	// Moderation errors
	ErrReportNotFound = errors.New(ErrMsgReportNotFound)

	// Persona errors
	ErrUnknownPersonality = errors.New(ErrMsgUnknownPersonality)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
