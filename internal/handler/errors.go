package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// ID parsing error messages
	ErrMsgInvalidDebateID    = "Invalid debate ID"
	ErrMsgInvalidReportID    = "Invalid report ID"
	ErrMsgInvalidRoundID     = "Invalid tournament round ID"
	ErrMsgInvalidStatementID = "Invalid statement ID"
	ErrMsgInvalidAuthorID    = "Invalid author ID"

	// Moderation error messages
	ErrMsgModerationQueueFull = "Moderation queue is full. Try again later"
)

// Success messages for API responses
const (
	MsgAdvanceTriggeredSuccess = "Advance triggered"
	MsgStatementFlaggedSuccess = "Statement queued for moderation review"
)
