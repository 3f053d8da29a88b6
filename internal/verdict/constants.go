package verdict

// DefaultScore is used when the collaborator omits a numeric score
const DefaultScore = 50

// MissedDeadlineMarker is rendered in the judge context for any round slot
// whose statement records an expired submission
const MissedDeadlineMarker = "[MISSED DEADLINE]"

// Error context strings
const (
	ErrContextCompletionFailed = "verdict completion failed"
	ErrContextInvalidWinner    = "unrecognized winner value"
	ErrContextInvalidDebate    = "verdict requires a 1-on-1 debate with both participants"
)

// Log messages
const (
	LogMsgJudgeDebateCalled  = "JudgeDebate called"
	LogMsgVerdictProduced    = "Verdict produced"
	LogMsgAdjudicationFailed = "Adjudication failed, surfacing to caller"
)
