package debate

import "time"

// MaxStatementLength bounds a single submission
const MaxStatementLength = 8000

// aiResponseTimeout bounds one background AI statement generation
const aiResponseTimeout = 90 * time.Second

// Error context strings
const (
	ErrContextFailedToGetDebate      = "failed to get debate"
	ErrContextFailedToGetStatements  = "failed to get statements"
	ErrContextFailedToCreateStmt     = "failed to create statement"
	ErrContextFailedToAdvanceRound   = "failed to advance round"
	ErrContextFailedToCompleteDebate = "failed to complete debate"
	ErrContextFailedToRecordVerdict  = "failed to record verdict"
	ErrContextStatementTooLong       = "statement exceeds maximum length"
	ErrContextJudgingFailed          = "adjudication failed"
)

// Log messages
const (
	LogMsgSubmitStatementCalled  = "SubmitStatement called"
	LogMsgStatementCreated       = "Statement created"
	LogMsgAdvanceDebateCalled    = "AdvanceDebate called"
	LogMsgNothingToAdvance       = "Round incomplete, nothing to advance"
	LogMsgRoundExpired           = "Round deadline expired, forcing completion"
	LogMsgMissedStatementCreated = "Synthesized missed-deadline statement"
	LogMsgRoundAdvanced          = "Advanced to next round"
	LogMsgDebateCompleted        = "Debate completed"
	LogMsgVerdictAlreadyExists   = "Verdict already recorded, marking ready"
	LogMsgVerdictRecorded        = "Verdict recorded"
	LogMsgAdvanceAfterSubmit     = "Post-submission advance failed, deferring to worker"
	LogMsgExpirySweepStarted     = "Expiry sweep started"
	LogMsgExpirySweepFinished    = "Expiry sweep finished"
	LogMsgExpirySweepItemFailed  = "Failed to advance overdue debate"
	LogMsgAIResponseTriggered    = "Triggering AI participant response"
	LogMsgAIResponseFailed       = "AI participant response failed"
	LogMsgAIResponseSubmitted    = "AI participant response submitted"
	LogMsgShuttingDown           = "Shutting down debate service"
	LogMsgShutdownComplete       = "Debate service shutdown complete"
	LogMsgShutdownForced         = "Debate service shutdown forced before AI responses finished"
)
