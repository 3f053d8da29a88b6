package elimination

// DefaultScore is the neutral score synthesized for omitted participants and
// for the degraded uniform fallback
const DefaultScore = 50

// EliminationFraction of the active roster is cut each round, rounded up
const EliminationFraction = 0.25

// DegradedReasoning is recorded when adjudication failed entirely and the
// round was scored by the uniform fallback
const DegradedReasoning = "default — adjudication failed"

// OmittedReasoning is recorded for a participant the judge left unscored
const OmittedReasoning = "No evaluation provided by judge"

// Log messages
const (
	LogMsgScoreRoundCalled = "ScoreRound called"
	LogMsgRoundScored      = "Round scored"
	LogMsgScoreRepaired    = "Synthesized score for participant omitted by judge"
	LogMsgDegradedFallback = "Adjudication failed, applying uniform fallback scores"
	LogMsgUnknownScoreKey  = "Judge scored an id outside the active roster, dropping"
)
