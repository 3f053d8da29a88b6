package moderation

import "time"

// Cache sizing. Identical content reaching moderation twice inside the TTL
// reuses the previous classification instead of paying another collaborator
// call.
const (
	DecisionCacheSize = 1024
	DecisionCacheTTL  = 15 * time.Minute
)

// FallbackConfidence is the confidence recorded on the ESCALATE safe default
const FallbackConfidence = 0

// FallbackReasoningSuffix completes the "<cause>, escalating for human
// review" reasoning of a fallback decision
const FallbackReasoningSuffix = ", escalating for human review"

// Fallback cause strings
const (
	CauseCollaboratorUnavailable = "Moderation service unavailable"
	CauseMalformedResponse       = "Malformed moderation response"
	CauseSchemaViolation         = "Moderation response schema violation"
	CauseUnrecognizedAction      = "Unrecognized moderation action"
)

// systemPrompt frames the collaborator as a content moderator rather than a
// debate judge
const systemPrompt = "You are a content moderation system for a debate platform. " +
	"You classify reported content and flagged debate statements. " +
	"You are precise, consistent and conservative: when in doubt, escalate to a human reviewer rather than guessing."

// Error context strings
const (
	ErrContextReportLookupFailed  = "failed to load report"
	ErrContextDecisionWriteFailed = "failed to record moderation decision"
)

// Log messages
const (
	LogMsgModerateReportCalled    = "ModerateReport called"
	LogMsgModerateStatementCalled = "ModerateStatement called"
	LogMsgDecisionProduced        = "Moderation decision produced"
	LogMsgFallbackApplied         = "Moderation failed, applying ESCALATE fallback"
	LogMsgCacheHit                = "Reusing cached moderation decision"
	LogMsgDecisionWriteFailed     = "Failed to persist moderation decision"
	LogMsgDecisionPublishFailed   = "Failed to publish moderation resolved event"
)
