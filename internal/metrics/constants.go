package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Adjudication metric names
const (
	MetricNameLLMInvocations      = "llm_invocations_total"
	MetricNameLLMInvocationTime   = "llm_invocation_duration_seconds"
	MetricNameVerdictsRecorded    = "verdicts_recorded_total"
	MetricNameEliminationRounds   = "elimination_rounds_scored_total"
	MetricNameScoreRepairs        = "elimination_score_repairs_total"
	MetricNameModerationDecisions = "moderation_decisions_total"
	MetricNameModerationFallbacks = "moderation_fallbacks_total"
	MetricNameRoundsAdvanced      = "debate_rounds_advanced_total"
	MetricNameRoundsExpired       = "debate_rounds_expired_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Adjudication metric help text
const (
	HelpTextLLMInvocations      = "Total number of text-generation collaborator invocations"
	HelpTextLLMInvocationTime   = "Collaborator invocation latency in seconds"
	HelpTextVerdictsRecorded    = "Total number of verdicts produced"
	HelpTextEliminationRounds   = "Total number of King of the Hill rounds scored"
	HelpTextScoreRepairs        = "Total number of participant scores synthesized for omitted ids"
	HelpTextModerationDecisions = "Total number of moderation decisions produced"
	HelpTextModerationFallbacks = "Total number of moderation decisions resolved by the ESCALATE fallback"
	HelpTextRoundsAdvanced      = "Total number of debate round advances"
	HelpTextRoundsExpired       = "Total number of rounds forced complete by deadline expiry"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelComponent = "component"
	LabelOutcome   = "outcome"
	LabelWinner    = "winner"
	LabelAction    = "action"
	LabelFormat    = "format"
)

// Component label values
const (
	ComponentVerdict     = "verdict"
	ComponentElimination = "elimination"
	ComponentModeration  = "moderation"
	ComponentAIResponse  = "ai_response"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP request durations
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// LLMLatencyBuckets reflect that collaborator calls run seconds, not millis
var LLMLatencyBuckets = []float64{0.25, 0.5, 1, 2, 4, 8, 16, 30, 60, 120}
