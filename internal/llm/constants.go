package llm

// Temperature settings per adjudication concern. Verdicts and elimination
// favor variety; moderation favors consistency.
const (
	TemperatureVerdict     = 0.7
	TemperatureElimination = 0.8
	TemperatureModeration  = 0.3
	TemperatureAIResponse  = 0.9
)

// Token limits
const (
	DefaultMaxTokens     = 1024
	EliminationMaxTokens = 2048
)

// RawTextTruncateLen bounds how much raw collaborator output a
// ValidationError carries for diagnostics
const RawTextTruncateLen = 500

// Error context strings
const (
	ErrContextFailedToBuildRequest = "failed to build completion request"
	ErrContextRequestFailed        = "completion request failed"
	ErrContextUnexpectedStatus     = "unexpected status from completion endpoint"
	ErrContextFailedToDecodeBody   = "failed to decode completion response"
	ErrContextEmptyCompletion      = "completion response contained no choices"
)
