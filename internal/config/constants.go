package config

// Default configuration values
const (
	DefaultServiceName          = "argufight-adjudicator"
	DefaultLLMBaseURL           = "https://api.openai.com/v1"
	DefaultLLMModel             = "gpt-4o-mini"
	DefaultLLMTimeoutSeconds    = 60
	DefaultRoundDurationMinutes = 60
	DefaultJudgePersonality     = "BALANCED"
)
