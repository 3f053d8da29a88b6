package domain

import "time"

// InvocationRecord is one entry in the collaborator usage ledger
type InvocationRecord struct {
	Provider         string    `json:"provider"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	Success          bool      `json:"success"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	LatencyMs        int64     `json:"latency_ms"`
	SubjectID        string    `json:"subject_id"` // debate/round/report the call was for
	CreatedAt        time.Time `json:"created_at"`
}
