package llm

import "context"

// CompletionRequest is one text-generation request to the collaborator
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Completion is the collaborator's reply plus token accounting
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Client defines the interface to the text-generation collaborator.
// Implementations must honor ctx cancellation and return an error wrapping
// domain.ErrCollaboratorUnavailable on transport, timeout or non-2xx failures.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	Provider() string
}
