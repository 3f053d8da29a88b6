package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModerationAction is the decided action for a moderation target
type ModerationAction string

const (
	ActionApprove  ModerationAction = "APPROVE"
	ActionRemove   ModerationAction = "REMOVE"
	ActionEscalate ModerationAction = "ESCALATE"
)

// ValidModerationAction reports whether a is a recognized action
func ValidModerationAction(a ModerationAction) bool {
	switch a {
	case ActionApprove, ActionRemove, ActionEscalate:
		return true
	}
	return false
}

// ModerationSeverity grades a REMOVE decision
type ModerationSeverity string

const (
	SeverityLow      ModerationSeverity = "LOW"
	SeverityMedium   ModerationSeverity = "MEDIUM"
	SeverityHigh     ModerationSeverity = "HIGH"
	SeverityCritical ModerationSeverity = "CRITICAL"
)

// ValidSeverity reports whether s is a recognized severity
func ValidSeverity(s ModerationSeverity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ModerationSubjectType distinguishes the two moderation inputs
type ModerationSubjectType string

const (
	SubjectReport    ModerationSubjectType = "REPORT"
	SubjectStatement ModerationSubjectType = "STATEMENT"
)

// ModerationDecision is one classification of a report or flagged statement.
// Severity is set iff Action == REMOVE.
type ModerationDecision struct {
	ID          uuid.UUID             `json:"id"`
	SubjectID   uuid.UUID             `json:"subject_id"`
	SubjectType ModerationSubjectType `json:"subject_type"`
	Action      ModerationAction      `json:"action"`
	Confidence  int                   `json:"confidence"` // [0,100]
	Reasoning   string                `json:"reasoning"`
	Severity    ModerationSeverity    `json:"severity,omitempty"`
	Fallback    bool                  `json:"fallback"` // true when produced by the ESCALATE safe default
	CreatedAt   time.Time             `json:"created_at"`
}

// Report is a user report of content
type Report struct {
	ID              uuid.UUID `json:"id"`
	Reason          string    `json:"reason"`
	Description     string    `json:"description,omitempty"`
	ReportedContent string    `json:"reported_content,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FlaggedStatement is a statement flagged for moderation review
type FlaggedStatement struct {
	StatementID uuid.UUID `json:"statement_id"`
	Content     string    `json:"content"`
	AuthorName  string    `json:"author_name"`
	Topic       string    `json:"topic"`
	Round       int       `json:"round"`
}
