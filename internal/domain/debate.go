package domain

import (
	"time"

	"github.com/google/uuid"
)

// DebateStatus represents the lifecycle state of a debate
type DebateStatus string

const (
	DebateStatusWaiting      DebateStatus = "WAITING"
	DebateStatusActive       DebateStatus = "ACTIVE"
	DebateStatusCompleted    DebateStatus = "COMPLETED"
	DebateStatusVerdictReady DebateStatus = "VERDICT_READY"
	DebateStatusCancelled    DebateStatus = "CANCELLED"
)

// DebateFormat selects the turn rules for a debate
type DebateFormat string

const (
	// FormatOneOnOne is challenger vs opponent; challenger submits first each round
	FormatOneOnOne DebateFormat = "ONE_ON_ONE"
	// FormatGroup is King of the Hill; all active participants submit concurrently
	FormatGroup DebateFormat = "GROUP"
)

// Event types
const (
	EventRoundCompleted     = "RoundCompleted"
	EventDebateCompleted    = "DebateCompleted"
	EventVerdictReady       = "VerdictReady"
	EventModerationResolved = "ModerationResolved"
)

// Participant is one side (or one seat) of a debate
type Participant struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Position    string    `json:"position"` // stated stance, e.g. "FOR"/"AGAINST"
	IsAI        bool      `json:"is_ai"`
	Personality string    `json:"personality,omitempty"` // persona key for AI participants
	Eliminated  bool      `json:"eliminated"`
}

// Debate is a 1-on-1 or group debate session.
// CurrentRound is monotonically non-decreasing; status transitions only
// WAITING -> ACTIVE -> {COMPLETED|CANCELLED}.
type Debate struct {
	ID            uuid.UUID     `json:"id"`
	Topic         string        `json:"topic"`
	Description   string        `json:"description,omitempty"`
	Format        DebateFormat  `json:"format"`
	Status        DebateStatus  `json:"status"`
	CurrentRound  int           `json:"current_round"`
	TotalRounds   int           `json:"total_rounds"`
	RoundDeadline time.Time     `json:"round_deadline"`
	Challenger    Participant   `json:"challenger"`
	Opponent      *Participant  `json:"opponent,omitempty"`
	Participants  []Participant `json:"participants,omitempty"` // group format roster
	CreatedAt     time.Time     `json:"created_at"`
}

// ActiveParticipants returns the non-eliminated roster for a group debate
func (d *Debate) ActiveParticipants() []Participant {
	active := make([]Participant, 0, len(d.Participants))
	for _, p := range d.Participants {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

// StatementContentMissed is the content recorded for a participant that did not
// submit before the round deadline. Verdict prompts render it as an explicit
// missed-deadline marker rather than omitting the statement.
const StatementContentMissed = "[NO RESPONSE - DEADLINE EXPIRED]"

// Statement is one submission in a (debate, author, round) slot.
// The triple is unique; the database constraint is the concurrency guard.
type Statement struct {
	ID        uuid.UUID `json:"id"`
	DebateID  uuid.UUID `json:"debate_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Round     int       `json:"round"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// IsMissed reports whether this statement records a missed deadline
func (s Statement) IsMissed() bool {
	return s.Content == StatementContentMissed || s.Content == ""
}
