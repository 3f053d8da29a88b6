package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerdictWinner identifies which side won a 1-on-1 debate
type VerdictWinner string

const (
	WinnerChallenger VerdictWinner = "CHALLENGER"
	WinnerOpponent   VerdictWinner = "OPPONENT"
	WinnerTie        VerdictWinner = "TIE"
)

// ValidWinner reports whether w is a recognized winner value
func ValidWinner(w VerdictWinner) bool {
	switch w {
	case WinnerChallenger, WinnerOpponent, WinnerTie:
		return true
	}
	return false
}

// Verdict is the judged outcome of a 1-on-1 debate. One per (debate, judge);
// append-only, never destroyed.
type Verdict struct {
	ID              uuid.UUID     `json:"id"`
	DebateID        uuid.UUID     `json:"debate_id"`
	Judge           string        `json:"judge"` // persona key that judged
	Winner          VerdictWinner `json:"winner"`
	ChallengerScore int           `json:"challenger_score"` // [0,100]
	OpponentScore   int           `json:"opponent_score"`   // [0,100]
	Reasoning       string        `json:"reasoning"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RoundSubmission is one participant's entry in a group scoring round.
// A participant who did not submit is present with empty content, never omitted.
type RoundSubmission struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	DisplayName   string    `json:"display_name"`
	Content       string    `json:"content"`
}

// RoundScoreSet is the judged outcome of one King of the Hill round.
// The key set of Scores equals exactly the active roster for the round.
type RoundScoreSet struct {
	ID                   uuid.UUID            `json:"id"`
	TournamentRoundID    uuid.UUID            `json:"tournament_round_id"`
	Judge                string               `json:"judge"`
	Scores               map[uuid.UUID]int    `json:"scores"`    // participant id -> [0,100]
	Reasoning            map[uuid.UUID]string `json:"reasoning"` // participant id -> rationale
	EliminationReasoning string               `json:"elimination_reasoning"`
	EliminateCount       int                  `json:"eliminate_count"`
	Degraded             bool                 `json:"degraded"` // true when produced by the uniform fallback
	CreatedAt            time.Time            `json:"created_at"`
}
