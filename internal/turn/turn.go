// Package turn decides whose turn it is to act in a debate and when a round
// or debate transitions state. All functions are pure over their inputs and
// idempotent: the same statement set always yields the same decision.
// Concurrency safety for "did both sides submit" is delegated to the
// uniqueness constraint on (debate, author, round) at the storage layer.
package turn

import (
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// hasStatement reports whether authorID has a statement in stmts
func hasStatement(stmts []domain.Statement, authorID uuid.UUID) bool {
	for _, s := range stmts {
		if s.AuthorID == authorID {
			return true
		}
	}
	return false
}

// StatementsForRound filters stmts down to the given round
func StatementsForRound(stmts []domain.Statement, round int) []domain.Statement {
	out := make([]domain.Statement, 0, len(stmts))
	for _, s := range stmts {
		if s.Round == round {
			out = append(out, s)
		}
	}
	return out
}

// IsChallengerTurn reports whether the challenger may submit for the current
// round. The challenger submits first in every round; ordering resets each
// round rather than alternating.
func IsChallengerTurn(d *domain.Debate, roundStmts []domain.Statement) bool {
	if d.Format != domain.FormatOneOnOne {
		return false
	}
	return !hasStatement(roundStmts, d.Challenger.ID)
}

// IsOpponentTurn reports whether the opponent may submit for the current round
func IsOpponentTurn(d *domain.Debate, roundStmts []domain.Statement) bool {
	if d.Format != domain.FormatOneOnOne || d.Opponent == nil {
		return false
	}
	return hasStatement(roundStmts, d.Challenger.ID) && !hasStatement(roundStmts, d.Opponent.ID)
}

// NextActor returns the participant whose turn it is in a 1-on-1 debate, or
// nil when the round is complete. Group debates have no single next actor;
// use PendingParticipants instead.
func NextActor(d *domain.Debate, roundStmts []domain.Statement) *domain.Participant {
	if d.Format != domain.FormatOneOnOne {
		return nil
	}
	if IsChallengerTurn(d, roundStmts) {
		c := d.Challenger
		return &c
	}
	if IsOpponentTurn(d, roundStmts) {
		o := *d.Opponent
		return &o
	}
	return nil
}

// PendingParticipants returns the active group participants that have not yet
// submitted for the current round. Submission order is unconstrained.
func PendingParticipants(d *domain.Debate, roundStmts []domain.Statement) []domain.Participant {
	if d.Format != domain.FormatGroup {
		return nil
	}
	pending := make([]domain.Participant, 0)
	for _, p := range d.ActiveParticipants() {
		if !hasStatement(roundStmts, p.ID) {
			pending = append(pending, p)
		}
	}
	return pending
}

// CanSubmit reports whether authorID may submit a statement for the current
// round. For 1-on-1 it enforces challenger-first ordering; for group it only
// requires the participant to be active and not to have submitted yet.
func CanSubmit(d *domain.Debate, authorID uuid.UUID, roundStmts []domain.Statement) error {
	if d.Status != domain.DebateStatusActive {
		return domain.ErrDebateNotActive
	}

	switch d.Format {
	case domain.FormatOneOnOne:
		actor := NextActor(d, roundStmts)
		if actor == nil || actor.ID != authorID {
			return domain.ErrNotYourTurn
		}
		return nil
	case domain.FormatGroup:
		for _, p := range d.ActiveParticipants() {
			if p.ID == authorID {
				if hasStatement(roundStmts, authorID) {
					return domain.ErrDuplicateSubmission
				}
				return nil
			}
		}
		return domain.ErrNotYourTurn
	}
	return domain.ErrInvalidInput
}

// RoundComplete reports whether the current round is finished. A 1-on-1 round
// completes when both sides have a statement; a group round completes when
// every active participant has submitted or the round deadline has passed,
// whichever comes first.
func RoundComplete(d *domain.Debate, roundStmts []domain.Statement, now time.Time) bool {
	switch d.Format {
	case domain.FormatOneOnOne:
		if d.Opponent == nil {
			return false
		}
		return hasStatement(roundStmts, d.Challenger.ID) && hasStatement(roundStmts, d.Opponent.ID)
	case domain.FormatGroup:
		if len(PendingParticipants(d, roundStmts)) == 0 {
			return true
		}
		return !d.RoundDeadline.IsZero() && now.After(d.RoundDeadline)
	}
	return false
}

// Expired reports whether the round deadline has passed with the round still
// incomplete. An expired round is forced to completion with missed markers
// for every participant that did not submit.
func Expired(d *domain.Debate, roundStmts []domain.Statement, now time.Time) bool {
	if d.RoundDeadline.IsZero() || !now.After(d.RoundDeadline) {
		return false
	}
	switch d.Format {
	case domain.FormatOneOnOne:
		return !RoundComplete(d, roundStmts, now)
	case domain.FormatGroup:
		return len(PendingParticipants(d, roundStmts)) > 0
	}
	return false
}

// MissingSubmitters returns the participants without a statement for the
// current round, across both formats. Used to synthesize missed-deadline
// statements when a round is forced to completion.
func MissingSubmitters(d *domain.Debate, roundStmts []domain.Statement) []domain.Participant {
	switch d.Format {
	case domain.FormatOneOnOne:
		missing := make([]domain.Participant, 0, 2)
		if !hasStatement(roundStmts, d.Challenger.ID) {
			missing = append(missing, d.Challenger)
		}
		if d.Opponent != nil && !hasStatement(roundStmts, d.Opponent.ID) {
			missing = append(missing, *d.Opponent)
		}
		return missing
	case domain.FormatGroup:
		return PendingParticipants(d, roundStmts)
	}
	return nil
}

// Transition is the decision taken when a round completes
type Transition struct {
	// DebateComplete means the final round finished; adjudication is next
	DebateComplete bool
	// NextRound is the round to advance to when the debate continues
	NextRound int
}

// NextTransition decides what happens once the current round completes: the
// debate completes after the final round, otherwise play advances one round
// and the caller sets a fresh deadline.
func NextTransition(d *domain.Debate) Transition {
	if d.CurrentRound >= d.TotalRounds {
		return Transition{DebateComplete: true}
	}
	return Transition{NextRound: d.CurrentRound + 1}
}
