package verdict

import (
	"fmt"
	"strings"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/turn"
)

// participantLabel renders "Name (POSITION)" for the judge context
func participantLabel(p domain.Participant) string {
	if p.Position == "" {
		return p.DisplayName
	}
	return fmt.Sprintf("%s (%s)", p.DisplayName, p.Position)
}

// BuildDebateSummary renders the full statement history grouped and ordered
// by round. A statement recording a missed deadline is rendered as an explicit
// marker rather than being silently omitted, so the judge sees the gap.
func BuildDebateSummary(d *domain.Debate, stmts []domain.Statement) string {
	var b strings.Builder

	authors := map[string]domain.Participant{
		d.Challenger.ID.String(): d.Challenger,
	}
	if d.Opponent != nil {
		authors[d.Opponent.ID.String()] = *d.Opponent
	}

	lastRound := d.TotalRounds
	for _, s := range stmts {
		if s.Round > lastRound {
			lastRound = s.Round
		}
	}

	for round := 1; round <= lastRound; round++ {
		roundStmts := turn.StatementsForRound(stmts, round)
		if len(roundStmts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "Round %d:\n", round)
		for _, s := range roundStmts {
			author, ok := authors[s.AuthorID.String()]
			if !ok {
				continue
			}
			if s.IsMissed() {
				fmt.Fprintf(&b, "%s: %s\n", participantLabel(author), MissedDeadlineMarker)
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", participantLabel(author), s.Content)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// hasMissedStatements reports whether any statement in the history records a
// missed deadline
func hasMissedStatements(stmts []domain.Statement) bool {
	for _, s := range stmts {
		if s.IsMissed() {
			return true
		}
	}
	return false
}

// buildUserPrompt assembles the single user-context message for the judge
func buildUserPrompt(in Input, styleGuidance string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Debate topic: %s\n", in.Debate.Topic)
	if in.Debate.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", in.Debate.Description)
	}
	fmt.Fprintf(&b, "Challenger: %s\n", participantLabel(in.Debate.Challenger))
	fmt.Fprintf(&b, "Opponent: %s\n\n", participantLabel(*in.Debate.Opponent))

	b.WriteString("Statement history:\n\n")
	b.WriteString(BuildDebateSummary(in.Debate, in.Statements))

	if !in.NaturalCompletion || hasMissedStatements(in.Statements) {
		b.WriteString("Note: this debate did not reach natural completion. ")
		b.WriteString("Entries marked " + MissedDeadlineMarker + " are rounds where a participant failed to respond before the deadline. ")
		b.WriteString("Weigh missed deadlines negatively against the participant that missed them.\n\n")
	}

	if styleGuidance != "" {
		b.WriteString(styleGuidance + "\n\n")
	}

	b.WriteString("Decide the debate. Respond with JSON only, no prose outside the JSON object:\n")
	b.WriteString(`{"winner": "CHALLENGER" | "OPPONENT" | "TIE", "reasoning": "<why>", "challengerScore": <0-100>, "opponentScore": <0-100>}`)

	return b.String()
}
