package elimination

import (
	"fmt"
	"strings"
)

// rubricText is the weighted scoring rubric shared with the judge. Weights
// sum to 100.
const rubricText = `Score each participant 0-100 using this rubric:
- Argument quality (30%): logical structure and soundness
- Evidence (25%): factual support for claims
- Persuasiveness (20%): how compelling the case is
- Clarity (15%): how clearly the position is expressed
- Relevance (10%): how on-topic the submission stays`

// buildUserPrompt renders all submissions of one round into a single scoring
// request. Non-submitters appear explicitly so the judge scores the silence
// rather than forgetting the participant.
func buildUserPrompt(in Input, styleGuidance string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "King of the Hill round for the debate topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "%d participants remain. The weakest %d will be eliminated this round.\n\n", len(in.Submissions), in.EliminateCount())

	b.WriteString("Submissions:\n\n")
	for _, sub := range in.Submissions {
		if sub.Content == "" {
			fmt.Fprintf(&b, "[%s] %s: DID NOT SUBMIT before the deadline\n\n", sub.ParticipantID, sub.DisplayName)
			continue
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n\n", sub.ParticipantID, sub.DisplayName, sub.Content)
	}

	b.WriteString(rubricText + "\n\n")

	if styleGuidance != "" {
		b.WriteString(styleGuidance + "\n\n")
	}

	b.WriteString("Score every participant listed above, keyed by the bracketed id. Respond with JSON only:\n")
	b.WriteString(`{"scores": {"<participant-id>": <0-100>, ...}, "reasoning": {"<participant-id>": "<why>", ...}, "eliminationReasoning": "<overall rationale for who falls and why>"}`)

	return b.String()
}
