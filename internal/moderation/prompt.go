package moderation

import (
	"fmt"
	"strings"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

const responseFormat = `Respond with JSON only:
{"action": "APPROVE" | "REMOVE" | "ESCALATE", "confidence": <0-100>, "reasoning": "<why>", "severity": "LOW" | "MEDIUM" | "HIGH" | "CRITICAL"}
Include severity only when the action is REMOVE. Use ESCALATE whenever you are not confident.`

func buildReportPrompt(report *domain.Report) string {
	var b strings.Builder

	b.WriteString("A user filed a report against platform content.\n\n")
	fmt.Fprintf(&b, "Report reason: %s\n", report.Reason)
	if report.Description != "" {
		fmt.Fprintf(&b, "Reporter's description: %s\n", report.Description)
	}
	if report.ReportedContent != "" {
		fmt.Fprintf(&b, "Reported content:\n%s\n", report.ReportedContent)
	}
	b.WriteString("\nDecide whether the reported content should be approved (report dismissed), removed, or escalated to a human moderator.\n\n")
	b.WriteString(responseFormat)

	return b.String()
}

func buildStatementPrompt(flagged *domain.FlaggedStatement) string {
	var b strings.Builder

	b.WriteString("A debate statement was flagged for moderation review.\n\n")
	fmt.Fprintf(&b, "Debate topic: %s\n", flagged.Topic)
	fmt.Fprintf(&b, "Round: %d\n", flagged.Round)
	fmt.Fprintf(&b, "Author: %s\n", flagged.AuthorName)
	fmt.Fprintf(&b, "Statement:\n%s\n", flagged.Content)
	b.WriteString("\nHeated rhetoric is expected in a debate; judge whether this crosses into content that must be removed.\n\n")
	b.WriteString(responseFormat)

	return b.String()
}
