package moderation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/llm"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
	"github.com/beltranalain/argufiight-sub000/internal/repository"
	"github.com/beltranalain/argufiight-sub000/internal/usage"
)

// Service classifies reports and flagged statements. Every path returns a
// decision: collaborator failure resolves to the ESCALATE safe default, never
// to a silent APPROVE and never to an error the caller must invent policy for.
type Service interface {
	ModerateReport(ctx context.Context, report *domain.Report) *domain.ModerationDecision
	ModerateStatement(ctx context.Context, flagged *domain.FlaggedStatement) *domain.ModerationDecision
	ResolveReport(ctx context.Context, reportID uuid.UUID) (*domain.ModerationDecision, error)
}

// cachedDecision is the classification payload reused for identical content
type cachedDecision struct {
	Action     domain.ModerationAction
	Confidence int
	Reasoning  string
	Severity   domain.ModerationSeverity
}

type service struct {
	client llm.Client
	repo   repository.Moderation
	ledger usage.Service
	bus    event.Bus
	cache  *expirable.LRU[string, cachedDecision]
}

// NewService creates a new moderation service
func NewService(client llm.Client, repo repository.Moderation, ledger usage.Service, bus event.Bus) Service {
	return &service{
		client: client,
		repo:   repo,
		ledger: ledger,
		bus:    bus,
		cache:  expirable.NewLRU[string, cachedDecision](DecisionCacheSize, nil, DecisionCacheTTL),
	}
}

var decisionSchema = llm.Schema{
	Fields: []llm.Field{
		{Name: "action", Type: llm.TypeString, Required: true},
		{Name: "confidence", Type: llm.TypeNumber, Required: false},
		{Name: "reasoning", Type: llm.TypeString, Required: false},
		{Name: "severity", Type: llm.TypeString, Required: false},
	},
}

// ResolveReport loads a report and moderates it
func (s *service) ResolveReport(ctx context.Context, reportID uuid.UUID) (*domain.ModerationDecision, error) {
	report, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextReportLookupFailed, err)
	}
	return s.ModerateReport(ctx, report), nil
}

// ModerateReport classifies one user report
func (s *service) ModerateReport(ctx context.Context, report *domain.Report) *domain.ModerationDecision {
	logger.FromContext(ctx).Info(LogMsgModerateReportCalled, "report_id", report.ID)

	prompt := buildReportPrompt(report)
	return s.moderate(ctx, report.ID, domain.SubjectReport, cacheKey(domain.SubjectReport, report.Reason, report.ReportedContent), prompt)
}

// ModerateStatement classifies one flagged debate statement
func (s *service) ModerateStatement(ctx context.Context, flagged *domain.FlaggedStatement) *domain.ModerationDecision {
	logger.FromContext(ctx).Info(LogMsgModerateStatementCalled, "statement_id", flagged.StatementID)

	prompt := buildStatementPrompt(flagged)
	return s.moderate(ctx, flagged.StatementID, domain.SubjectStatement, cacheKey(domain.SubjectStatement, flagged.Content), prompt)
}

// moderate runs the classification pipeline: cache lookup, one completion
// call, validation, fallback on any failure, then best-effort persistence.
func (s *service) moderate(ctx context.Context, subjectID uuid.UUID, subjectType domain.ModerationSubjectType, key, userPrompt string) *domain.ModerationDecision {
	log := logger.FromContext(ctx)

	if cached, ok := s.cache.Get(key); ok {
		log.Info(LogMsgCacheHit, "subject_id", subjectID, "subject_type", subjectType)
		return s.finish(ctx, decisionFromCache(subjectID, subjectType, cached))
	}

	req := llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  llm.TemperatureModeration,
		MaxTokens:    llm.DefaultMaxTokens,
	}

	start := time.Now()
	completion, err := s.client.Complete(ctx, req)
	latency := time.Since(start)
	metrics.LLMInvocationDuration.WithLabelValues(metrics.ComponentModeration).Observe(latency.Seconds())

	record := domain.InvocationRecord{
		Provider:  s.client.Provider(),
		Success:   err == nil,
		LatencyMs: latency.Milliseconds(),
		SubjectID: subjectID.String(),
	}
	if err != nil {
		record.ErrorMessage = err.Error()
	} else {
		record.PromptTokens = completion.PromptTokens
		record.CompletionTokens = completion.CompletionTokens
	}
	s.ledger.LogInvocation(ctx, record)

	if err != nil {
		return s.finish(ctx, s.fallback(ctx, subjectID, subjectType, causeText(err), err))
	}

	parsed, err := llm.Parse(completion.Text, decisionSchema)
	if err != nil {
		return s.finish(ctx, s.fallback(ctx, subjectID, subjectType, causeText(err), err))
	}

	action := domain.ModerationAction(llm.String(parsed, "action"))
	if !domain.ValidModerationAction(action) {
		err := fmt.Errorf("%s: %w", CauseUnrecognizedAction, domain.ErrSchemaViolation)
		return s.finish(ctx, s.fallback(ctx, subjectID, subjectType, CauseUnrecognizedAction, err))
	}

	decision := &domain.ModerationDecision{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		Action:      action,
		Confidence:  llm.ClampScore(llm.Number(parsed, "confidence", FallbackConfidence)),
		Reasoning:   llm.String(parsed, "reasoning"),
		CreatedAt:   time.Now(),
	}

	// Severity only grades removals
	if action == domain.ActionRemove {
		if severity := domain.ModerationSeverity(llm.String(parsed, "severity")); domain.ValidSeverity(severity) {
			decision.Severity = severity
		} else {
			decision.Severity = domain.SeverityMedium
		}
	}

	metrics.LLMInvocations.WithLabelValues(metrics.ComponentModeration, metrics.OutcomeSuccess).Inc()

	// Fallbacks are transient and are never cached
	s.cache.Add(key, cachedDecision{
		Action:     decision.Action,
		Confidence: decision.Confidence,
		Reasoning:  decision.Reasoning,
		Severity:   decision.Severity,
	})

	return s.finish(ctx, decision)
}

// fallback is the ESCALATE safe default applied to every moderation failure
func (s *service) fallback(ctx context.Context, subjectID uuid.UUID, subjectType domain.ModerationSubjectType, cause string, err error) *domain.ModerationDecision {
	metrics.LLMInvocations.WithLabelValues(metrics.ComponentModeration, metrics.OutcomeFailure).Inc()
	metrics.ModerationFallbacks.Inc()
	logger.FromContext(ctx).Error(LogMsgFallbackApplied,
		"subject_id", subjectID,
		"subject_type", subjectType,
		"error", err)

	return &domain.ModerationDecision{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		Action:      domain.ActionEscalate,
		Confidence:  FallbackConfidence,
		Reasoning:   cause + FallbackReasoningSuffix,
		Fallback:    true,
		CreatedAt:   time.Now(),
	}
}

// finish records metrics, persists the decision and announces it on the bus.
// A failed write or publish is logged but does not void the decision; the
// caller still gets the classification.
func (s *service) finish(ctx context.Context, decision *domain.ModerationDecision) *domain.ModerationDecision {
	metrics.ModerationDecisions.WithLabelValues(string(decision.Action)).Inc()

	log := logger.FromContext(ctx)
	if err := s.repo.RecordModerationDecision(ctx, decision); err != nil {
		log.Error(LogMsgDecisionWriteFailed, "decision_id", decision.ID, "error", err)
	}

	if err := s.bus.Publish(ctx, event.NewModerationResolvedEvent(decision)); err != nil {
		log.Warn(LogMsgDecisionPublishFailed, "decision_id", decision.ID, "error", err)
	}

	log.Info(LogMsgDecisionProduced,
		"subject_id", decision.SubjectID,
		"subject_type", decision.SubjectType,
		"action", decision.Action,
		"confidence", decision.Confidence,
		"fallback", decision.Fallback)

	return decision
}

func decisionFromCache(subjectID uuid.UUID, subjectType domain.ModerationSubjectType, cached cachedDecision) *domain.ModerationDecision {
	return &domain.ModerationDecision{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		Action:      cached.Action,
		Confidence:  cached.Confidence,
		Reasoning:   cached.Reasoning,
		Severity:    cached.Severity,
		CreatedAt:   time.Now(),
	}
}

// causeText maps a failure to the short cause rendered into the fallback
// reasoning
func causeText(err error) string {
	switch {
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return CauseCollaboratorUnavailable
	case errors.Is(err, domain.ErrMalformedResponse):
		return CauseMalformedResponse
	case errors.Is(err, domain.ErrSchemaViolation):
		return CauseSchemaViolation
	default:
		return CauseCollaboratorUnavailable
	}
}

// cacheKey hashes the moderated content so the cache never stores raw text as
// a map key
func cacheKey(subjectType domain.ModerationSubjectType, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(subjectType))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
