package debate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
	"github.com/beltranalain/argufiight-sub000/internal/event"
	"github.com/beltranalain/argufiight-sub000/internal/logger"
	"github.com/beltranalain/argufiight-sub000/internal/metrics"
	"github.com/beltranalain/argufiight-sub000/internal/persona"
	"github.com/beltranalain/argufiight-sub000/internal/repository"
	"github.com/beltranalain/argufiight-sub000/internal/turn"
	"github.com/beltranalain/argufiight-sub000/internal/verdict"
)

// Config carries the orchestration parameters
type Config struct {
	// RoundDuration is the deadline window granted to each new round
	RoundDuration time.Duration
	// JudgePersonality selects the judge persona for adjudication
	JudgePersonality persona.Key
}

// Service orchestrates debate turns, round transitions and adjudication.
// AdvanceDebate is idempotent: calling it on a debate with nothing to do is a
// no-op, so submission paths, the deadline worker and manual triggers can all
// call it without coordination.
type Service interface {
	GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error)
	GetVerdict(ctx context.Context, debateID uuid.UUID) (*domain.Verdict, error)
	SubmitStatement(ctx context.Context, debateID, authorID uuid.UUID, content string) (*domain.Statement, error)
	AdvanceDebate(ctx context.Context, debateID uuid.UUID) error
	ExpireOverdueRounds(ctx context.Context, now time.Time) (int, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Debate
	verdicts  repository.Verdict
	judge     verdict.Service
	responder *AIResponder
	bus       event.Bus
	cfg       Config
	now       func() time.Time
	wg        sync.WaitGroup // Tracks background AI responses
}

// NewService creates a new debate orchestration service. responder may be nil
// when AI participants are disabled.
func NewService(repo repository.Debate, verdicts repository.Verdict, judge verdict.Service, responder *AIResponder, bus event.Bus, cfg Config) Service {
	s := &service{
		repo:      repo,
		verdicts:  verdicts,
		judge:     judge,
		responder: responder,
		bus:       bus,
		cfg:       cfg,
		now:       time.Now,
	}
	if s.responder != nil {
		s.responder.submit = s.SubmitStatement
	}
	return s
}

// GetDebate returns one debate by id
func (s *service) GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error) {
	d, err := s.repo.GetDebate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetDebate, err)
	}
	return d, nil
}

// GetVerdict returns the configured judge's verdict for a debate
func (s *service) GetVerdict(ctx context.Context, debateID uuid.UUID) (*domain.Verdict, error) {
	return s.verdicts.GetVerdict(ctx, debateID, string(s.cfg.JudgePersonality))
}

// SubmitStatement validates turn order, records the statement and advances
// the debate. The storage uniqueness constraint on (debate, author, round) is
// the last word on races; a lost race surfaces as ErrDuplicateSubmission.
func (s *service) SubmitStatement(ctx context.Context, debateID, authorID uuid.UUID, content string) (*domain.Statement, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSubmitStatementCalled, "debate_id", debateID, "author_id", authorID)

	if content == "" {
		return nil, fmt.Errorf("empty statement: %w", domain.ErrInvalidInput)
	}
	if len(content) > MaxStatementLength {
		return nil, fmt.Errorf("%s: %w", ErrContextStatementTooLong, domain.ErrInvalidInput)
	}

	d, err := s.repo.GetDebate(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetDebate, err)
	}

	roundStmts, err := s.repo.GetRoundStatements(ctx, debateID, d.CurrentRound)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetStatements, err)
	}

	if err := turn.CanSubmit(d, authorID, roundStmts); err != nil {
		return nil, err
	}

	stmt := &domain.Statement{
		ID:        uuid.New(),
		DebateID:  debateID,
		AuthorID:  authorID,
		Round:     d.CurrentRound,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateStatement(ctx, stmt); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateStmt, err)
	}
	log.Info(LogMsgStatementCreated, "debate_id", debateID, "author_id", authorID, "round", stmt.Round)

	// The statement is durable; an advance failure here is retried by the
	// deadline worker rather than voiding the submission.
	if err := s.AdvanceDebate(ctx, debateID); err != nil {
		log.Warn(LogMsgAdvanceAfterSubmit, "debate_id", debateID, "error", err)
	}

	s.maybeTriggerAI(ctx, debateID)

	return stmt, nil
}

// AdvanceDebate inspects the debate and performs whatever transition is due:
// nothing, an expiry-forced round completion, a round advance, or debate
// completion followed by adjudication.
func (s *service) AdvanceDebate(ctx context.Context, debateID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAdvanceDebateCalled, "debate_id", debateID)

	d, err := s.repo.GetDebate(ctx, debateID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetDebate, err)
	}

	switch d.Status {
	case domain.DebateStatusActive:
		return s.advanceActive(ctx, d)
	case domain.DebateStatusCompleted:
		// Completed but not yet judged; judging is the remaining work
		if d.Format == domain.FormatOneOnOne {
			return s.ensureVerdict(ctx, d)
		}
		return nil
	default:
		return nil
	}
}

func (s *service) advanceActive(ctx context.Context, d *domain.Debate) error {
	log := logger.FromContext(ctx)
	now := s.now()

	roundStmts, err := s.repo.GetRoundStatements(ctx, d.ID, d.CurrentRound)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetStatements, err)
	}

	expired := turn.Expired(d, roundStmts, now)
	if expired {
		log.Warn(LogMsgRoundExpired, "debate_id", d.ID, "round", d.CurrentRound)
		metrics.RoundsExpired.WithLabelValues(string(d.Format)).Inc()

		for _, p := range turn.MissingSubmitters(d, roundStmts) {
			missed := &domain.Statement{
				ID:        uuid.New(),
				DebateID:  d.ID,
				AuthorID:  p.ID,
				Round:     d.CurrentRound,
				Content:   domain.StatementContentMissed,
				CreatedAt: now,
			}
			if err := s.repo.CreateStatement(ctx, missed); err != nil {
				// A concurrent real submission won the slot; that is fine
				if errors.Is(err, domain.ErrDuplicateSubmission) {
					continue
				}
				return fmt.Errorf("%s: %w", ErrContextFailedToCreateStmt, err)
			}
			roundStmts = append(roundStmts, *missed)
			log.Info(LogMsgMissedStatementCreated, "debate_id", d.ID, "author_id", p.ID, "round", d.CurrentRound)
		}
	}

	if !turn.RoundComplete(d, roundStmts, now) {
		log.Info(LogMsgNothingToAdvance, "debate_id", d.ID, "round", d.CurrentRound)
		return nil
	}

	if err := s.bus.Publish(ctx, event.NewRoundCompletedEvent(d.ID, d.CurrentRound, expired)); err != nil {
		log.Warn("Failed to publish round completed event", "debate_id", d.ID, "error", err)
	}

	tr := turn.NextTransition(d)
	if !tr.DebateComplete {
		deadline := now.Add(s.cfg.RoundDuration)
		if err := s.repo.UpdateDebateRound(ctx, d.ID, tr.NextRound, deadline); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToAdvanceRound, err)
		}
		metrics.RoundsAdvanced.WithLabelValues(string(d.Format)).Inc()
		log.Info(LogMsgRoundAdvanced, "debate_id", d.ID, "round", tr.NextRound, "deadline", deadline)
		s.maybeTriggerAI(ctx, d.ID)
		return nil
	}

	if err := s.repo.CompleteDebate(ctx, d.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCompleteDebate, err)
	}

	natural, err := s.naturalCompletion(ctx, d.ID)
	if err != nil {
		return err
	}
	log.Info(LogMsgDebateCompleted, "debate_id", d.ID, "natural_completion", natural)
	if err := s.bus.Publish(ctx, event.NewDebateCompletedEvent(d.ID, d.TotalRounds, natural)); err != nil {
		log.Warn("Failed to publish debate completed event", "debate_id", d.ID, "error", err)
	}

	if d.Format == domain.FormatOneOnOne {
		return s.ensureVerdict(ctx, d)
	}
	return nil
}

// naturalCompletion reports whether the full statement history is free of
// missed-deadline entries
func (s *service) naturalCompletion(ctx context.Context, debateID uuid.UUID) (bool, error) {
	stmts, err := s.repo.GetStatements(ctx, debateID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToGetStatements, err)
	}
	for _, stmt := range stmts {
		if stmt.IsMissed() {
			return false, nil
		}
	}
	return true, nil
}

// ensureVerdict adjudicates a completed 1-on-1 debate exactly once. A verdict
// already on record short-circuits to marking the debate ready, which makes
// repeated advances after a crash safe.
func (s *service) ensureVerdict(ctx context.Context, d *domain.Debate) error {
	log := logger.FromContext(ctx)
	judgeKey := string(s.cfg.JudgePersonality)

	existing, err := s.verdicts.GetVerdict(ctx, d.ID, judgeKey)
	if err != nil && !errors.Is(err, domain.ErrVerdictNotFound) {
		return fmt.Errorf("%s: %w", ErrContextFailedToRecordVerdict, err)
	}
	if existing != nil {
		log.Info(LogMsgVerdictAlreadyExists, "debate_id", d.ID, "verdict_id", existing.ID)
		return s.repo.MarkVerdictReady(ctx, d.ID)
	}

	stmts, err := s.repo.GetStatements(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetStatements, err)
	}
	natural := true
	for _, stmt := range stmts {
		if stmt.IsMissed() {
			natural = false
			break
		}
	}

	v, err := s.judge.JudgeDebate(ctx, verdict.Input{
		Debate:            d,
		Statements:        stmts,
		NaturalCompletion: natural,
		Personality:       s.cfg.JudgePersonality,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextJudgingFailed, err)
	}

	if err := s.verdicts.RecordVerdict(ctx, v); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRecordVerdict, err)
	}
	if err := s.repo.MarkVerdictReady(ctx, d.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRecordVerdict, err)
	}
	log.Info(LogMsgVerdictRecorded, "debate_id", d.ID, "verdict_id", v.ID, "winner", v.Winner)

	if err := s.bus.Publish(ctx, event.NewVerdictReadyEvent(v)); err != nil {
		log.Warn("Failed to publish verdict ready event", "debate_id", d.ID, "error", err)
	}
	return nil
}

// ExpireOverdueRounds advances every debate whose round deadline has passed.
// Returns the number of debates processed; per-debate failures are logged and
// skipped so one poisoned debate does not stall the sweep.
func (s *service) ExpireOverdueRounds(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExpirySweepStarted, "now", now)

	overdue, err := s.repo.ListDebatesPastDeadline(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetDebate, err)
	}

	processed := 0
	for i := range overdue {
		if err := s.AdvanceDebate(ctx, overdue[i].ID); err != nil {
			log.Error(LogMsgExpirySweepItemFailed, "debate_id", overdue[i].ID, "error", err)
			continue
		}
		processed++
	}

	log.Info(LogMsgExpirySweepFinished, "overdue", len(overdue), "processed", processed)
	return processed, nil
}

// maybeTriggerAI launches background responses for AI participants whose turn
// it is. No-op when AI participation is disabled.
func (s *service) maybeTriggerAI(ctx context.Context, debateID uuid.UUID) {
	if s.responder == nil {
		return
	}

	d, err := s.repo.GetDebate(ctx, debateID)
	if err != nil || d.Status != domain.DebateStatusActive {
		return
	}
	roundStmts, err := s.repo.GetRoundStatements(ctx, debateID, d.CurrentRound)
	if err != nil {
		return
	}

	var due []domain.Participant
	switch d.Format {
	case domain.FormatOneOnOne:
		if actor := turn.NextActor(d, roundStmts); actor != nil && actor.IsAI {
			due = append(due, *actor)
		}
	case domain.FormatGroup:
		for _, p := range turn.PendingParticipants(d, roundStmts) {
			if p.IsAI {
				due = append(due, p)
			}
		}
	}

	log := logger.FromContext(ctx)
	for _, p := range due {
		log.Info(LogMsgAIResponseTriggered, "debate_id", d.ID, "participant_id", p.ID)
		s.wg.Add(1)
		participant := p
		go func() {
			defer s.wg.Done()

			// Detached context; the triggering request may finish first
			respCtx, cancel := context.WithTimeout(context.Background(), aiResponseTimeout)
			defer cancel()
			s.responder.Respond(respCtx, d, participant)
		}()
	}
}

// Shutdown waits for in-flight AI responses to finish
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownForced)
		return ctx.Err()
	}
}
