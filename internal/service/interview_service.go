package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intervue/intervue-backend/internal/analysis"
	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/model"
	"github.com/intervue/intervue-backend/internal/questionbank"
	"github.com/intervue/intervue-backend/internal/session"
)

var (
	// ErrSessionCompleted rejects submissions against a finished interview.
	ErrSessionCompleted = errors.New("interview already completed")
	// ErrAnswerAlreadySubmitted rejects the loser of a racing
	// double-submit for the same pending question.
	ErrAnswerAlreadySubmitted = errors.New("answer already submitted for this question")
	// ErrAnswerTooLong rejects payloads beyond the configured maximum.
	ErrAnswerTooLong = errors.New("answer exceeds maximum length")
	// ErrReportNotReady rejects report reads on an active interview.
	ErrReportNotReady = errors.New("interview not yet completed")
)

// InterviewService owns the interview state machine: question
// sequencing, per-question analysis storage, completion detection and
// final-report synthesis. Completed reports are enqueued to Redis for
// the persistence worker.
type InterviewService struct {
	bank     *questionbank.Bank
	store    *session.Store
	analyzer *analysis.Analyzer
	rdb      *redis.Client
	log      zerolog.Logger

	questionsPerSession int
	maxAnswerChars      int

	// rng backs question draws. math/rand sources are not safe for
	// concurrent use, hence the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewInterviewService wires the engine. rng is the seeded source for
// question draws (reproducible in tests); rdb may be nil to disable
// report persistence.
func NewInterviewService(
	bank *questionbank.Bank,
	store *session.Store,
	analyzer *analysis.Analyzer,
	rdb *redis.Client,
	cfg *config.Config,
	rng *rand.Rand,
	log zerolog.Logger,
) *InterviewService {
	return &InterviewService{
		bank:                bank,
		store:               store,
		analyzer:            analyzer,
		rdb:                 rdb,
		log:                 log.With().Str("component", "interview_service").Logger(),
		questionsPerSession: cfg.QuestionsPerSession,
		maxAnswerChars:      cfg.MaxAnswerChars,
		rng:                 rng,
	}
}

// Categories lists the supported interview categories.
func (s *InterviewService) Categories() []model.CategoryInfo {
	infos := make([]model.CategoryInfo, 0, len(model.Categories))
	for _, c := range model.Categories {
		infos = append(infos, model.CategoryInfo{ID: c, Name: c.DisplayName()})
	}
	return infos
}

// Create draws a fresh question set and registers a new ACTIVE session.
// Returns the session together with its first question.
func (s *InterviewService) Create(ctx context.Context, category model.Category, userID string) (*model.InterviewSession, model.Question, error) {
	s.rngMu.Lock()
	questions, err := s.bank.Draw(category, s.questionsPerSession, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, model.Question{}, fmt.Errorf("draw questions: %w", err)
	}

	sess := &model.InterviewSession{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Questions: questions,
		Results:   make([]model.QuestionResult, 0, len(questions)),
		State:     model.SessionStateActive,
		StartedAt: time.Now(),
	}
	s.store.Put(sess)

	s.log.Info().
		Str("interview_id", sess.ID.String()).
		Str("category", string(category)).
		Str("user_id", userID).
		Int("questions", len(questions)).
		Msg("Interview started")

	return sess, questions[0], nil
}

// SubmitOutcome is the result of accepting one answer: the per-question
// analysis plus either the next question or the final report.
type SubmitOutcome struct {
	Analysis     model.QuestionResult
	NextQuestion *model.Question
	NextIndex    int
	Total        int
	Report       *model.FinalReport
}

// SubmitAnswer runs the analysis pipeline for the question at the
// session's current index and commits the result. The session lock is
// held only around state reads and the commit, never across the
// embedding call, so a slow analysis for one session cannot block
// others. Either the result and index advance commit together, or the
// session is left unchanged.
func (s *InterviewService) SubmitAnswer(ctx context.Context, id uuid.UUID, answerText string) (*SubmitOutcome, error) {
	if len(answerText) > s.maxAnswerChars {
		return nil, fmt.Errorf("%w: %d chars, max %d", ErrAnswerTooLong, len(answerText), s.maxAnswerChars)
	}

	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	// Claim phase: snapshot the pending question under the lock.
	entry.Mu.Lock()
	sess := entry.Session
	if sess.State == model.SessionStateCompleted {
		entry.Mu.Unlock()
		return nil, ErrSessionCompleted
	}
	claimedIndex := sess.CurrentIndex
	question := sess.Questions[claimedIndex]
	total := sess.Total()
	entry.Mu.Unlock()

	// Analysis phase: no locks held.
	result, err := s.analyzer.Analyze(ctx, question, s.bank.CategoryKeywords(question.Category), answerText)
	if err != nil {
		return nil, fmt.Errorf("analyze answer: %w", err)
	}

	// Commit phase: re-check the claim so racing submissions for the
	// same question accept exactly one result.
	entry.Mu.Lock()
	if sess.State == model.SessionStateCompleted {
		entry.Mu.Unlock()
		return nil, ErrSessionCompleted
	}
	if sess.CurrentIndex != claimedIndex {
		entry.Mu.Unlock()
		return nil, ErrAnswerAlreadySubmitted
	}

	sess.Results = append(sess.Results, result)
	sess.CurrentIndex++

	outcome := &SubmitOutcome{
		Analysis:  result,
		NextIndex: sess.CurrentIndex,
		Total:     total,
	}

	if sess.CurrentIndex == total {
		sess.State = model.SessionStateCompleted
		report := analysis.FeedbackReport(sess.Results)
		report.InterviewID = sess.ID
		report.UserID = sess.UserID
		report.Category = sess.Category
		report.CompletedAt = time.Now()
		sess.Report = &report
		outcome.Report = &report

		envelope := model.ReportEnvelope{
			Report:  report,
			Results: append([]model.QuestionResult(nil), sess.Results...),
		}
		entry.Mu.Unlock()

		s.enqueueReport(ctx, envelope)
		s.log.Info().
			Str("interview_id", sess.ID.String()).
			Float64("overall", report.OverallScore).
			Msg("Interview completed")
		return outcome, nil
	}

	next := sess.Questions[sess.CurrentIndex]
	entry.Mu.Unlock()

	outcome.NextQuestion = &next
	return outcome, nil
}

// Status returns the introspection view of one session.
func (s *InterviewService) Status(id uuid.UUID) (model.SessionStatus, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return model.SessionStatus{}, err
	}

	entry.Mu.Lock()
	defer entry.Mu.Unlock()
	sess := entry.Session
	return model.SessionStatus{
		InterviewID:  sess.ID,
		Category:     sess.Category,
		CurrentIndex: sess.CurrentIndex,
		Total:        sess.Total(),
		State:        sess.State,
	}, nil
}

// Report returns the cached final report of a completed session.
func (s *InterviewService) Report(id uuid.UUID) (*model.FinalReport, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	entry.Mu.Lock()
	defer entry.Mu.Unlock()
	if entry.Session.Report == nil {
		return nil, ErrReportNotReady
	}
	return entry.Session.Report, nil
}

// enqueueReport pushes the completed report onto the persistence queue.
// Persistence is best-effort from the session's point of view: a queue
// failure is logged, never surfaced to the caller. The session keeps
// its in-memory report either way.
func (s *InterviewService) enqueueReport(ctx context.Context, envelope model.ReportEnvelope) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal report envelope failed")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistReportsQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).
			Str("interview_id", envelope.Report.InterviewID.String()).
			Msg("Enqueue report failed")
	}
}
