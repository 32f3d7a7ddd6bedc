package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/intervue/intervue-backend/internal/analysis"
	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/model"
	"github.com/intervue/intervue-backend/internal/questionbank"
	"github.com/intervue/intervue-backend/internal/session"
)

const testAnswer = "In my previous role I handled this by breaking the problem into smaller pieces. " +
	"For example, we shipped the risky part behind a feature flag and measured the results for a week."

// fixedEmbedder returns the same vector for every text, pinning the
// similarity dimension at 10.
type fixedEmbedder struct{}

func (fixedEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

// flakyEmbedder fails its first n calls, then recovers.
type flakyEmbedder struct{ failures int }

func (e *flakyEmbedder) Embed(context.Context, string) ([]float32, error) {
	if e.failures > 0 {
		e.failures--
		return nil, errors.New("timeout")
	}
	return []float32{1, 0}, nil
}

// blockingEmbedder parks every caller until release is closed, and
// reports arrivals on entered. Used to force two submissions to claim
// the same question before either commits.
type blockingEmbedder struct {
	entered chan struct{}
	release chan struct{}
}

func (e *blockingEmbedder) Embed(context.Context, string) ([]float32, error) {
	e.entered <- struct{}{}
	<-e.release
	return []float32{1, 0}, nil
}

func newTestService(t *testing.T, emb analysis.Embedder, perSession int) *InterviewService {
	t.Helper()

	bank, err := questionbank.Load()
	require.NoError(t, err)

	cfg := &config.Config{
		QuestionsPerSession: perSession,
		MaxAnswerChars:      8000,
		MaxSessions:         100,
	}
	analyzer := analysis.NewAnalyzer(config.DefaultScoringPolicy(), emb, zerolog.Nop())
	store := session.NewStore(cfg.MaxSessions, zerolog.Nop())
	rng := rand.New(rand.NewSource(42))

	return NewInterviewService(bank, store, analyzer, nil, cfg, rng, zerolog.Nop())
}

func completeSession(t *testing.T, svc *InterviewService, id uuid.UUID, total int) *SubmitOutcome {
	t.Helper()
	var last *SubmitOutcome
	for i := 0; i < total; i++ {
		outcome, err := svc.SubmitAnswer(context.Background(), id, testAnswer)
		require.NoError(t, err)
		last = outcome
	}
	return last
}

func TestCreate_StartsActiveWithFirstQuestion(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)

	sess, first, err := svc.Create(context.Background(), model.CategoryTechnical, "u1")
	require.NoError(t, err)
	require.Equal(t, model.SessionStateActive, sess.State)
	require.Len(t, sess.Questions, 8)
	require.Equal(t, sess.Questions[0], first)
	require.Zero(t, sess.CurrentIndex)

	status, err := svc.Status(sess.ID)
	require.NoError(t, err)
	require.Equal(t, 0, status.CurrentIndex)
	require.Equal(t, 8, status.Total)
	require.Equal(t, model.SessionStateActive, status.State)
}

func TestCreate_UnknownCategory(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)
	_, _, err := svc.Create(context.Background(), model.Category("astrology"), "u1")
	require.ErrorIs(t, err, questionbank.ErrUnknownCategory)
}

func TestSubmitAnswer_FullFlowCompletesOnLastQuestion(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)
	sess, _, err := svc.Create(context.Background(), model.CategoryBehavioral, "u1")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		outcome, err := svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
		require.NoError(t, err)
		require.Equal(t, i+1, outcome.NextIndex)
		require.NotNil(t, outcome.NextQuestion)
		require.Nil(t, outcome.Report)
		require.Equal(t, sess.Questions[i+1].ID, outcome.NextQuestion.ID)
	}

	last, err := svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
	require.NoError(t, err)
	require.Nil(t, last.NextQuestion)
	require.NotNil(t, last.Report)
	require.Equal(t, sess.ID, last.Report.InterviewID)
	require.Equal(t, "u1", last.Report.UserID)
	require.False(t, last.Report.CompletedAt.IsZero())

	status, err := svc.Status(sess.ID)
	require.NoError(t, err)
	require.Equal(t, model.SessionStateCompleted, status.State)
	require.Equal(t, 8, status.CurrentIndex)

	report, err := svc.Report(sess.ID)
	require.NoError(t, err)
	require.Equal(t, last.Report, report)
}

func TestSubmitAnswer_AfterCompletion(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 2)
	sess, _, err := svc.Create(context.Background(), model.CategorySales, "u1")
	require.NoError(t, err)
	completeSession(t, svc, sess.ID, 2)

	_, err = svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
	require.ErrorIs(t, err, ErrSessionCompleted)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)
	_, err := svc.SubmitAnswer(context.Background(), uuid.New(), testAnswer)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSubmitAnswer_TooLong(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)
	sess, _, err := svc.Create(context.Background(), model.CategoryManagement, "u1")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), sess.ID, strings.Repeat("a", 8001))
	require.ErrorIs(t, err, ErrAnswerTooLong)
}

func TestSubmitAnswer_EmbeddingFailureLeavesSessionUnchanged(t *testing.T) {
	emb := &flakyEmbedder{failures: 1}
	svc := newTestService(t, emb, 8)
	sess, _, err := svc.Create(context.Background(), model.CategoryTechnical, "u1")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
	require.ErrorIs(t, err, analysis.ErrEmbeddingUnavailable)

	// No partial commit: the same question is still pending.
	status, err := svc.Status(sess.ID)
	require.NoError(t, err)
	require.Equal(t, 0, status.CurrentIndex)
	require.Equal(t, model.SessionStateActive, status.State)

	// A retry against the recovered embedder succeeds.
	outcome, err := svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
	require.NoError(t, err)
	require.Equal(t, 1, outcome.NextIndex)
}

func TestReport_NotReadyWhileActive(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 8)
	sess, _, err := svc.Create(context.Background(), model.CategoryTechnical, "u1")
	require.NoError(t, err)

	_, err = svc.Report(sess.ID)
	require.ErrorIs(t, err, ErrReportNotReady)
}

func TestSubmitAnswer_ConcurrentSessionsAreIndependent(t *testing.T) {
	svc := newTestService(t, fixedEmbedder{}, 4)

	ids := make([]uuid.UUID, 0, 4)
	for _, cat := range model.Categories {
		sess, _, err := svc.Create(context.Background(), cat, "u-"+string(cat))
		require.NoError(t, err)
		ids = append(ids, sess.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			for i := 0; i < 4; i++ {
				if _, err := svc.SubmitAnswer(context.Background(), id, testAnswer); err != nil {
					t.Errorf("session %s: %v", id, err)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		status, err := svc.Status(id)
		require.NoError(t, err)
		require.Equal(t, model.SessionStateCompleted, status.State)
	}
}

func TestSubmitAnswer_RacingSubmitsAcceptExactlyOne(t *testing.T) {
	emb := &blockingEmbedder{
		entered: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
	svc := newTestService(t, emb, 8)
	sess, _, err := svc.Create(context.Background(), model.CategoryTechnical, "u1")
	require.NoError(t, err)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.SubmitAnswer(context.Background(), sess.ID, testAnswer)
			errs <- err
		}()
	}

	// Both submissions have claimed the same question once each has
	// reached the embedder. Only then let the analyses finish.
	<-emb.entered
	<-emb.entered
	close(emb.release)

	first, second := <-errs, <-errs
	accepted, rejected := 0, 0
	for _, err := range []error{first, second} {
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, ErrAnswerAlreadySubmitted)
		rejected++
	}
	require.Equal(t, 1, accepted)
	require.Equal(t, 1, rejected)

	status, err := svc.Status(sess.ID)
	require.NoError(t, err)
	require.Equal(t, 1, status.CurrentIndex)
}
