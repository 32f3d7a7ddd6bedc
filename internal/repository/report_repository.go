package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/intervue/intervue-backend/internal/model"
)

// ReportRepository persists completed interview reports and their raw
// per-question results. Sessions themselves are never persisted; only
// finished reports reach PostgreSQL.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// BulkInsert writes a batch of report envelopes in one transaction:
// reports via a single UNNEST insert, result rows via a pgx batch.
func (r *ReportRepository) BulkInsert(ctx context.Context, envelopes []model.ReportEnvelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	n := len(envelopes)
	interviewIDs := make([]uuid.UUID, 0, n)
	userIDs := make([]string, 0, n)
	categories := make([]string, 0, n)
	overalls := make([]float64, 0, n)
	relevances := make([]float64, 0, n)
	completenesses := make([]float64, 0, n)
	clarities := make([]float64, 0, n)
	accuracies := make([]float64, 0, n)
	summaries := make([]string, 0, n)

	for _, e := range envelopes {
		rep := e.Report
		interviewIDs = append(interviewIDs, rep.InterviewID)
		userIDs = append(userIDs, rep.UserID)
		categories = append(categories, string(rep.Category))
		overalls = append(overalls, rep.OverallScore)
		relevances = append(relevances, rep.AvgRelevance)
		completenesses = append(completenesses, rep.AvgCompleteness)
		clarities = append(clarities, rep.AvgClarity)
		accuracies = append(accuracies, rep.AvgAccuracy)
		summaries = append(summaries, rep.Summary)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO interview_reports
			(interview_id, user_id, category, overall_score,
			 avg_relevance, avg_completeness, avg_clarity, avg_accuracy, summary)
		SELECT * FROM UNNEST(
			$1::uuid[], $2::text[], $3::text[], $4::float8[],
			$5::float8[], $6::float8[], $7::float8[], $8::float8[], $9::text[]
		)
		ON CONFLICT (interview_id) DO NOTHING`,
		interviewIDs, userIDs, categories, overalls,
		relevances, completenesses, clarities, accuracies, summaries,
	)
	if err != nil {
		return fmt.Errorf("insert reports: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range envelopes {
		rep := e.Report
		batch.Queue(`
			UPDATE interview_reports
			SET strengths = $2, improvements = $3, completed_at = $4
			WHERE interview_id = $1`,
			rep.InterviewID, rep.Strengths, rep.Improvements, rep.CompletedAt,
		)
		for i, res := range e.Results {
			batch.Queue(`
				INSERT INTO interview_report_results
					(interview_id, position, question_id, answer_text,
					 relevance, completeness, clarity, technical_accuracy,
					 overall_score, quality_label)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (interview_id, position) DO NOTHING`,
				rep.InterviewID, i, res.QuestionID, res.AnswerText,
				res.Relevance, res.Completeness, res.Clarity, res.TechnicalAccuracy,
				res.Overall, string(res.QualityLabel),
			)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert results: %w", err)
	}

	return tx.Commit(ctx)
}

// InsertSingle persists one envelope. Used as the per-item fallback
// when a bulk insert fails.
func (r *ReportRepository) InsertSingle(ctx context.Context, envelope model.ReportEnvelope) error {
	return r.BulkInsert(ctx, []model.ReportEnvelope{envelope})
}

// ListByUser returns persisted reports for one user, newest first.
func (r *ReportRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.FinalReport, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_reports WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	offset := (page - 1) * perPage
	rows, err := r.pool.Query(ctx, `
		SELECT interview_id, user_id, category, overall_score,
		       avg_relevance, avg_completeness, avg_clarity, avg_accuracy,
		       COALESCE(strengths, '{}'), COALESCE(improvements, '{}'),
		       summary, completed_at
		FROM interview_reports
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2 OFFSET $3`, userID, perPage, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []model.FinalReport
	for rows.Next() {
		var rep model.FinalReport
		if err := rows.Scan(
			&rep.InterviewID, &rep.UserID, &rep.Category, &rep.OverallScore,
			&rep.AvgRelevance, &rep.AvgCompleteness, &rep.AvgClarity, &rep.AvgAccuracy,
			&rep.Strengths, &rep.Improvements, &rep.Summary, &rep.CompletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, total, rows.Err()
}

// GetByID returns one persisted report with its raw results.
func (r *ReportRepository) GetByID(ctx context.Context, interviewID uuid.UUID) (*model.FinalReport, []model.QuestionResult, error) {
	rep := &model.FinalReport{}
	err := r.pool.QueryRow(ctx, `
		SELECT interview_id, user_id, category, overall_score,
		       avg_relevance, avg_completeness, avg_clarity, avg_accuracy,
		       COALESCE(strengths, '{}'), COALESCE(improvements, '{}'),
		       summary, completed_at
		FROM interview_reports
		WHERE interview_id = $1`, interviewID,
	).Scan(
		&rep.InterviewID, &rep.UserID, &rep.Category, &rep.OverallScore,
		&rep.AvgRelevance, &rep.AvgCompleteness, &rep.AvgClarity, &rep.AvgAccuracy,
		&rep.Strengths, &rep.Improvements, &rep.Summary, &rep.CompletedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT question_id, answer_text, relevance, completeness, clarity,
		       technical_accuracy, overall_score, quality_label
		FROM interview_report_results
		WHERE interview_id = $1
		ORDER BY position`, interviewID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []model.QuestionResult
	for rows.Next() {
		var res model.QuestionResult
		if err := rows.Scan(
			&res.QuestionID, &res.AnswerText, &res.Relevance, &res.Completeness,
			&res.Clarity, &res.TechnicalAccuracy, &res.Overall, &res.QualityLabel,
		); err != nil {
			return nil, nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, res)
	}
	return rep, results, rows.Err()
}
