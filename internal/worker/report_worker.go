package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/model"
	"github.com/intervue/intervue-backend/internal/repository"
)

const (
	ReportBatchSize    = 50
	ReportBatchTimeout = 2 * time.Second
	ReportPollTimeout  = 1 * time.Second
)

// ReportWorker drains the report persistence queue and writes completed
// interview reports to PostgreSQL in batches. Persistence is
// best-effort: failed items are requeued, and a lost report never
// affects the in-memory session it came from.
type ReportWorker struct {
	repo *repository.ReportRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewReportWorker(repo *repository.ReportRepository, rdb *redis.Client, log zerolog.Logger) *ReportWorker {
	return &ReportWorker{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "report_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ReportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ReportWorker started")

	batch := make([]model.ReportEnvelope, 0, ReportBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ReportBatchSize || time.Since(lastFlush) >= ReportBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ReportPollTimeout, config.WorkerKey.PersistReportsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var envelope model.ReportEnvelope
			if err := json.Unmarshal([]byte(item[1]), &envelope); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, envelope)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper with per-item fallback
// ----------------------------------------------------------------

func (w *ReportWorker) flushSafe(ctx context.Context, batch []model.ReportEnvelope) {
	if len(batch) == 0 {
		return
	}

	if err := w.repo.BulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk report insert failed, using fallback")

		for _, envelope := range batch {
			if err := w.repo.InsertSingle(ctx, envelope); err != nil {
				w.log.Error().Err(err).
					Str("interview_id", envelope.Report.InterviewID.String()).
					Msg("single insert failed, requeueing")
				raw, _ := json.Marshal(envelope)
				w.rdb.RPush(ctx, config.WorkerKey.PersistReportsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("Report batch persisted")
}
