package usecase

import (
	"context"
	"fmt"
	"time"

	"PricePulse/internal/domain/models"
	drepo "PricePulse/internal/domain/repository"
)

// HistoryRecorder appends pricing history records to the configured backend.
// backend "clickhouse" inserts directly; backend "kafka" publishes to a topic
// consumed by KafkaHistoryHandler.
type HistoryRecorder struct {
	pub     drepo.Publisher
	store   drepo.HistoryStore
	metrics drepo.Metrics
	backend string
}

// NewHistoryRecorder creates a new HistoryRecorder instance.
func NewHistoryRecorder(
	pub drepo.Publisher,
	store drepo.HistoryStore,
	metrics drepo.Metrics,
	backend string,
) *HistoryRecorder {
	return &HistoryRecorder{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Record appends a single record through the configured backend.
func (r *HistoryRecorder) Record(ctx context.Context, rec *models.HistoryRecord) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	start := time.Now()
	var err error

	switch r.backend {
	case "kafka":
		err = r.pub.Publish(ctx, rec)
	case "clickhouse":
		err = r.store.Insert(ctx, rec)
	default:
		err = fmt.Errorf("unknown backend: %s", r.backend)
	}

	if err != nil {
		r.metrics.RecordError("record")
		return fmt.Errorf("record history: %w", err)
	}

	r.metrics.RecordRecordWritten(r.backend, rec.Category)
	r.metrics.RecordLatency("record", time.Since(start).Seconds())

	return nil
}

// RecordBatch appends multiple records in one backend call.
func (r *HistoryRecorder) RecordBatch(ctx context.Context, recs []*models.HistoryRecord) error {
	if len(recs) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch r.backend {
	case "kafka":
		err = r.pub.PublishBatch(ctx, recs)
	case "clickhouse":
		err = r.store.InsertBatch(ctx, recs)
	default:
		err = fmt.Errorf("unknown backend: %s", r.backend)
	}

	if err != nil {
		r.metrics.RecordError("record_batch")
		return fmt.Errorf("record batch: %w", err)
	}

	for _, rec := range recs {
		r.metrics.RecordRecordWritten(r.backend, rec.Category)
	}
	r.metrics.RecordLatency("record_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (r *HistoryRecorder) Close() {
	if r.pub != nil {
		_ = r.pub.Close()
	}
	if r.store != nil {
		_ = r.store.Close()
	}
}
