package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"PricePulse/internal/domain/models"
	domrepo "PricePulse/internal/domain/repository"
	pkgkafka "PricePulse/pkg/kafka"
)

const defaultBatchWait = 2 * time.Second

// KafkaHistoryHandler consumes pricing records from Kafka and persists them
// in batches: records accumulate until batchSize is reached or batchWait
// elapses, then flush to ClickHouse in one insert.
type KafkaHistoryHandler struct {
	topic     string
	store     domrepo.HistoryStore
	metrics   domrepo.Metrics
	batchSize int
	batchWait time.Duration

	mu    sync.Mutex
	buf   []*models.HistoryRecord
	timer *time.Timer
}

func NewKafkaHistoryHandler(topic string, store domrepo.HistoryStore, metrics domrepo.Metrics, batchSize int, batchWait time.Duration) *KafkaHistoryHandler {
	if batchSize <= 0 {
		batchSize = 1
	}
	if batchWait <= 0 {
		batchWait = defaultBatchWait
	}
	return &KafkaHistoryHandler{
		topic:     topic,
		store:     store,
		metrics:   metrics,
		batchSize: batchSize,
		batchWait: batchWait,
	}
}

func (h *KafkaHistoryHandler) Topic() string { return h.topic }

// incoming message schema mirrors the publisher payload.
func (h *KafkaHistoryHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		ID              string    `json:"id"`
		ProductID       string    `json:"product_id"`
		ProductName     string    `json:"product_name"`
		BasePrice       float64   `json:"base_price"`
		Category        string    `json:"category"`
		PastSalesVolume float64   `json:"past_sales_volume"`
		Discount        float64   `json:"discount"`
		ExpectedRevenue float64   `json:"expected_revenue"`
		FinalPrice      float64   `json:"final_price"`
		Confidence      string    `json:"confidence"`
		CreatedAt       time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	// E2E latency from record creation to persistence (approx)
	if !m.CreatedAt.IsZero() {
		h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(m.CreatedAt).Seconds())
	}

	rec := &models.HistoryRecord{
		ID:              m.ID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		BasePrice:       m.BasePrice,
		Category:        m.Category,
		PastSalesVolume: m.PastSalesVolume,
		Discount:        m.Discount,
		ExpectedRevenue: m.ExpectedRevenue,
		FinalPrice:      m.FinalPrice,
		Confidence:      models.Confidence(m.Confidence),
		CreatedAt:       m.CreatedAt,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Redeliveries of an already-buffered record wait for the pending flush.
	if rec.ID != "" {
		for _, queued := range h.buf {
			if queued.ID == rec.ID {
				return nil
			}
		}
	}
	h.buf = append(h.buf, rec)

	if len(h.buf) >= h.batchSize {
		return h.flushLocked(ctx)
	}
	if h.timer == nil {
		h.timer = time.AfterFunc(h.batchWait, func() {
			_ = h.Flush(context.Background())
		})
	}
	return nil
}

// Flush persists any buffered records. Runs on the batch timer and at shutdown.
func (h *KafkaHistoryHandler) Flush(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flushLocked(ctx)
}

// flushLocked inserts the buffer in one batch; callers hold h.mu. On failure
// the buffer is kept and the timer re-armed so a later flush retries.
func (h *KafkaHistoryHandler) flushLocked(ctx context.Context) error {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if len(h.buf) == 0 {
		return nil
	}

	batch := h.buf
	start := time.Now()
	if err := h.store.InsertBatch(ctx, batch); err != nil {
		h.metrics.RecordError("consumer_store")
		h.timer = time.AfterFunc(h.batchWait, func() {
			_ = h.Flush(context.Background())
		})
		return err
	}
	h.buf = nil
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	for _, rec := range batch {
		h.metrics.RecordRecordWritten("clickhouse", rec.Category)
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaHistoryHandler)(nil)
