package repository

import (
	"context"

	"PricePulse/internal/domain/models"
)

// HistoryStore is the append-only pricing history table. Records are never
// mutated or deleted; reads may observe any subset of committed writes.
type HistoryStore interface {
	Insert(ctx context.Context, rec *models.HistoryRecord) error
	InsertBatch(ctx context.Context, recs []*models.HistoryRecord) error
	// SameName returns up to limit records sharing the product name,
	// newest first, excluding the given product id.
	SameName(ctx context.Context, productName, excludeProductID string, limit int) ([]models.HistoryRecord, error)
	// CategorySales returns the distinct positive sales volumes recorded
	// for a category.
	CategorySales(ctx context.Context, category string) ([]float64, error)
	// CategoryPrices returns the distinct positive base prices recorded
	// for a category.
	CategoryPrices(ctx context.Context, category string) ([]float64, error)
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits history records to the event backend.
type Publisher interface {
	Publish(ctx context.Context, rec *models.HistoryRecord) error
	PublishBatch(ctx context.Context, recs []*models.HistoryRecord) error
	Close() error
}

// ChurnStore persists churn assessments.
type ChurnStore interface {
	Insert(ctx context.Context, a *models.ChurnAssessment) error
	Recent(ctx context.Context, limit int) ([]models.ChurnAssessment, error)
}

// CustomerStore persists customer category predictions.
type CustomerStore interface {
	Insert(ctx context.Context, p *models.CustomerPrediction) error
	Recent(ctx context.Context, limit int) ([]models.CustomerPrediction, error)
}

// Metrics abstracts the Prometheus recorder.
type Metrics interface {
	RecordOptimization(category string, confidence string)
	RecordDiscount(category string, pct float64)
	RecordRecordWritten(backend string, category string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
