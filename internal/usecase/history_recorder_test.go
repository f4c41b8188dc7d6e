package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PricePulse/internal/domain/models"
)

func TestHistoryRecorderRoutesByBackend(t *testing.T) {
	rec := &models.HistoryRecord{ID: "r1", Category: "vegetables"}

	store := &fakeHistoryStore{}
	r := NewHistoryRecorder(nil, store, &fakeMetrics{}, "clickhouse")
	require.NoError(t, r.Record(context.Background(), rec))
	assert.Equal(t, 1, store.insertedCount())

	pub := &fakePublisher{}
	r = NewHistoryRecorder(pub, &fakeHistoryStore{}, &fakeMetrics{}, "kafka")
	require.NoError(t, r.Record(context.Background(), rec))
	assert.Equal(t, 1, pub.publishedCount())
}

func TestHistoryRecorderBatchRoutesByBackend(t *testing.T) {
	recs := []*models.HistoryRecord{
		{ID: "r1", Category: "vegetables"},
		{ID: "r2", Category: "fruits"},
	}

	store := &fakeHistoryStore{}
	r := NewHistoryRecorder(nil, store, &fakeMetrics{}, "clickhouse")
	require.NoError(t, r.RecordBatch(context.Background(), recs))
	assert.Equal(t, 2, store.insertedCount())

	pub := &fakePublisher{}
	r = NewHistoryRecorder(pub, &fakeHistoryStore{}, &fakeMetrics{}, "kafka")
	require.NoError(t, r.RecordBatch(context.Background(), recs))
	assert.Equal(t, 2, pub.publishedCount())
}

func TestHistoryRecorderUnknownBackend(t *testing.T) {
	metrics := &fakeMetrics{}
	r := NewHistoryRecorder(nil, &fakeHistoryStore{}, metrics, "postgres")

	require.Error(t, r.Record(context.Background(), &models.HistoryRecord{ID: "r1"}))
	assert.Equal(t, 1, metrics.errors["record"])
}
