package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyPayload(t *testing.T, id string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]interface{}{
		"id":                id,
		"product_id":        "p1",
		"product_name":      "Tomato",
		"base_price":        40.0,
		"category":          "vegetables",
		"past_sales_volume": 120.0,
		"discount":          12.5,
		"expected_revenue":  4200.0,
		"final_price":       35.0,
		"confidence":        "High",
		"created_at":        time.Now().UTC(),
	})
	require.NoError(t, err)
	return b
}

func TestKafkaHistoryHandlerFlushesAtBatchSize(t *testing.T) {
	store := &fakeHistoryStore{}
	h := NewKafkaHistoryHandler("pricing.history", store, &fakeMetrics{}, 2, time.Hour)

	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	assert.Equal(t, 0, store.insertedCount())

	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r2")))
	assert.Equal(t, 2, store.insertedCount())
}

func TestKafkaHistoryHandlerFlushesOnTimer(t *testing.T) {
	store := &fakeHistoryStore{}
	h := NewKafkaHistoryHandler("pricing.history", store, &fakeMetrics{}, 10, 20*time.Millisecond)

	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	assert.Eventually(t, func() bool {
		return store.insertedCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestKafkaHistoryHandlerFlushOnShutdown(t *testing.T) {
	store := &fakeHistoryStore{}
	h := NewKafkaHistoryHandler("pricing.history", store, &fakeMetrics{}, 10, time.Hour)

	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	require.NoError(t, h.Flush(context.Background()))
	assert.Equal(t, 1, store.insertedCount())
}

func TestKafkaHistoryHandlerRedeliveryNotDuplicated(t *testing.T) {
	store := &fakeHistoryStore{}
	h := NewKafkaHistoryHandler("pricing.history", store, &fakeMetrics{}, 10, time.Hour)

	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	require.NoError(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	require.NoError(t, h.Flush(context.Background()))
	assert.Equal(t, 1, store.insertedCount())
}

func TestKafkaHistoryHandlerRetainsBatchOnFailure(t *testing.T) {
	store := &fakeHistoryStore{failWrite: true}
	h := NewKafkaHistoryHandler("pricing.history", store, &fakeMetrics{}, 1, time.Hour)

	require.Error(t, h.Handle(context.Background(), historyPayload(t, "r1")))
	assert.Equal(t, 0, store.insertedCount())

	store.setFailWrite(false)
	require.NoError(t, h.Flush(context.Background()))
	assert.Equal(t, 1, store.insertedCount())
}

func TestKafkaHistoryHandlerBadPayload(t *testing.T) {
	metrics := &fakeMetrics{}
	h := NewKafkaHistoryHandler("pricing.history", &fakeHistoryStore{}, metrics, 1, time.Hour)

	require.Error(t, h.Handle(context.Background(), []byte("{not json")))
	assert.Equal(t, 1, metrics.errors["consumer_unmarshal"])
}
