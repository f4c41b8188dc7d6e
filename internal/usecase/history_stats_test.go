package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"PricePulse/internal/domain/models"
	pkgcache "PricePulse/pkg/cache"
)

func TestSameNameStatsFiltersNonPositive(t *testing.T) {
	store := &fakeHistoryStore{
		sameName: []models.HistoryRecord{
			{ProductID: "a", PastSalesVolume: 100, BasePrice: 50},
			{ProductID: "b", PastSalesVolume: 0, BasePrice: 0},
			{ProductID: "c", PastSalesVolume: 200, BasePrice: 70},
		},
	}
	s := NewHistoryStats(store, nil, time.Second, nil)

	st := s.SameName(context.Background(), "Tomato", "p1")
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, []float64{100, 200}, st.Sales)
	assert.Equal(t, []float64{50, 70}, st.Prices)
	assert.Equal(t, 150.0, st.SalesAvg)
	assert.Equal(t, 100.0, st.SalesMin)
	assert.Equal(t, 200.0, st.SalesMax)
	assert.Equal(t, 60.0, st.PriceAvg)
	assert.Equal(t, 70.0, st.PriceMax)
}

func TestSameNameStatsDegradeOnFailure(t *testing.T) {
	s := NewHistoryStats(&fakeHistoryStore{failRead: true}, nil, time.Second, nil)
	st := s.SameName(context.Background(), "Tomato", "p1")
	assert.Equal(t, 0, st.Count)
	assert.Empty(t, st.Sales)
}

func TestCategoryPercentiles(t *testing.T) {
	store := &fakeHistoryStore{
		sales:  []float64{10, 20, 30, 40},
		prices: []float64{5, 15, 25, 35},
	}
	s := NewHistoryStats(store, nil, time.Second, nil)

	st := s.Category(context.Background(), "vegetables", 25, 35)
	// 2 of 4 sales strictly below 25; 3 of 4 prices strictly below 35.
	assert.Equal(t, 50.0, st.SalesPercentile)
	assert.Equal(t, 75.0, st.PricePercentile)
}

func TestCategoryPercentilesDefaultToMedian(t *testing.T) {
	s := NewHistoryStats(&fakeHistoryStore{}, nil, time.Second, nil)
	st := s.Category(context.Background(), "vegetables", 25, 35)
	assert.Equal(t, 50.0, st.SalesPercentile)
	assert.Equal(t, 50.0, st.PricePercentile)

	s = NewHistoryStats(&fakeHistoryStore{failRead: true}, nil, time.Second, nil)
	st = s.Category(context.Background(), "vegetables", 25, 35)
	assert.Equal(t, 50.0, st.SalesPercentile)
	assert.Equal(t, 50.0, st.PricePercentile)
}

func TestCategoryPercentilesServedFromCache(t *testing.T) {
	store := &fakeHistoryStore{
		sales:  []float64{10, 20, 30, 40},
		prices: []float64{5, 15, 25, 35},
	}
	mc := pkgcache.NewMemoryCache()
	defer mc.Close()
	s := NewHistoryStats(store, mc, 30*time.Second, nil)

	first := s.Category(context.Background(), "vegetables", 25, 35)
	second := s.Category(context.Background(), "vegetables", 25, 35)

	assert.Equal(t, first, second)
	assert.Equal(t, 50.0, second.SalesPercentile)
	assert.Equal(t, 75.0, second.PricePercentile)
	// second call is served from the cache
	assert.Equal(t, 1, store.salesReads)
	assert.Equal(t, 1, store.pricesReads)
}

func TestPercentileRankStrictlyLess(t *testing.T) {
	vals := []float64{10, 20, 30}
	assert.Equal(t, 0.0, percentileRank(vals, 10))
	assert.InDelta(t, 33.333, percentileRank(vals, 20), 0.01)
	assert.Equal(t, 100.0, percentileRank(vals, 31))
}
