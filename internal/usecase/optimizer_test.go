package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PricePulse/internal/domain/models"
	domsvc "PricePulse/internal/domain/service"
	"PricePulse/internal/pricing"
)

func newTestOptimizer(store *fakeHistoryStore, scorer *fakeRevenueScorer) (*Optimizer, *fakeMetrics) {
	metrics := &fakeMetrics{}
	stats := NewHistoryStats(store, nil, time.Second, nil)
	recorder := NewHistoryRecorder(nil, store, metrics, "clickhouse")
	encoder := &fakeEncoder{categories: []string{"vegetables", "fruits", "dairy"}}
	var rs domsvc.RevenueScorer
	if scorer != nil {
		rs = scorer
	}
	opt := NewOptimizer(stats, recorder, rs, encoder, metrics, nil)
	return opt, metrics
}

func weekday() *models.TemporalContext {
	return &models.TemporalContext{Month: 6, DayOfWeek: 2, Weekend: 0}
}

func TestOptimizeNoHistory(t *testing.T) {
	store := &fakeHistoryStore{}
	opt, _ := newTestOptimizer(store, nil)

	res, err := opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Tomato",
		BasePrice:       100,
		Category:        "vegetables",
		PastSalesVolume: 0,
		Temporal:        weekday(),
	})
	require.NoError(t, err)

	// No history: branch B with median percentiles adds nothing, so the
	// result is the clamped grid optimum.
	e := pricing.DeriveElasticity(100, 0, "vegetables")
	grid := pricing.SearchGrid(100, e)
	want := grid.Discount
	if want < pricing.DiscountMin {
		want = pricing.DiscountMin
	}
	assert.Equal(t, want, res.Discount)
	assert.GreaterOrEqual(t, res.Discount, 5.0)
	assert.LessOrEqual(t, res.Discount, 30.0)
	assert.InDelta(t, 100*(1-res.Discount/100), res.FinalPrice, 1e-9)
	assert.Greater(t, res.ExpectedRevenue, 0.0)
	assert.Equal(t, 1, store.insertedCount())
}

func TestOptimizeSameNameBelowMinimum(t *testing.T) {
	history := []models.HistoryRecord{
		{ProductID: "other1", ProductName: "Tomato", BasePrice: 100, PastSalesVolume: 100},
		{ProductID: "other2", ProductName: "Tomato", BasePrice: 100, PastSalesVolume: 200},
	}
	store := &fakeHistoryStore{sameName: history}
	opt, _ := newTestOptimizer(store, nil)

	req := &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Tomato",
		BasePrice:       100,
		Category:        "vegetables",
		PastSalesVolume: 50, // below the observed minimum of 100
		Temporal:        weekday(),
	}
	res, err := opt.Optimize(context.Background(), req)
	require.NoError(t, err)

	e := pricing.DeriveElasticity(100, 50, "vegetables")
	grid := pricing.SearchGrid(100, e)
	want := grid.Discount + 5 // below-min volume bracket, no price term
	if want > pricing.DiscountMax {
		want = pricing.DiscountMax
	}
	assert.Equal(t, want, res.Discount)
	assert.InDelta(t, pricing.ExpectedRevenue(100, res.Discount, e), res.ExpectedRevenue, 1e-9)
	assert.InDelta(t, 100*(1-res.Discount/100), res.FinalPrice, 1e-9)
}

func TestOptimizeDegenerateZeroPrice(t *testing.T) {
	store := &fakeHistoryStore{}
	opt, _ := newTestOptimizer(store, nil)

	res, err := opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Freebie",
		BasePrice:       0,
		Category:        "fruits",
		PastSalesVolume: 10,
		Temporal:        weekday(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Discount)
	assert.Equal(t, 0.0, res.ExpectedRevenue)
	assert.Equal(t, 0.0, res.FinalPrice)
	assert.Equal(t, models.ConfidenceLow, res.Confidence)
	// Degenerate runs still append exactly one record.
	assert.Equal(t, 1, store.insertedCount())
}

func TestOptimizeRejectsInvalidInput(t *testing.T) {
	store := &fakeHistoryStore{}
	opt, _ := newTestOptimizer(store, nil)

	_, err := opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID: "p1", ProductName: "x", BasePrice: -1, Category: "fruits",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID: "p1", ProductName: "x", BasePrice: 10, Category: "  ",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, store.insertedCount())
}

func TestOptimizeDeterministic(t *testing.T) {
	store := &fakeHistoryStore{
		sameName: []models.HistoryRecord{
			{ProductID: "o1", ProductName: "Rice", BasePrice: 60, PastSalesVolume: 300},
		},
		sales:  []float64{10, 200, 400},
		prices: []float64{20, 60, 90},
	}
	opt, _ := newTestOptimizer(store, nil)

	req := &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Rice",
		BasePrice:       55,
		Category:        "grains",
		PastSalesVolume: 120,
		Temporal:        weekday(),
	}
	a, err := opt.Optimize(context.Background(), req)
	require.NoError(t, err)
	b, err := opt.Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Discount, b.Discount)
	assert.Equal(t, a.ExpectedRevenue, b.ExpectedRevenue)
	assert.Equal(t, a.FinalPrice, b.FinalPrice)
	assert.Equal(t, a.Confidence, b.Confidence)
}

func TestOptimizeDegradesOnStoreFailure(t *testing.T) {
	// Read failures must not abort the optimization; inserts still work in
	// this fake, so the pipeline completes with default statistics.
	store := &fakeHistoryStore{failRead: true}
	opt, _ := newTestOptimizer(store, nil)

	res, err := opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Tomato",
		BasePrice:       100,
		Category:        "vegetables",
		PastSalesVolume: 0,
		Temporal:        weekday(),
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Discount, 5.0)
	assert.LessOrEqual(t, res.Discount, 30.0)
}

func TestOptimizeScorerFailureIgnored(t *testing.T) {
	store := &fakeHistoryStore{}
	scorer := &fakeRevenueScorer{fail: true}
	opt, metrics := newTestOptimizer(store, scorer)

	res, err := opt.Optimize(context.Background(), &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Tomato",
		BasePrice:       100,
		Category:        "vegetables",
		PastSalesVolume: 10,
		Temporal:        weekday(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, 1, metrics.errors["scorer"])

	// Scorer output never changes the result.
	storeOK := &fakeHistoryStore{}
	optOK, _ := newTestOptimizer(storeOK, &fakeRevenueScorer{})
	res2, err := optOK.Optimize(context.Background(), &models.PricingRequest{
		ProductID:       "p1",
		ProductName:     "Tomato",
		BasePrice:       100,
		Category:        "vegetables",
		PastSalesVolume: 10,
		Temporal:        weekday(),
	})
	require.NoError(t, err)
	assert.Equal(t, res.Discount, res2.Discount)
	assert.Equal(t, res.ExpectedRevenue, res2.ExpectedRevenue)
}
