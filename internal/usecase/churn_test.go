package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PricePulse/internal/domain/models"
)

func TestChurnZeroOrders(t *testing.T) {
	scorer := &fakeChurnScorer{}
	a := NewChurnAssessor(scorer, &fakeChurnStore{}, &fakeMetrics{}, nil)

	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 0, DaysSinceLastOrder: 45,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.85+0.05*45.0/90.0, out.Risk, 1e-9)
	assert.Equal(t, 1, out.Prediction)
	assert.Equal(t, "High", out.RiskLevel)
	assert.Equal(t, 0, scorer.calls)
}

func TestChurnOneOrder(t *testing.T) {
	a := NewChurnAssessor(&fakeChurnScorer{}, &fakeChurnStore{}, &fakeMetrics{}, nil)

	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 1, DaysSinceLastOrder: 120,
	})
	require.NoError(t, err)
	// Scaling window is 60 days, capped.
	assert.InDelta(t, 0.85, out.Risk, 1e-9)
	assert.Equal(t, 1, out.Prediction)
	assert.Equal(t, "High", out.RiskLevel)
}

func TestChurnMediumTier(t *testing.T) {
	a := NewChurnAssessor(&fakeChurnScorer{}, &fakeChurnStore{}, &fakeMetrics{}, nil)

	// Low recency: risk below the 0.45 prediction cutoff.
	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 4, DaysSinceLastOrder: 12,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.42, out.Risk, 1e-9)
	assert.Equal(t, 0, out.Prediction)
	assert.Equal(t, "Medium", out.RiskLevel)

	// Stale: risk crosses the cutoff.
	out, err = a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c2", TotalOrders: 6, DaysSinceLastOrder: 60,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.50, out.Risk, 1e-9)
	assert.Equal(t, 1, out.Prediction)
}

func TestChurnModelTier(t *testing.T) {
	scorer := &fakeChurnScorer{risk: 0.72, prediction: 1}
	store := &fakeChurnStore{}
	a := NewChurnAssessor(scorer, store, &fakeMetrics{}, nil)

	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 12, DaysSinceLastOrder: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, 0.72, out.Risk)
	assert.Equal(t, "High", out.RiskLevel)
	assert.Len(t, store.inserted, 1)
}

func TestChurnModelTierBuckets(t *testing.T) {
	cases := []struct {
		risk float64
		want string
	}{
		{0.1, "Low"},
		{0.29, "Low"},
		{0.3, "Medium"},
		{0.69, "Medium"},
		{0.7, "High"},
	}
	for _, c := range cases {
		a := NewChurnAssessor(&fakeChurnScorer{risk: c.risk}, &fakeChurnStore{}, &fakeMetrics{}, nil)
		out, err := a.Assess(context.Background(), models.ChurnInput{
			CustomerID: "c1", TotalOrders: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, c.want, out.RiskLevel, "risk %v", c.risk)
	}
}

func TestChurnScorerFailureDegrades(t *testing.T) {
	metrics := &fakeMetrics{}
	a := NewChurnAssessor(&fakeChurnScorer{fail: true}, &fakeChurnStore{}, metrics, nil)

	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, out.Risk)
	assert.Equal(t, "Medium", out.RiskLevel)
	assert.Equal(t, 1, metrics.errors["churn_scorer"])
}

func TestChurnTwoOrdersGoesToModel(t *testing.T) {
	scorer := &fakeChurnScorer{risk: 0.2}
	a := NewChurnAssessor(scorer, &fakeChurnStore{}, &fakeMetrics{}, nil)

	out, err := a.Assess(context.Background(), models.ChurnInput{
		CustomerID: "c1", TotalOrders: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, "Low", out.RiskLevel)
}
