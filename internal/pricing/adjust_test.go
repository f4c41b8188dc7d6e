package pricing

import (
	"testing"

	"PricePulse/internal/domain/models"
)

func neutralCategory() models.CategoryStats {
	return models.CategoryStats{SalesPercentile: 50, PricePercentile: 50}
}

func TestAdjustNoHistoryMedianPercentiles(t *testing.T) {
	// Branch B with median percentiles contributes nothing; only the clamp
	// applies.
	got := AdjustDiscount(10, 100, 0, models.SameNameStats{}, neutralCategory())
	if got != 10 {
		t.Fatalf("adjusted %v, want 10", got)
	}
	got = AdjustDiscount(2, 100, 0, models.SameNameStats{}, neutralCategory())
	if got != 5 {
		t.Fatalf("clamp low: got %v, want 5", got)
	}
}

func TestAdjustSameNameVolumeBrackets(t *testing.T) {
	sn := models.SameNameStats{
		Count:    5,
		Sales:    []float64{50, 200, 350},
		SalesAvg: 200,
		SalesMin: 50,
		SalesMax: 350,
	}
	cases := []struct {
		volume float64
		want   float64
	}{
		{0, 16},     // +6.0
		{40, 15},    // below min, +5.0
		{49, 15},    // still below min
		{99, 14},    // < 0.5*avg
		{150, 12.5}, // < avg
		{250, 10.5}, // < 1.5*avg
		{299, 10.5}, // still < 1.5*avg
		{350, 6},    // >= max, -4.0
		{340, 7.5},  // between 1.5*avg and max
	}
	for _, c := range cases {
		got := AdjustDiscount(10, 100, c.volume, sn, neutralCategory())
		if got != c.want {
			t.Fatalf("volume %v: got %v, want %v", c.volume, got, c.want)
		}
	}
}

func TestAdjustSameNameElseBracket(t *testing.T) {
	sn := models.SameNameStats{
		Count:    3,
		Sales:    []float64{100, 200, 600},
		SalesAvg: 300,
		SalesMin: 100,
		SalesMax: 600,
	}
	// 1.5*avg <= volume < max falls to the else bracket, -2.5.
	got := AdjustDiscount(10, 100, 500, sn, neutralCategory())
	if got != 7.5 {
		t.Fatalf("got %v, want 7.5", got)
	}
}

func TestAdjustSameNamePriceBrackets(t *testing.T) {
	sn := models.SameNameStats{
		Count:    4,
		Sales:    []float64{100, 200, 300},
		SalesAvg: 200,
		SalesMin: 100,
		SalesMax: 300,
		Prices:   []float64{50, 100, 150},
		PriceAvg: 100,
		PriceMax: 150,
	}
	// Volume term fixed at +0.5 (250 < 1.5*avg).
	cases := []struct {
		price float64
		want  float64
	}{
		{160, 13},   // above max, +2.5
		{130, 12},   // > 1.2*avg, +1.5
		{75, 9.5},   // < 0.8*avg, -1.0
		{100, 10.5}, // no price term
	}
	for _, c := range cases {
		got := AdjustDiscount(10, c.price, 250, sn, neutralCategory())
		if got != c.want {
			t.Fatalf("price %v: got %v, want %v", c.price, got, c.want)
		}
	}
}

func TestAdjustCategoryBranchBrackets(t *testing.T) {
	cases := []struct {
		salesPct float64
		want     float64
	}{
		{10, 14}, // +4.0
		{24.9, 14},
		{25, 12}, // +2.0
		{49.9, 12},
		{50, 10}, // else, 0
		{74.9, 10},
		{75, 7}, // -3.0
		{90, 7},
	}
	for _, c := range cases {
		got := AdjustDiscount(10, 100, 0, models.SameNameStats{}, models.CategoryStats{SalesPercentile: c.salesPct, PricePercentile: 50})
		if got != c.want {
			t.Fatalf("sales pct %v: got %v, want %v", c.salesPct, got, c.want)
		}
	}
}

func TestAdjustPricePercentileTerm(t *testing.T) {
	high := AdjustDiscount(10, 100, 0, models.SameNameStats{}, models.CategoryStats{SalesPercentile: 50, PricePercentile: 80})
	if high != 12 {
		t.Fatalf("high price pct: got %v, want 12", high)
	}
	low := AdjustDiscount(10, 100, 0, models.SameNameStats{}, models.CategoryStats{SalesPercentile: 50, PricePercentile: 20})
	if low != 8.5 {
		t.Fatalf("low price pct: got %v, want 8.5", low)
	}
}

func TestAdjustClampBounds(t *testing.T) {
	// Large positive stack still clamps to 30.
	sn := models.SameNameStats{
		Count:    2,
		Sales:    []float64{500, 600},
		SalesAvg: 550,
		SalesMin: 500,
		SalesMax: 600,
		Prices:   []float64{10, 20},
		PriceAvg: 15,
		PriceMax: 20,
	}
	got := AdjustDiscount(28, 100, 0, sn, models.CategoryStats{SalesPercentile: 50, PricePercentile: 90})
	if got != 30 {
		t.Fatalf("clamp high: got %v, want 30", got)
	}
	// Large negative stack clamps to 5.
	got = AdjustDiscount(6, 100, 700, sn, models.CategoryStats{SalesPercentile: 50, PricePercentile: 10})
	if got != 5 {
		t.Fatalf("clamp low: got %v, want 5", got)
	}
}
