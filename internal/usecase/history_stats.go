package usecase

import (
	"context"
	"encoding/json"
	"time"

	"PricePulse/internal/domain/models"
	drepo "PricePulse/internal/domain/repository"
	pkgcache "PricePulse/pkg/cache"
	applogger "PricePulse/pkg/logger"
)

const sameNameLimit = 50

// HistoryStats aggregates comparative statistics from the pricing history.
// Read-only and advisory: every data-access failure degrades to defaults
// (count 0, percentile 50) and is logged, never surfaced.
type HistoryStats struct {
	store drepo.HistoryStore
	cache pkgcache.Service // optional
	ttl   time.Duration
	l     *applogger.Logger
}

func NewHistoryStats(store drepo.HistoryStore, cache pkgcache.Service, ttl time.Duration, l *applogger.Logger) *HistoryStats {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &HistoryStats{store: store, cache: cache, ttl: ttl, l: l}
}

// SameName summarizes the most recent records sharing the product name,
// excluding the current product id. Only positive sales volumes and positive
// base prices enter the derived figures.
func (s *HistoryStats) SameName(ctx context.Context, productName, excludeProductID string) models.SameNameStats {
	recs, err := s.store.SameName(ctx, productName, excludeProductID, sameNameLimit)
	if err != nil {
		if s.l != nil {
			s.l.Warn("same-name stats degraded to defaults",
				applogger.String("product_name", productName),
				applogger.Error(err),
			)
		}
		return models.SameNameStats{}
	}

	var st models.SameNameStats
	st.Count = len(recs)
	for _, r := range recs {
		if r.PastSalesVolume > 0 {
			st.Sales = append(st.Sales, r.PastSalesVolume)
		}
		if r.BasePrice > 0 {
			st.Prices = append(st.Prices, r.BasePrice)
		}
	}
	if len(st.Sales) > 0 {
		st.SalesAvg, st.SalesMin, st.SalesMax = summarize(st.Sales)
	}
	if len(st.Prices) > 0 {
		avg, _, max := summarize(st.Prices)
		st.PriceAvg, st.PriceMax = avg, max
	}
	return st
}

// Category returns the percentile ranks of the current volume and price
// within the category's historical distributions. Defaults to the median
// when no history exists or reads fail.
func (s *HistoryStats) Category(ctx context.Context, category string, pastSalesVolume, basePrice float64) models.CategoryStats {
	st := models.CategoryStats{SalesPercentile: 50, PricePercentile: 50}

	sales := s.distinct(ctx, "category_sales:"+category, category, s.store.CategorySales)
	if len(sales) > 0 {
		st.SalesPercentile = percentileRank(sales, pastSalesVolume)
	}
	prices := s.distinct(ctx, "category_prices:"+category, category, s.store.CategoryPrices)
	if len(prices) > 0 {
		st.PricePercentile = percentileRank(prices, basePrice)
	}
	return st
}

type distinctFn func(ctx context.Context, category string) ([]float64, error)

// Values round-trip through the cache as JSON strings, the one encoding every
// cache backend supports for arbitrary payloads.
func (s *HistoryStats) distinct(ctx context.Context, key, category string, fetch distinctFn) []float64 {
	cacheKey := "stats:" + key
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			var vals []float64
			if err := json.Unmarshal([]byte(cached), &vals); err == nil {
				return vals
			}
		}
	}

	vals, err := fetch(ctx, category)
	if err != nil {
		if s.l != nil {
			s.l.Warn("category stats degraded to defaults",
				applogger.String("category", category),
				applogger.Error(err),
			)
		}
		return nil
	}
	if s.cache != nil && len(vals) > 0 {
		if b, err := json.Marshal(vals); err == nil {
			_ = s.cache.Set(ctx, cacheKey, string(b), s.ttl)
		}
	}
	return vals
}

// percentileRank is the fraction of values strictly below v, times 100.
func percentileRank(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 50
	}
	below := 0
	for _, x := range values {
		if x < v {
			below++
		}
	}
	return float64(below) / float64(len(values)) * 100
}

func summarize(values []float64) (avg, min, max float64) {
	min, max = values[0], values[0]
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(values)), min, max
}
