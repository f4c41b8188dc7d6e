package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"PricePulse/internal/domain/models"
	drepo "PricePulse/internal/domain/repository"
	domsvc "PricePulse/internal/domain/service"
	"PricePulse/internal/pricing"
	"PricePulse/internal/services/features"
	applogger "PricePulse/pkg/logger"
	"PricePulse/pkg/util"
)

// ErrInvalidInput rejects requests the optimizer cannot price.
var ErrInvalidInput = errors.New("invalid input")

// Optimizer runs the pricing pipeline: aggregate history, derive elasticity,
// search the discount grid, adjust by competitive signals, rate confidence,
// then append the history record.
type Optimizer struct {
	stats    *HistoryStats
	recorder *HistoryRecorder
	scorer   domsvc.RevenueScorer
	encoder  domsvc.CategoryEncoder
	metrics  drepo.Metrics
	l        *applogger.Logger
}

func NewOptimizer(
	stats *HistoryStats,
	recorder *HistoryRecorder,
	scorer domsvc.RevenueScorer,
	encoder domsvc.CategoryEncoder,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *Optimizer {
	return &Optimizer{
		stats:    stats,
		recorder: recorder,
		scorer:   scorer,
		encoder:  encoder,
		metrics:  metrics,
		l:        l,
	}
}

// Optimize computes the revenue-maximizing discount for one product.
func (o *Optimizer) Optimize(ctx context.Context, req *models.PricingRequest) (*models.PricingResult, error) {
	start := time.Now()
	if err := validateRequest(req); err != nil {
		o.metrics.RecordError("invalid_input")
		return nil, err
	}
	temporal := resolveTemporal(req.Temporal)

	sn := o.stats.SameName(ctx, req.ProductName, req.ProductID)
	cat := o.stats.Category(ctx, req.Category, req.PastSalesVolume, req.BasePrice)

	e := pricing.DeriveElasticity(req.BasePrice, req.PastSalesVolume, req.Category)
	grid := pricing.SearchGrid(req.BasePrice, e)

	res := &models.PricingResult{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
	}
	if grid.Degenerate {
		res.Discount = 0
		res.ExpectedRevenue = grid.Revenue
		res.FinalPrice = req.BasePrice
		res.Confidence = models.ConfidenceLow
	} else {
		o.consultScorer(ctx, req, e, temporal, cat.SalesPercentile, grid)

		final := pricing.AdjustDiscount(grid.Discount, req.BasePrice, req.PastSalesVolume, sn, cat)
		res.Discount = final
		res.ExpectedRevenue = pricing.ExpectedRevenue(req.BasePrice, final, e)
		res.FinalPrice = req.BasePrice * (1 - final/100)
		res.Confidence = pricing.ScoreConfidence(grid.Candidates)
	}

	rec := &models.HistoryRecord{
		ID:              uuid.NewString(),
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		BasePrice:       req.BasePrice,
		Category:        req.Category,
		PastSalesVolume: req.PastSalesVolume,
		Discount:        res.Discount,
		ExpectedRevenue: res.ExpectedRevenue,
		FinalPrice:      res.FinalPrice,
		Confidence:      res.Confidence,
		CreatedAt:       time.Now().UTC(),
	}
	if err := o.recorder.Record(ctx, rec); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	o.metrics.RecordOptimization(req.Category, string(res.Confidence))
	o.metrics.RecordDiscount(req.Category, res.Discount)
	o.metrics.RecordLatency("optimize", time.Since(start).Seconds())
	return res, nil
}

// consultScorer cross-validates grid candidates against the external
// regression model. Best-effort: failures are logged and never affect the
// result.
func (o *Optimizer) consultScorer(
	ctx context.Context,
	req *models.PricingRequest,
	e pricing.Elasticity,
	temporal models.TemporalContext,
	salesPercentile float64,
	grid pricing.GridResult,
) {
	if o.scorer == nil {
		return
	}
	discounts := make([]float64, len(grid.Candidates))
	for i, c := range grid.Candidates {
		discounts[i] = c.Discount
	}
	rows := features.BuildRevenueVectors(req, e.Coefficient, o.encoder.Encode(req.Category), temporal, salesPercentile, discounts)
	estimates, err := o.scorer.EstimateBatch(ctx, req.ProductID, rows)
	if err != nil {
		o.metrics.RecordError("scorer")
		if o.l != nil {
			o.l.Warn("revenue scorer unavailable",
				applogger.String("product_id", req.ProductID),
				applogger.Error(err),
			)
		}
		return
	}
	if len(estimates) == len(grid.Candidates) && o.l != nil {
		best := 0
		for i, v := range estimates {
			if v > estimates[best] {
				best = i
			}
		}
		o.l.Debug("revenue scorer cross-check",
			applogger.String("product_id", req.ProductID),
			applogger.Float64("grid_discount", grid.Discount),
			applogger.Float64("model_discount", grid.Candidates[best].Discount),
			applogger.Float64("model_revenue", estimates[best]),
		)
	}
}

func validateRequest(req *models.PricingRequest) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		return fmt.Errorf("%w: negative base price", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidInput)
	}
	return nil
}

func resolveTemporal(t *models.TemporalContext) models.TemporalContext {
	if t != nil {
		return *t
	}
	now := time.Now()
	return models.TemporalContext{
		Month:     int(now.Month()),
		DayOfWeek: util.WeekdayMonday0(now),
		Weekend:   util.WeekendFlag(now),
	}
}
