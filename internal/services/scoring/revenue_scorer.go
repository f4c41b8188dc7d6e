package scoring

import (
	"context"
	"fmt"

	domsvc "PricePulse/internal/domain/service"
	"PricePulse/pkg/config"
)

// HTTPRevenueScorer calls the external regression model service for batch
// revenue estimates. Its output is used for cross-validation logging only.
type HTTPRevenueScorer struct{ base *HTTPServiceBase }

func NewHTTPRevenueScorer(cfg *config.Config) *HTTPRevenueScorer {
	return &HTTPRevenueScorer{base: NewHTTPServiceBase(cfg)}
}

type revenueReq struct {
	ProductID string      `json:"product_id"`
	Rows      [][]float64 `json:"rows"`
}

type revenueResp struct {
	Estimates []float64 `json:"estimates"`
}

func (s *HTTPRevenueScorer) EstimateBatch(ctx context.Context, productID string, rows [][]float64) ([]float64, error) {
	var rr revenueResp
	if err := s.base.PostJSON(ctx, "/revenue/estimate", revenueReq{ProductID: productID, Rows: rows}, &rr); err != nil {
		return nil, fmt.Errorf("post revenue estimate: %w", err)
	}
	if len(rr.Estimates) != len(rows) {
		return nil, fmt.Errorf("revenue estimate count mismatch: got %d want %d", len(rr.Estimates), len(rows))
	}
	return rr.Estimates, nil
}

var _ domsvc.RevenueScorer = (*HTTPRevenueScorer)(nil)

// NoopRevenueScorer is used when no model service is configured.
type NoopRevenueScorer struct{}

func (NoopRevenueScorer) EstimateBatch(ctx context.Context, productID string, rows [][]float64) ([]float64, error) {
	return nil, nil
}

var _ domsvc.RevenueScorer = NoopRevenueScorer{}
