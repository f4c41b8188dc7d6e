package scoring

import (
	"context"
	"fmt"

	"PricePulse/internal/domain/models"
	domsvc "PricePulse/internal/domain/service"
	"PricePulse/pkg/config"
)

// HTTPChurnScorer consults the external model service for customers that
// fall outside the rule tiers.
type HTTPChurnScorer struct{ base *HTTPServiceBase }

func NewHTTPChurnScorer(cfg *config.Config) *HTTPChurnScorer {
	return &HTTPChurnScorer{base: NewHTTPServiceBase(cfg)}
}

type churnReq struct {
	CustomerID         string  `json:"customer_id"`
	TotalOrders        int     `json:"total_orders"`
	AvgGapDays         float64 `json:"avg_gap_days"`
	TotalSpend         float64 `json:"total_spend"`
	SpendTrend         string  `json:"spend_trend"`
	DaysSinceLastOrder int     `json:"days_since_last_order"`
	CategoryPreference string  `json:"category_preference"`
}

type churnResp struct {
	Risk       float64 `json:"risk"`
	Prediction int     `json:"prediction"`
}

func (s *HTTPChurnScorer) Assess(ctx context.Context, in models.ChurnInput) (float64, int, error) {
	var cr churnResp
	req := churnReq{
		CustomerID:         in.CustomerID,
		TotalOrders:        in.TotalOrders,
		AvgGapDays:         in.AvgGapDays,
		TotalSpend:         in.TotalSpend,
		SpendTrend:         in.SpendTrend,
		DaysSinceLastOrder: in.DaysSinceLastOrder,
		CategoryPreference: in.CategoryPreference,
	}
	if err := s.base.PostJSON(ctx, "/churn/predict", req, &cr); err != nil {
		return 0, 0, fmt.Errorf("post churn predict: %w", err)
	}
	return cr.Risk, cr.Prediction, nil
}

var _ domsvc.ChurnScorer = (*HTTPChurnScorer)(nil)
