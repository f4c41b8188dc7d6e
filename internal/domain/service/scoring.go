package service

import (
	"context"

	"PricePulse/internal/domain/models"
)

// RevenueScorer estimates revenue for batches of 9-dimensional feature rows
// (price, discount, category code, past volume, elasticity, month,
// day-of-week, weekend flag, sales percentile). It is consulted for
// cross-validation only; the direct elasticity formula stays authoritative.
type RevenueScorer interface {
	EstimateBatch(ctx context.Context, productID string, rows [][]float64) ([]float64, error)
}

// ChurnScorer evaluates churn risk for customers outside the rule tiers.
type ChurnScorer interface {
	Assess(ctx context.Context, in models.ChurnInput) (risk float64, prediction int, err error)
}

// CategoryEncoder maps category names to the integer codes the regression
// model was trained with. Unknown categories map to a default code.
type CategoryEncoder interface {
	Encode(category string) int
	Categories() []string
}
