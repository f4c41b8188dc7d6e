package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"PricePulse/internal/domain/models"
	drepo "PricePulse/internal/domain/repository"
	domsvc "PricePulse/internal/domain/service"
	applogger "PricePulse/pkg/logger"
)

// ChurnAssessor rates churn risk. Customers with very few or a moderate
// number of orders are tiered by rules; the rest are scored by the external
// model service.
type ChurnAssessor struct {
	scorer  domsvc.ChurnScorer
	store   drepo.ChurnStore
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewChurnAssessor(scorer domsvc.ChurnScorer, store drepo.ChurnStore, metrics drepo.Metrics, l *applogger.Logger) *ChurnAssessor {
	return &ChurnAssessor{scorer: scorer, store: store, metrics: metrics, l: l}
}

func (a *ChurnAssessor) Assess(ctx context.Context, in models.ChurnInput) (*models.ChurnAssessment, error) {
	start := time.Now()
	out := &models.ChurnAssessment{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		CreatedAt:  time.Now().UTC(),
	}

	days := float64(in.DaysSinceLastOrder)
	switch {
	case in.TotalOrders < 2:
		// Near-new customers are high risk regardless of recency.
		if in.TotalOrders == 0 {
			out.Risk = 0.85 + 0.05*fraction(days, 90)
		} else {
			out.Risk = 0.80 + 0.05*fraction(days, 60)
		}
		out.Prediction = 1
		out.RiskLevel = "High"
	case in.TotalOrders >= 3 && in.TotalOrders <= 6:
		out.Risk = 0.40 + 0.10*fraction(days, 60)
		if out.Risk >= 0.45 {
			out.Prediction = 1
		}
		out.RiskLevel = "Medium"
	default:
		risk, prediction, err := a.scorer.Assess(ctx, in)
		if err != nil {
			// Model service down: degrade to a neutral assessment.
			a.metrics.RecordError("churn_scorer")
			if a.l != nil {
				a.l.Warn("churn scorer unavailable",
					applogger.String("customer_id", in.CustomerID),
					applogger.Error(err),
				)
			}
			risk, prediction = 0.5, 0
		}
		out.Risk = risk
		out.Prediction = prediction
		out.RiskLevel = riskLevel(risk)
	}

	if err := a.store.Insert(ctx, out); err != nil {
		a.metrics.RecordError("churn_store")
		return nil, fmt.Errorf("append churn assessment: %w", err)
	}
	a.metrics.RecordLatency("churn_assess", time.Since(start).Seconds())
	return out, nil
}

// Recent lists the latest assessments, newest first.
func (a *ChurnAssessor) Recent(ctx context.Context, limit int) ([]models.ChurnAssessment, error) {
	return a.store.Recent(ctx, limit)
}

func fraction(v, window float64) float64 {
	if window <= 0 {
		return 0
	}
	f := v / window
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func riskLevel(risk float64) string {
	switch {
	case risk < 0.3:
		return "Low"
	case risk < 0.7:
		return "Medium"
	default:
		return "High"
	}
}
