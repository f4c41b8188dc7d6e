package features

import (
	"PricePulse/internal/domain/models"
)

// RevenueVectorDim is the width of the feature rows the regression model
// was trained with.
const RevenueVectorDim = 9

// BuildRevenueVectors builds one feature row per candidate discount for the
// external regression model. Row layout: base price, discount percent,
// encoded category, past sales volume, discount-adjusted elasticity, month,
// day of week, weekend flag, category sales percentile. The discount enters
// only through the second and fifth features; the price column stays constant
// across candidates, matching the model's training layout.
func BuildRevenueVectors(
	req *models.PricingRequest,
	elasticity float64,
	categoryCode int,
	temporal models.TemporalContext,
	salesPercentile float64,
	discounts []float64,
) [][]float64 {
	rows := make([][]float64, 0, len(discounts))
	for _, d := range discounts {
		rows = append(rows, []float64{
			req.BasePrice,
			d,
			float64(categoryCode),
			req.PastSalesVolume,
			elasticity * (1 + d/100*0.2),
			float64(temporal.Month),
			float64(temporal.DayOfWeek),
			float64(temporal.Weekend),
			salesPercentile,
		})
	}
	return rows
}
