package pricing

import "PricePulse/internal/domain/models"

// Final discount bounds after adjustment.
const (
	DiscountMin = 5.0
	DiscountMax = 30.0
)

// AdjustDiscount shifts the grid-search discount by competitive signals and
// clamps to [DiscountMin, DiscountMax]. Rules are ordered; the first matching
// bracket wins.
func AdjustDiscount(gridDiscount, basePrice, pastSalesVolume float64, sn models.SameNameStats, cat models.CategoryStats) float64 {
	var delta float64

	if sn.Count > 0 && len(sn.Sales) > 0 {
		// Same-name volume comparison.
		switch {
		case pastSalesVolume == 0:
			delta += 6.0
		case pastSalesVolume < sn.SalesMin:
			delta += 5.0
		case pastSalesVolume < 0.5*sn.SalesAvg:
			delta += 4.0
		case pastSalesVolume < sn.SalesAvg:
			delta += 2.5
		case pastSalesVolume < 1.5*sn.SalesAvg:
			delta += 0.5
		case pastSalesVolume >= sn.SalesMax:
			delta -= 4.0
		default:
			delta -= 2.5
		}
		// Same-name price comparison.
		if len(sn.Prices) > 0 {
			switch {
			case basePrice > sn.PriceMax:
				delta += 2.5
			case basePrice > 1.2*sn.PriceAvg:
				delta += 1.5
			case basePrice < 0.8*sn.PriceAvg:
				delta -= 1.0
			}
		}
	} else {
		// No usable same-name history: category sales percentile.
		switch {
		case cat.SalesPercentile < 25:
			delta += 4.0
		case cat.SalesPercentile < 50:
			delta += 2.0
		case cat.SalesPercentile >= 75:
			delta -= 3.0
		}
	}

	// Category price percentile, applied after either branch.
	switch {
	case cat.PricePercentile > 75:
		delta += 2.0
	case cat.PricePercentile < 25:
		delta -= 1.5
	}

	return clamp(gridDiscount+delta, DiscountMin, DiscountMax)
}
