package pricing

// Grid bounds. The unadjusted search ranges over [0, 30] in 0.5 steps;
// the adjustment stage later clamps to [5, 30].
const (
	GridMin  = 0.0
	GridMax  = 30.0
	GridStep = 0.5
)

// Candidate is one evaluated grid point.
type Candidate struct {
	Discount float64
	Revenue  float64
}

// GridResult is the outcome of a grid search.
type GridResult struct {
	Discount   float64
	Revenue    float64
	Candidates []Candidate // positive-revenue candidates, ascending discount
	Degenerate bool        // no candidate yielded positive revenue
}

// Discounts returns the full candidate grid in ascending order.
func Discounts() []float64 {
	n := int((GridMax-GridMin)/GridStep) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = GridMin + float64(i)*GridStep
	}
	return out
}

// ExpectedQuantity computes the demand estimate for a candidate discount.
func ExpectedQuantity(basePrice, discount float64, e Elasticity) float64 {
	elasticityBoost := 1 + e.Magnitude()*(discount/100)
	priceSensitivity := clamp(basePrice/40, 0.8, 1.5)
	conversionBoost := 1 + (discount/100)*1.2*priceSensitivity
	return e.BaselineVolume * elasticityBoost * conversionBoost
}

// ExpectedRevenue computes discounted price times expected quantity.
func ExpectedRevenue(basePrice, discount float64, e Elasticity) float64 {
	return basePrice * (1 - discount/100) * ExpectedQuantity(basePrice, discount, e)
}

// SearchGrid evaluates every candidate discount and picks the revenue
// maximizer. Ties break to the smallest discount. When no candidate yields
// positive revenue the result is degenerate: discount 0, revenue equal to
// base price times baseline volume, and the caller skips later stages.
func SearchGrid(basePrice float64, e Elasticity) GridResult {
	var res GridResult
	for _, d := range Discounts() {
		rev := ExpectedRevenue(basePrice, d, e)
		if rev <= 0 {
			continue
		}
		res.Candidates = append(res.Candidates, Candidate{Discount: d, Revenue: rev})
		if rev > res.Revenue {
			res.Revenue = rev
			res.Discount = d
		}
	}
	if len(res.Candidates) == 0 {
		res.Degenerate = true
		res.Discount = 0
		res.Revenue = basePrice * e.BaselineVolume
	}
	return res
}
