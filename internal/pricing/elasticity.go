package pricing

import "strings"

// categoryMultipliers scales elasticity per category. Lookup is
// case-insensitive; unknown categories use 1.0.
var categoryMultipliers = map[string]float64{
	"vegetables": 1.10,
	"fruits":     1.00,
	"dairy":      0.90,
	"grains":     0.85,
	"spices":     1.20,
	"pulses":     0.90,
	"oil":        1.00,
	"nuts":       1.15,
}

// Elasticity is a price-sensitivity coefficient plus the baseline expected
// unit volume it was derived with.
type Elasticity struct {
	Coefficient    float64 // negative
	BaselineVolume float64
}

// Magnitude returns |Coefficient|.
func (e Elasticity) Magnitude() float64 {
	if e.Coefficient < 0 {
		return -e.Coefficient
	}
	return e.Coefficient
}

// DeriveElasticity computes the elasticity coefficient and baseline volume
// from base price, past sales volume, and category. Pure; never consults
// history.
func DeriveElasticity(basePrice, pastSalesVolume float64, category string) Elasticity {
	priceFactor := clamp(basePrice/50, 0.5, 1.5)

	var coeff, volume float64
	switch {
	case pastSalesVolume > 500:
		coeff = -2.0 * priceFactor
		volume = max(15, pastSalesVolume/40)
	case pastSalesVolume > 100:
		coeff = -2.2 * priceFactor
		volume = max(8, pastSalesVolume/25)
	case pastSalesVolume > 0:
		coeff = -2.5 * priceFactor
		volume = max(5, pastSalesVolume/15)
	default:
		coeff = -2.3 * priceFactor
		volume = 6.0
	}

	if m, ok := categoryMultipliers[strings.ToLower(category)]; ok {
		coeff *= m
	}
	return Elasticity{Coefficient: coeff, BaselineVolume: volume}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
