package pricing

import (
	"math"
	"testing"
)

func TestDeriveElasticityTiers(t *testing.T) {
	// base price 50 keeps the price factor at exactly 1.0 so the tier
	// coefficients come through unscaled.
	cases := []struct {
		volume    float64
		wantCoeff float64
		wantVol   float64
	}{
		{0, -2.3, 6.0},
		{1, -2.5, 5.0},
		{100, -2.5, 6.6666666666666667},
		{101, -2.2, 8.0},
		{500, -2.2, 20.0},
		{501, -2.0, 15.0},
		{1000, -2.0, 25.0},
	}
	for _, c := range cases {
		e := DeriveElasticity(50, c.volume, "fruits")
		if math.Abs(e.Coefficient-c.wantCoeff) > 1e-9 {
			t.Fatalf("volume %v: coeff %v, want %v", c.volume, e.Coefficient, c.wantCoeff)
		}
		if math.Abs(e.BaselineVolume-c.wantVol) > 1e-9 {
			t.Fatalf("volume %v: baseline %v, want %v", c.volume, e.BaselineVolume, c.wantVol)
		}
	}
}

func TestDeriveElasticityMonotonicAcrossTiers(t *testing.T) {
	// Crossing from the zero tier into the high-volume tiers must strictly
	// decrease the magnitude at the tier switch points.
	m101 := DeriveElasticity(50, 101, "fruits").Magnitude()
	m100 := DeriveElasticity(50, 100, "fruits").Magnitude()
	m501 := DeriveElasticity(50, 501, "fruits").Magnitude()
	m500 := DeriveElasticity(50, 500, "fruits").Magnitude()
	if m101 >= m100 {
		t.Fatalf("magnitude at 101 (%v) should be below 100 (%v)", m101, m100)
	}
	if m501 >= m500 {
		t.Fatalf("magnitude at 501 (%v) should be below 500 (%v)", m501, m500)
	}
}

func TestDeriveElasticityPriceFactorClamp(t *testing.T) {
	lo := DeriveElasticity(1, 0, "fruits")
	if math.Abs(lo.Coefficient-(-2.3*0.5)) > 1e-9 {
		t.Fatalf("low price coeff %v", lo.Coefficient)
	}
	hi := DeriveElasticity(500, 0, "fruits")
	if math.Abs(hi.Coefficient-(-2.3*1.5)) > 1e-9 {
		t.Fatalf("high price coeff %v", hi.Coefficient)
	}
}

func TestDeriveElasticityCategoryMultiplier(t *testing.T) {
	base := DeriveElasticity(50, 0, "fruits").Magnitude()
	veg := DeriveElasticity(50, 0, "Vegetables").Magnitude()
	if math.Abs(veg-base*1.10) > 1e-9 {
		t.Fatalf("vegetables multiplier: got %v want %v", veg, base*1.10)
	}
	unknown := DeriveElasticity(50, 0, "electronics").Magnitude()
	if math.Abs(unknown-base) > 1e-9 {
		t.Fatalf("unknown category should be unscaled: got %v want %v", unknown, base)
	}
	grains := DeriveElasticity(50, 0, "GRAINS").Magnitude()
	if math.Abs(grains-base*0.85) > 1e-9 {
		t.Fatalf("grains multiplier: got %v want %v", grains, base*0.85)
	}
}
