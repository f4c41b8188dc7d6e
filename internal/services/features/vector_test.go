package features

import (
	"testing"

	"PricePulse/internal/domain/models"
)

func TestBuildRevenueVectors(t *testing.T) {
	req := &models.PricingRequest{
		ProductID:       "p1",
		BasePrice:       100,
		PastSalesVolume: 250,
	}
	temporal := models.TemporalContext{Month: 6, DayOfWeek: 4, Weekend: 0}

	rows := BuildRevenueVectors(req, -2.2, 3, temporal, 62.5, []float64{0, 10})
	if len(rows) != 2 {
		t.Fatalf("rows %d, want 2", len(rows))
	}
	for i, r := range rows {
		if len(r) != RevenueVectorDim {
			t.Fatalf("row %d width %d, want %d", i, len(r), RevenueVectorDim)
		}
	}

	// Zero discount: elasticity unadjusted.
	if rows[0][0] != 100 || rows[0][1] != 0 || rows[0][4] != -2.2 {
		t.Fatalf("unexpected zero-discount row %v", rows[0])
	}
	// 10% discount: price column stays at base, elasticity scaled by 1.02.
	if rows[1][0] != 100 || rows[1][1] != 10 {
		t.Fatalf("unexpected discounted row %v", rows[1])
	}
	if got, want := rows[1][4], -2.2*1.02; got != want {
		t.Fatalf("adjusted elasticity %v, want %v", got, want)
	}
	if rows[1][2] != 3 || rows[1][3] != 250 || rows[1][5] != 6 || rows[1][6] != 4 || rows[1][7] != 0 || rows[1][8] != 62.5 {
		t.Fatalf("unexpected feature tail %v", rows[1])
	}
}
