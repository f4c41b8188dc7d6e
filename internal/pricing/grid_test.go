package pricing

import (
	"math"
	"testing"
)

func TestDiscountsGrid(t *testing.T) {
	ds := Discounts()
	if len(ds) != 61 {
		t.Fatalf("grid size %d, want 61", len(ds))
	}
	if ds[0] != 0 || ds[60] != 30 {
		t.Fatalf("grid bounds %v..%v", ds[0], ds[60])
	}
	if ds[1]-ds[0] != 0.5 {
		t.Fatalf("grid step %v", ds[1]-ds[0])
	}
}

func TestSearchGridPicksRevenueMaximizer(t *testing.T) {
	e := DeriveElasticity(100, 200, "vegetables")
	res := SearchGrid(100, e)
	if res.Degenerate {
		t.Fatalf("unexpected degenerate grid")
	}
	// Exhaustive check against the formula.
	for _, c := range res.Candidates {
		want := ExpectedRevenue(100, c.Discount, e)
		if math.Abs(c.Revenue-want) > 1e-9 {
			t.Fatalf("candidate %v revenue %v, want %v", c.Discount, c.Revenue, want)
		}
		if c.Revenue > res.Revenue {
			t.Fatalf("candidate %v beats selected revenue", c.Discount)
		}
	}
	if got := ExpectedRevenue(100, res.Discount, e); math.Abs(got-res.Revenue) > 1e-9 {
		t.Fatalf("selected revenue %v inconsistent with formula %v", res.Revenue, got)
	}
}

func TestSearchGridTieBreaksToSmallestDiscount(t *testing.T) {
	e := DeriveElasticity(100, 200, "vegetables")
	res := SearchGrid(100, e)
	for _, c := range res.Candidates {
		if c.Revenue == res.Revenue && c.Discount < res.Discount {
			t.Fatalf("tie should break to smaller discount %v, got %v", c.Discount, res.Discount)
		}
	}
}

func TestSearchGridDegenerateZeroPrice(t *testing.T) {
	e := DeriveElasticity(0, 50, "fruits")
	res := SearchGrid(0, e)
	if !res.Degenerate {
		t.Fatalf("expected degenerate grid for zero price")
	}
	if res.Discount != 0 {
		t.Fatalf("degenerate discount %v, want 0", res.Discount)
	}
	if res.Revenue != 0 {
		t.Fatalf("degenerate revenue %v, want 0", res.Revenue)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("degenerate grid should carry no candidates")
	}
}

func TestExpectedQuantityGrowsWithDiscount(t *testing.T) {
	e := DeriveElasticity(80, 300, "dairy")
	prev := ExpectedQuantity(80, 0, e)
	for d := 0.5; d <= 30; d += 0.5 {
		q := ExpectedQuantity(80, d, e)
		if q <= prev {
			t.Fatalf("quantity should grow with discount: %v at %v", q, d)
		}
		prev = q
	}
}
