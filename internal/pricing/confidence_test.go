package pricing

import (
	"testing"

	"PricePulse/internal/domain/models"
)

func candidatesFromRevenues(revs ...float64) []Candidate {
	out := make([]Candidate, len(revs))
	for i, r := range revs {
		out[i] = Candidate{Discount: float64(i), Revenue: r}
	}
	return out
}

func TestScoreConfidenceBuckets(t *testing.T) {
	cases := []struct {
		name string
		revs []float64
		want models.Confidence
	}{
		{"gap just above 10pct", []float64{100, 110.01}, models.ConfidenceHigh},
		{"gap just below 10pct", []float64{100, 109.99}, models.ConfidenceMedium},
		{"gap just above 5pct", []float64{100, 105.01}, models.ConfidenceMedium},
		{"gap just below 5pct", []float64{100, 104.99}, models.ConfidenceLow},
		{"tied maximum", []float64{100, 100, 90}, models.ConfidenceLow},
		{"wide gap", []float64{50, 200}, models.ConfidenceHigh},
	}
	for _, c := range cases {
		got := ScoreConfidence(candidatesFromRevenues(c.revs...))
		if got != c.want {
			t.Fatalf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestScoreConfidenceFewCandidates(t *testing.T) {
	if got := ScoreConfidence(nil); got != models.ConfidenceLow {
		t.Fatalf("empty grid: got %s", got)
	}
	if got := ScoreConfidence(candidatesFromRevenues(123)); got != models.ConfidenceLow {
		t.Fatalf("single candidate: got %s", got)
	}
}

func TestScoreConfidenceOrderIndependent(t *testing.T) {
	a := ScoreConfidence(candidatesFromRevenues(100, 120, 80))
	b := ScoreConfidence(candidatesFromRevenues(80, 100, 120))
	if a != b {
		t.Fatalf("order changed the rating: %s vs %s", a, b)
	}
}
