package pricing

import "PricePulse/internal/domain/models"

const confidenceEpsilon = 1e-6

// ScoreConfidence rates how decisively the best grid candidate beat the
// runner-up. Computed from the grid revenues only, never from the
// post-adjustment figure. Fewer than two candidates rates Low.
func ScoreConfidence(candidates []Candidate) models.Confidence {
	if len(candidates) < 2 {
		return models.ConfidenceLow
	}
	// Top two revenues, duplicates allowed: a tied maximum gives gap 0.
	best, second := candidates[0].Revenue, 0.0
	for _, c := range candidates[1:] {
		switch {
		case c.Revenue > best:
			second = best
			best = c.Revenue
		case c.Revenue > second:
			second = c.Revenue
		}
	}
	gapPct := (best - second) / (second + confidenceEpsilon) * 100
	switch {
	case gapPct > 10:
		return models.ConfidenceHigh
	case gapPct > 5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
