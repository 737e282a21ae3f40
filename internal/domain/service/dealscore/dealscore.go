// Package dealscore rates how attractive a priced deal is, folding margin,
// condition and pickup logistics into one 0-100 number for the dashboard.
package dealscore

import (
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
)

const strongThreshold = 70

// Calculate rates a deal. profit is the best-platform profit; the caller
// guarantees it is defined (priced deal, known condition).
func Calculate(d entity.Deal, profit value.Money, local bool) entity.Score {
	base, description := marginBand(d, profit)

	score := base

	switch d.Condition {
	case value.ConditionNew:
		score += 5
	case value.ConditionNeedsRepair:
		score -= 15
	}

	// Local pickup: no shipping cost or packing effort.
	if local {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return entity.Score{
		Value:       score,
		Description: description,
		Strong:      score >= strongThreshold,
	}
}

func marginBand(d entity.Deal, profit value.Money) (int, string) {
	if profit <= 0 {
		return 5, "Underwater"
	}

	// Margin relative to the expected sale price.
	margin := float64(profit) / float64(*d.MarketValue) * 100

	switch {
	case margin >= 40:
		return 95, "Steal"
	case margin >= 25:
		return 85, "Strong margin"
	case margin >= 15:
		return 70, "Healthy margin"
	case margin >= 5:
		return 50, "Thin margin"
	default:
		return 25, "Marginal"
	}
}
