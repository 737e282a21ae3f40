package valuation

import (
	"sort"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

// ErrProfitUndefined is returned when a deal is missing a price field or its
// condition is unknown. Callers must keep this distinct from a $0 profit.
var ErrProfitUndefined = domain.NewError(errcodes.ProfitUndefined, "profit is undefined for this deal")

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// FeeProfile describes how a platform takes its cut. Rate is a fraction of
// market value, the expected sale price, not the purchase price.
type FeeProfile struct {
	Rate float64
	// LocalOnly platforms (Facebook in this model) are zero-fee,
	// zero-shipping, local-pickup transactions.
	LocalOnly bool
}

// Valuation is the computed display model for a priced deal.
type Valuation struct {
	ProfitByPlatform map[value.Platform]value.Money
	Best             value.Platform
	BestProfit       value.Money
	Tier             Tier
}

type Engine struct {
	fees       map[value.Platform]FeeProfile
	preference []value.Platform
	laborRate  value.Money
	tierHigh   value.Money
	tierMedium value.Money
}

func NewEngine(cfg Config) *Engine {
	fees := make(map[value.Platform]FeeProfile, len(cfg.Fees))
	for p, f := range cfg.Fees {
		fees[p] = f
	}

	return &Engine{
		fees:       fees,
		preference: cfg.Preference,
		laborRate:  cfg.LaborRatePerHour,
		tierHigh:   cfg.TierHigh,
		tierMedium: cfg.TierMedium,
	}
}

// WithEbayFeeRate overrides the configured eBay rate with the store-tier rate
// of a linked seller account.
func (e *Engine) WithEbayFeeRate(rate float64) *Engine {
	profile := e.fees[value.PlatformEbay]
	profile.Rate = rate
	e.fees[value.PlatformEbay] = profile

	return e
}

// ComputeProfit is the fee model shared by every platform: fees are charged
// against market value, matching marketplace final-value fees, not against
// the purchase price.
func ComputeProfit(asking, market value.Money, feeRate float64) value.Money {
	return market - asking - value.Money(float64(market)*feeRate)
}

// IsPurchaseEligible gates purchase actions. Deals with unknown condition or
// no market value cannot be valued; computing profit on them is an error,
// never a silent zero.
func IsPurchaseEligible(d entity.Deal) bool {
	return d.Condition.Known() && d.MarketValue != nil
}

// Valuate computes per-platform profits, the best platform and the tier for
// a deal. Returns ErrProfitUndefined when the valuation invariant does not
// hold: both prices present and a known condition.
func (e *Engine) Valuate(d entity.Deal) (Valuation, error) {
	if !d.Priced() || !d.Condition.Known() {
		return Valuation{}, ErrProfitUndefined
	}

	profits := make(map[value.Platform]value.Money, len(e.fees))
	for platform, profile := range e.fees {
		profits[platform] = ComputeProfit(*d.AskingPrice, *d.MarketValue, profile.Rate)
	}

	best, bestProfit := e.BestPlatform(profits)

	return Valuation{
		ProfitByPlatform: profits,
		Best:             best,
		BestProfit:       bestProfit,
		Tier:             e.ClassifyTier(bestProfit),
	}, nil
}

// BestPlatform picks the maximum profit. Ties are broken by the configured
// preference order; platforms outside it lose to any preferred one and rank
// alphabetically among themselves.
func (e *Engine) BestPlatform(profits map[value.Platform]value.Money) (value.Platform, value.Money) {
	order := e.rankedPlatforms(profits)
	if len(order) == 0 {
		return "", 0
	}

	best := order[0]
	bestProfit := profits[best]

	for _, platform := range order[1:] {
		if profits[platform] > bestProfit {
			best = platform
			bestProfit = profits[platform]
		}
	}

	return best, bestProfit
}

func (e *Engine) rankedPlatforms(profits map[value.Platform]value.Money) []value.Platform {
	order := make([]value.Platform, 0, len(profits))
	seen := make(map[value.Platform]bool, len(profits))

	for _, platform := range e.preference {
		if _, ok := profits[platform]; ok {
			order = append(order, platform)
			seen[platform] = true
		}
	}

	rest := make([]value.Platform, 0, len(profits))
	for platform := range profits {
		if !seen[platform] {
			rest = append(rest, platform)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	return append(order, rest...)
}

// ClassifyTier buckets a profit into high/medium/low using the configured
// thresholds.
func (e *Engine) ClassifyTier(profit value.Money) Tier {
	switch {
	case profit >= e.tierHigh:
		return TierHigh
	case profit >= e.tierMedium:
		return TierMedium
	default:
		return TierLow
	}
}

// RepairAdjustedProfit subtracts part cost plus labor at the configured rate
// for every selected repair option. Selecting an option the deal does not
// carry is an error.
func (e *Engine) RepairAdjustedProfit(profit value.Money, options []entity.RepairOption, selectedIDs []int64) (value.Money, error) {
	byID := make(map[int64]entity.RepairOption, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	adjusted := profit
	for _, id := range selectedIDs {
		opt, ok := byID[id]
		if !ok {
			return 0, domain.NewError(errcodes.UnknownRepairOption, "repair option not offered for this deal")
		}

		adjusted -= opt.PartCost + value.Money(opt.LaborHours*float64(e.laborRate))
	}

	return adjusted, nil
}

// FeeProfile returns the profile for a platform.
func (e *Engine) FeeProfile(platform value.Platform) (FeeProfile, bool) {
	profile, ok := e.fees[platform]
	return profile, ok
}
