package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/pkg/tests"
)

func TestComputeProfitFeeMonotonic(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	for range 200 {
		asking := value.Money(random.Float64() * 500)
		market := value.Money(random.Float64() * 1000)
		feeRate := random.Float64() * 0.2

		zeroFee := valuation.ComputeProfit(asking, market, 0)
		rq.InDelta(float64(market-asking), zeroFee.Float64(), 1e-9)

		// A platform fee can only reduce profit.
		withFee := valuation.ComputeProfit(asking, market, feeRate)
		rq.LessOrEqual(withFee.Float64(), zeroFee.Float64()+1e-9)
	}
}

func TestComputeProfit(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		asking  value.Money
		market  value.Money
		feeRate float64
		want    value.Money
	}{
		{
			name:    "eBay fee charged against market value",
			asking:  100,
			market:  150,
			feeRate: 0.13,
			want:    30.5,
		},
		{
			name:    "zero fee is a straight spread",
			asking:  80,
			market:  200,
			feeRate: 0,
			want:    120,
		},
		{
			name:    "negative profit stays signed",
			asking:  200,
			market:  220,
			feeRate: 0.13,
			want:    -8.6,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := valuation.ComputeProfit(tc.asking, tc.market, tc.feeRate)
			rq.InDelta(float64(tc.want), float64(got), 1e-9)
		})
	}
}

func TestValuate(t *testing.T) {
	rq := require.New(t)

	engine := valuation.NewEngine(valuation.DefaultConfig())

	deal := entity.Deal{
		ID:          1,
		Title:       "Herman Miller Aeron",
		AskingPrice: value.MoneyPtr(80),
		MarketValue: value.MoneyPtr(200),
		Condition:   value.ConditionUsed,
	}

	v, err := engine.Valuate(deal)
	rq.NoError(err)

	rq.InDelta(94, float64(v.ProfitByPlatform[value.PlatformEbay]), 1e-9)
	rq.InDelta(120, float64(v.ProfitByPlatform[value.PlatformFacebook]), 1e-9)
	rq.Equal(value.PlatformFacebook, v.Best)
	rq.InDelta(120, float64(v.BestProfit), 1e-9)
	rq.Equal(valuation.TierHigh, v.Tier)
}

func TestValuateUndefined(t *testing.T) {
	rq := require.New(t)

	engine := valuation.NewEngine(valuation.DefaultConfig())

	testCases := []struct {
		name string
		deal entity.Deal
	}{
		{
			name: "unknown condition",
			deal: entity.Deal{
				AskingPrice: value.MoneyPtr(100),
				MarketValue: value.MoneyPtr(150),
				Condition:   value.ConditionUnknown,
			},
		},
		{
			name: "no market value",
			deal: entity.Deal{
				AskingPrice: value.MoneyPtr(100),
				Condition:   value.ConditionUsed,
			},
		},
		{
			name: "no asking price",
			deal: entity.Deal{
				MarketValue: value.MoneyPtr(150),
				Condition:   value.ConditionNew,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			_, err := engine.Valuate(tc.deal)
			rq.ErrorIs(err, valuation.ErrProfitUndefined)
		})
	}
}

func TestIsPurchaseEligible(t *testing.T) {
	rq := require.New(t)

	rq.False(valuation.IsPurchaseEligible(entity.Deal{
		AskingPrice: value.MoneyPtr(10),
		MarketValue: value.MoneyPtr(999),
		Condition:   value.ConditionUnknown,
	}))

	rq.False(valuation.IsPurchaseEligible(entity.Deal{
		AskingPrice: value.MoneyPtr(10),
		Condition:   value.ConditionUsed,
	}))

	rq.True(valuation.IsPurchaseEligible(entity.Deal{
		MarketValue: value.MoneyPtr(999),
		Condition:   value.ConditionNeedsRepair,
	}))
}

func TestBestPlatformTieBreak(t *testing.T) {
	rq := require.New(t)

	engine := valuation.NewEngine(valuation.DefaultConfig())

	// Equal profit on both platforms: the preference order decides, eBay
	// before Facebook.
	best, profit := engine.BestPlatform(map[value.Platform]value.Money{
		value.PlatformFacebook: 40,
		value.PlatformEbay:     40,
	})
	rq.Equal(value.PlatformEbay, best)
	rq.InDelta(40, float64(profit), 1e-9)

	// A platform outside the preference list loses ties to a preferred one.
	best, _ = engine.BestPlatform(map[value.Platform]value.Money{
		"offerup":              40,
		value.PlatformFacebook: 40,
	})
	rq.Equal(value.PlatformFacebook, best)
}

func TestClassifyTier(t *testing.T) {
	rq := require.New(t)

	engine := valuation.NewEngine(valuation.DefaultConfig())

	testCases := []struct {
		profit value.Money
		want   valuation.Tier
	}{
		{profit: 120, want: valuation.TierHigh},
		{profit: 50, want: valuation.TierHigh},
		{profit: 49.99, want: valuation.TierMedium},
		{profit: 20, want: valuation.TierMedium},
		{profit: 19.99, want: valuation.TierLow},
		{profit: -8.6, want: valuation.TierLow},
	}

	for _, tc := range testCases {
		rq.Equal(tc.want, engine.ClassifyTier(tc.profit), "profit %v", tc.profit)
	}
}

func TestRepairAdjustedProfit(t *testing.T) {
	rq := require.New(t)

	engine := valuation.NewEngine(valuation.DefaultConfig())

	options := []entity.RepairOption{
		{ID: 1, Name: "screen", PartCost: 20, LaborHours: 1},
		{ID: 2, Name: "battery", PartCost: 35, LaborHours: 0.5},
	}

	// part 20 + 1h * $25 = 45
	adjusted, err := engine.RepairAdjustedProfit(100, options, []int64{1})
	rq.NoError(err)
	rq.InDelta(55, float64(adjusted), 1e-9)

	// both repairs: 45 + (35 + 12.5) = 92.5
	adjusted, err = engine.RepairAdjustedProfit(100, options, []int64{1, 2})
	rq.NoError(err)
	rq.InDelta(7.5, float64(adjusted), 1e-9)

	// nothing selected leaves the base profit untouched
	adjusted, err = engine.RepairAdjustedProfit(100, options, nil)
	rq.NoError(err)
	rq.InDelta(100, float64(adjusted), 1e-9)

	_, err = engine.RepairAdjustedProfit(100, options, []int64{99})
	rq.Error(err)
}

func TestEbayFeeRateOverride(t *testing.T) {
	rq := require.New(t)

	// A linked store account with a better final value fee replaces the
	// configured default.
	engine := valuation.NewEngine(valuation.DefaultConfig()).WithEbayFeeRate(0.1)

	deal := entity.Deal{
		AskingPrice: value.MoneyPtr(100),
		MarketValue: value.MoneyPtr(200),
		Condition:   value.ConditionNew,
	}

	v, err := engine.Valuate(deal)
	rq.NoError(err)
	rq.InDelta(80, float64(v.ProfitByPlatform[value.PlatformEbay]), 1e-9)
}

func TestMoneyFormat(t *testing.T) {
	rq := require.New(t)

	rq.Equal("$30.50", value.Money(30.5).Format())
	rq.Equal("-$8.60", value.Money(-8.6).Format())
	rq.Equal("$0.00", value.Money(0).Format())
}
