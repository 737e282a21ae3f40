package valuation

import "github.com/junipr-dev/dealscout/internal/domain/value"

// Config carries every business constant the engine needs. None of them are
// hardcoded at call sites; the historical 20-vs-30 medium-tier drift across
// screens is resolved by this single source of truth.
type Config struct {
	Fees             map[value.Platform]FeeProfile
	Preference       []value.Platform
	LaborRatePerHour value.Money
	TierHigh         value.Money
	TierMedium       value.Money
}

func DefaultConfig() Config {
	return Config{
		Fees: map[value.Platform]FeeProfile{
			value.PlatformEbay:     {Rate: 0.13},
			value.PlatformFacebook: {Rate: 0, LocalOnly: true},
			value.PlatformMercari:  {Rate: 0.129},
		},
		Preference: []value.Platform{
			value.PlatformEbay,
			value.PlatformFacebook,
			value.PlatformMercari,
		},
		LaborRatePerHour: 25,
		TierHigh:         50,
		TierMedium:       20,
	}
}
