package config

type Valuation struct {
	EbayFeeRate      float64 `env:"VALUATION_EBAY_FEE_RATE" envDefault:"0.13"`
	MercariFeeRate   float64 `env:"VALUATION_MERCARI_FEE_RATE" envDefault:"0.129"`
	LaborRatePerHour float64 `env:"VALUATION_LABOR_RATE" envDefault:"25"`
	TierHigh         float64 `env:"VALUATION_TIER_HIGH" envDefault:"50"`
	TierMedium       float64 `env:"VALUATION_TIER_MEDIUM" envDefault:"20"`
}
