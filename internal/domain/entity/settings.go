package entity

import "github.com/junipr-dev/dealscout/internal/domain/value"

// Settings is the backend-owned app configuration surface.
type Settings struct {
	// Minimum estimated profit for a deal to be worth an alert.
	ProfitThreshold value.Money
	// Default platform fee, fraction of market value (0.13 = 13%).
	FeePercentage float64
	NotificationsEnabled bool
}

// Stats is the aggregate profit summary for the dashboard.
type Stats struct {
	TotalProfit   value.Money
	TotalInvested value.Money
	ActiveFlips   int
	SoldFlips     int
	AverageProfit value.Money
}

// EbayStatus describes the linked seller account used for fee-rate sourcing.
type EbayStatus struct {
	Linked    bool
	Username  string
	StoreTier string
	// Store-tier final value fee, fraction of sale price. Overrides the
	// configured eBay rate when present.
	FeeRate *float64
}
