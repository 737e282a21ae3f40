// Package rest holds the wire models of the local HTTP API.
package rest

import "time"

// Error is the error envelope for non-2xx replies.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Score struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
	Strong      bool   `json:"strong"`
}

type RepairOption struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	PartCost   float64 `json:"part_cost"`
	LaborHours float64 `json:"labor_hours"`
}

// Deal is a backend deal enriched with everything computed locally:
// per-platform profits, tier, score and the local-pickup verdict.
type Deal struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	AskingPrice *float64 `json:"asking_price"`
	MarketValue *float64 `json:"market_value"`
	Condition   string   `json:"condition"`
	Source      string   `json:"source"`
	ListingURL  string   `json:"listing_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Model       string   `json:"model,omitempty"`
	Location    string   `json:"location,omitempty"`

	Local         bool     `json:"local"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`

	// Valuation fields are null while profit is undefined for the deal.
	ProfitByPlatform map[string]float64 `json:"profit_by_platform,omitempty"`
	BestPlatform     string             `json:"best_platform,omitempty"`
	BestProfit       *float64           `json:"best_profit"`
	ProfitTier       string             `json:"profit_tier,omitempty"`
	Score            *Score             `json:"score,omitempty"`

	PurchaseEligible bool           `json:"purchase_eligible"`
	RepairOptions    []RepairOption `json:"repair_options,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type LocationCounts struct {
	All      int `json:"all"`
	Pickup   int `json:"pickup"`
	Shipping int `json:"shipping"`
}

type DealList struct {
	Deals  []Deal         `json:"deals"`
	Counts LocationCounts `json:"counts"`
}

type ConditionUpdate struct {
	Condition string `json:"condition" validate:"required,oneof=new used needs_repair unknown"`
}

type MarketValueUpdate struct {
	MarketValue float64 `json:"market_value" validate:"required,gt=0"`
}

type PurchaseRequest struct {
	BuyPrice       float64 `json:"buy_price" validate:"gte=0"`
	BuyDate        string  `json:"buy_date" validate:"required,datetime=2006-01-02"`
	PlannedRepairs []int64 `json:"planned_repairs,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type RepairQuoteRequest struct {
	SelectedOptions []int64 `json:"selected_options" validate:"required,min=1"`
}

// RepairQuote is the profit of the best platform before and after the
// selected repairs.
type RepairQuote struct {
	BaseProfit     float64 `json:"base_profit"`
	AdjustedProfit float64 `json:"adjusted_profit"`
	Platform       string  `json:"platform"`
}

type Flip struct {
	ID        int64  `json:"id"`
	DealID    *int64 `json:"deal_id,omitempty"`
	ItemName  string `json:"item_name"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
	BuyPrice  float64 `json:"buy_price"`
	BuyDate   string  `json:"buy_date"`
	BuySource string  `json:"buy_source,omitempty"`

	Status string `json:"status"`

	SellPrice    *float64 `json:"sell_price,omitempty"`
	SellDate     *string  `json:"sell_date,omitempty"`
	SellPlatform string   `json:"sell_platform,omitempty"`
	FeesPaid     float64  `json:"fees_paid"`
	ShippingCost float64  `json:"shipping_cost"`

	Profit *float64 `json:"profit"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FlipCreate struct {
	ItemName  string  `json:"item_name" validate:"required"`
	Category  string  `json:"category,omitempty"`
	BuyPrice  float64 `json:"buy_price" validate:"gte=0"`
	BuyDate   string  `json:"buy_date" validate:"required,datetime=2006-01-02"`
	BuySource string  `json:"buy_source,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type FlipUpdate struct {
	ItemName *string  `json:"item_name,omitempty"`
	Category *string  `json:"category,omitempty"`
	BuyPrice *float64 `json:"buy_price,omitempty" validate:"omitempty,gte=0"`
	Notes    *string  `json:"notes,omitempty"`
}

type FlipSell struct {
	SellPrice    float64 `json:"sell_price" validate:"required,gt=0"`
	SellDate     string  `json:"sell_date" validate:"required,datetime=2006-01-02"`
	SellPlatform string  `json:"sell_platform" validate:"required"`
	FeesPaid     float64 `json:"fees_paid" validate:"gte=0"`
	ShippingCost float64 `json:"shipping_cost" validate:"gte=0"`
}

// Settings mirrors the backend settings. FeePercentage is a fraction
// (0.13 = 13%), matching the valuation model rather than the backend wire.
type Settings struct {
	ProfitThreshold      float64 `json:"profit_threshold" validate:"gte=0"`
	FeePercentage        float64 `json:"fee_percentage" validate:"gte=0,lte=1"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
}

type Stats struct {
	TotalProfit   float64 `json:"total_profit"`
	TotalInvested float64 `json:"total_invested"`
	ActiveFlips   int     `json:"active_flips"`
	SoldFlips     int     `json:"sold_flips"`
	AverageProfit float64 `json:"average_profit"`
}

type EbayStatus struct {
	Linked    bool     `json:"linked"`
	Username  string   `json:"username,omitempty"`
	StoreTier string   `json:"store_tier,omitempty"`
	FeeRate   *float64 `json:"fee_rate,omitempty"`
}

type DeviceTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}

type ScannerFilter struct {
	Filter string `json:"filter" validate:"required,oneof=all pickup shipping"`
}

type ScannerStatus struct {
	Running    bool       `json:"running"`
	Filter     string     `json:"filter"`
	Primed     bool       `json:"primed"`
	KnownDeals int        `json:"known_deals"`
	LastPollAt *time.Time `json:"last_poll_at,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
}

// DistanceCheck is the verdict for a free-text location.
type DistanceCheck struct {
	Location      string   `json:"location"`
	DistanceMiles *float64 `json:"distance_miles"`
	Local         bool     `json:"local"`
}
