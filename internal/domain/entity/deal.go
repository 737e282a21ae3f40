package entity

import (
	"time"

	"github.com/junipr-dev/dealscout/internal/domain/value"
)

type DealStatus string

const (
	DealStatusNew            DealStatus = "new"
	DealStatusNeedsCondition DealStatus = "needs_condition"
	DealStatusDismissed      DealStatus = "dismissed"
	DealStatusPurchased      DealStatus = "purchased"
)

// Deal is a discovered marketplace listing candidate, not yet purchased.
// The backend owns the record; the agent holds a parsed copy.
type Deal struct {
	ID    int64
	Title string

	// Price fields are nil when the backend has not priced the item yet.
	// Profit is undefined, not zero, while either is nil.
	AskingPrice *value.Money
	MarketValue *value.Money

	Condition value.Condition

	Source     string
	ListingURL string
	ImageURL   string

	Category    string
	Subcategory string
	Brand       string
	Model       string

	// Location signals, mutually corroborating. An explicit pickup flag wins
	// over distance, which wins over free-text geocoding.
	Location             string
	DistanceMiles        *int
	LocalPickupAvailable *bool

	RepairOptions []RepairOption

	Status     DealStatus
	CreatedAt  time.Time
	NotifiedAt *time.Time
}

// RepairOption is one independently selectable repair for a needs-repair deal.
type RepairOption struct {
	ID         int64
	Name       string
	PartCost   value.Money
	LaborHours float64
}

// Priced reports whether both price fields are present.
func (d Deal) Priced() bool {
	return d.AskingPrice != nil && d.MarketValue != nil
}
