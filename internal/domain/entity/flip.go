package entity

import (
	"time"

	"github.com/junipr-dev/dealscout/internal/domain/value"
)

type FlipStatus string

const (
	FlipStatusActive FlipStatus = "active"
	FlipStatusSold   FlipStatus = "sold"
)

// Flip is a purchased item being resold. Terminal states are sold or deleted.
type Flip struct {
	ID       int64
	DealID   *int64
	ItemName string
	ImageURL string
	Category string

	BuyPrice  value.Money
	BuyDate   time.Time
	BuySource string

	Status FlipStatus

	SellPrice    *value.Money
	SellDate     *time.Time
	SellPlatform value.Platform
	FeesPaid     value.Money
	ShippingCost value.Money

	Profit *value.Money

	Notes     string
	CreatedAt time.Time
}

// CalculateProfit returns the realized profit of a sale, or nil while the
// flip has no sell price.
func (f Flip) CalculateProfit() *value.Money {
	if f.SellPrice == nil {
		return nil
	}

	p := (*f.SellPrice - f.BuyPrice - f.FeesPaid - f.ShippingCost).Round()

	return &p
}
