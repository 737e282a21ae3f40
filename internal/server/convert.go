package server

import (
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/dealscore"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/worker"
	"github.com/junipr-dev/dealscout/pkg/lox"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

// newRESTDeal folds the local computations into the wire model. Valuation
// fields stay null when profit is undefined for the deal.
func newRESTDeal(
	deal entity.Deal,
	engine *valuation.Engine,
	classifier *location.Classifier,
) rest.Deal {
	out := rest.Deal{
		ID:               deal.ID,
		Title:            deal.Title,
		Condition:        deal.Condition.String(),
		Source:           deal.Source,
		ListingURL:       deal.ListingURL,
		ImageURL:         deal.ImageURL,
		Category:         deal.Category,
		Brand:            deal.Brand,
		Model:            deal.Model,
		Location:         deal.Location,
		Status:           string(deal.Status),
		CreatedAt:        deal.CreatedAt,
		PurchaseEligible: valuation.IsPurchaseEligible(deal),
		Local:            classifier.IsLocal(deal),
	}

	if deal.AskingPrice != nil {
		price := deal.AskingPrice.Float64()
		out.AskingPrice = &price
	}
	if deal.MarketValue != nil {
		mv := deal.MarketValue.Float64()
		out.MarketValue = &mv
	}

	if deal.DistanceMiles != nil {
		d := float64(*deal.DistanceMiles)
		out.DistanceMiles = &d
	} else if d, ok := classifier.DistanceFromHome(deal.Location); ok {
		out.DistanceMiles = &d
	}

	for _, opt := range deal.RepairOptions {
		out.RepairOptions = append(out.RepairOptions, rest.RepairOption{
			ID:         opt.ID,
			Name:       opt.Name,
			PartCost:   opt.PartCost.Float64(),
			LaborHours: opt.LaborHours,
		})
	}

	val, err := engine.Valuate(deal)
	if err != nil {
		return out
	}

	profits := make(map[string]float64, len(val.ProfitByPlatform))
	for platform, profit := range val.ProfitByPlatform {
		profits[string(platform)] = profit.Round().Float64()
	}

	best := val.BestProfit.Round().Float64()
	score := dealscore.Calculate(deal, val.BestProfit, out.Local)

	out.ProfitByPlatform = profits
	out.BestPlatform = string(val.Best)
	out.BestProfit = &best
	out.ProfitTier = string(val.Tier)
	out.Score = &rest.Score{
		Value:       score.Value,
		Description: score.Description,
		Strong:      score.Strong,
	}

	return out
}

func newRESTFlip(flip entity.Flip) rest.Flip {
	out := rest.Flip{
		ID:           flip.ID,
		DealID:       flip.DealID,
		ItemName:     flip.ItemName,
		ImageURL:     flip.ImageURL,
		Category:     flip.Category,
		BuyPrice:     flip.BuyPrice.Float64(),
		BuySource:    flip.BuySource,
		Status:       string(flip.Status),
		SellPlatform: string(flip.SellPlatform),
		FeesPaid:     flip.FeesPaid.Float64(),
		ShippingCost: flip.ShippingCost.Float64(),
		Notes:        flip.Notes,
		CreatedAt:    flip.CreatedAt,
	}

	if !flip.BuyDate.IsZero() {
		out.BuyDate = flip.BuyDate.Format("2006-01-02")
	}

	if flip.SellPrice != nil {
		price := flip.SellPrice.Float64()
		out.SellPrice = &price
	}
	if flip.SellDate != nil {
		date := flip.SellDate.Format("2006-01-02")
		out.SellDate = &date
	}
	if flip.Profit != nil {
		profit := flip.Profit.Float64()
		out.Profit = &profit
	}

	return out
}

func newRESTFlips(flips []entity.Flip) []rest.Flip {
	return lox.Map(flips, newRESTFlip)
}

func newRESTSettings(settings entity.Settings) rest.Settings {
	return rest.Settings{
		ProfitThreshold:      settings.ProfitThreshold.Float64(),
		FeePercentage:        settings.FeePercentage,
		NotificationsEnabled: settings.NotificationsEnabled,
	}
}

func newRESTStats(stats entity.Stats) rest.Stats {
	return rest.Stats{
		TotalProfit:   stats.TotalProfit.Float64(),
		TotalInvested: stats.TotalInvested.Float64(),
		ActiveFlips:   stats.ActiveFlips,
		SoldFlips:     stats.SoldFlips,
		AverageProfit: stats.AverageProfit.Float64(),
	}
}

func newRESTEbayStatus(status entity.EbayStatus) rest.EbayStatus {
	return rest.EbayStatus{
		Linked:    status.Linked,
		Username:  status.Username,
		StoreTier: status.StoreTier,
		FeeRate:   status.FeeRate,
	}
}

func newRESTCounts(counts location.Counts) rest.LocationCounts {
	return rest.LocationCounts{
		All:      counts.All,
		Pickup:   counts.Pickup,
		Shipping: counts.Shipping,
	}
}

func newRESTScannerStatus(status worker.Status) rest.ScannerStatus {
	out := rest.ScannerStatus{
		Running:    status.Running,
		Filter:     string(status.Filter),
		Primed:     status.Primed,
		KnownDeals: status.KnownDeals,
		LastError:  status.LastError,
	}

	if !status.LastPollAt.IsZero() {
		t := status.LastPollAt
		out.LastPollAt = &t
	}

	return out
}
