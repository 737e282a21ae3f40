package dealscout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

const dateLayout = "2006-01-02"

// wireMoney tolerates the three shapes scraped prices arrive in:
// a JSON number, a numeric string ("123.45", sometimes with "$" or ","),
// and null for listings with no price at all.
type wireMoney struct {
	amount *value.Money
}

func (m *wireMoney) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		m.amount = nil
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("strconv.Unquote: %w", err)
		}
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(unquoted)
		if s == "" {
			m.amount = nil
			return nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse money %q: %w", s, err)
	}

	m.amount = value.MoneyPtr(v)

	return nil
}

func (m wireMoney) MarshalJSON() ([]byte, error) {
	if m.amount == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(m.amount.Float64(), 'f', -1, 64)), nil
}

// wireDate is a date-only timestamp ("2006-01-02").
type wireDate struct {
	t *time.Time
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		d.t = nil
		return nil
	}

	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		// Some backend rows carry full timestamps.
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
	}

	d.t = &parsed

	return nil
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	if d.t == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

type repairOptionDTO struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PartCost   wireMoney `json:"part_cost"`
	LaborHours float64   `json:"labor_hours"`
}

type dealDTO struct {
	ID                   int64             `json:"id"`
	Title                string            `json:"title"`
	AskingPrice          wireMoney         `json:"asking_price"`
	MarketValue          wireMoney         `json:"market_value"`
	Condition            string            `json:"condition"`
	Source               string            `json:"source"`
	ListingURL           string            `json:"listing_url"`
	ImageURL             string            `json:"image_url"`
	Category             string            `json:"category"`
	Subcategory          string            `json:"subcategory"`
	Brand                string            `json:"brand"`
	Model                string            `json:"model"`
	Location             string            `json:"location"`
	DistanceMiles        *int              `json:"distance_miles"`
	LocalPickupAvailable *bool             `json:"local_pickup_available"`
	RepairOptions        []repairOptionDTO `json:"repair_options"`
	Status               string            `json:"status"`
	CreatedAt            time.Time         `json:"created_at"`
	NotifiedAt           *time.Time        `json:"notified_at"`
}

func (d dealDTO) toEntity() (entity.Deal, error) {
	if d.ID <= 0 {
		return entity.Deal{}, domain.NewError(errcodes.InvalidDealID, "deal id must be positive")
	}

	condition, err := value.ParseCondition(d.Condition)
	if err != nil {
		return entity.Deal{}, err
	}

	if d.AskingPrice.amount != nil && *d.AskingPrice.amount < 0 {
		return entity.Deal{}, domain.NewError(errcodes.ValidationError, "asking price must not be negative")
	}
	if d.MarketValue.amount != nil && *d.MarketValue.amount < 0 {
		return entity.Deal{}, domain.NewError(errcodes.InvalidMarketValue, "market value must not be negative")
	}

	repairs := make([]entity.RepairOption, 0, len(d.RepairOptions))
	for _, r := range d.RepairOptions {
		var partCost value.Money
		if r.PartCost.amount != nil {
			partCost = *r.PartCost.amount
		}
		repairs = append(repairs, entity.RepairOption{
			ID:         r.ID,
			Name:       r.Name,
			PartCost:   partCost,
			LaborHours: r.LaborHours,
		})
	}

	return entity.Deal{
		ID:                   d.ID,
		Title:                d.Title,
		AskingPrice:          d.AskingPrice.amount,
		MarketValue:          d.MarketValue.amount,
		Condition:            condition,
		Source:               d.Source,
		ListingURL:           d.ListingURL,
		ImageURL:             d.ImageURL,
		Category:             d.Category,
		Subcategory:          d.Subcategory,
		Brand:                d.Brand,
		Model:                d.Model,
		Location:             d.Location,
		DistanceMiles:        d.DistanceMiles,
		LocalPickupAvailable: d.LocalPickupAvailable,
		RepairOptions:        repairs,
		Status:               entity.DealStatus(d.Status),
		CreatedAt:            d.CreatedAt,
		NotifiedAt:           d.NotifiedAt,
	}, nil
}

func dealsToEntities(dtos []dealDTO) ([]entity.Deal, error) {
	result := make([]entity.Deal, 0, len(dtos))
	for _, dto := range dtos {
		deal, err := dto.toEntity()
		if err != nil {
			return nil, fmt.Errorf("deal %d: %w", dto.ID, err)
		}
		result = append(result, deal)
	}
	return result, nil
}

type flipDTO struct {
	ID           int64      `json:"id"`
	DealID       *int64     `json:"deal_id"`
	ItemName     string     `json:"item_name"`
	ImageURL     string     `json:"image_url"`
	Category     string     `json:"category"`
	BuyPrice     wireMoney  `json:"buy_price"`
	BuyDate      wireDate   `json:"buy_date"`
	BuySource    string     `json:"buy_source"`
	Status       string     `json:"status"`
	SellPrice    wireMoney  `json:"sell_price"`
	SellDate     wireDate   `json:"sell_date"`
	SellPlatform string     `json:"sell_platform"`
	FeesPaid     wireMoney  `json:"fees_paid"`
	ShippingCost wireMoney  `json:"shipping_cost"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (f flipDTO) toEntity() (entity.Flip, error) {
	if f.ID <= 0 {
		return entity.Flip{}, domain.NewError(errcodes.InvalidFlipID, "flip id must be positive")
	}

	var buyPrice value.Money
	if f.BuyPrice.amount != nil {
		buyPrice = *f.BuyPrice.amount
	}

	var buyDate time.Time
	if f.BuyDate.t != nil {
		buyDate = *f.BuyDate.t
	}

	deref := func(m *value.Money) value.Money {
		if m == nil {
			return 0
		}
		return *m
	}

	flip := entity.Flip{
		ID:           f.ID,
		DealID:       f.DealID,
		ItemName:     f.ItemName,
		ImageURL:     f.ImageURL,
		Category:     f.Category,
		BuyPrice:     buyPrice,
		BuyDate:      buyDate,
		BuySource:    f.BuySource,
		Status:       entity.FlipStatus(f.Status),
		SellPrice:    f.SellPrice.amount,
		SellDate:     f.SellDate.t,
		SellPlatform: value.Platform(f.SellPlatform),
		FeesPaid:     deref(f.FeesPaid.amount),
		ShippingCost: deref(f.ShippingCost.amount),
		Notes:        f.Notes,
		CreatedAt:    f.CreatedAt,
	}
	flip.Profit = flip.CalculateProfit()

	return flip, nil
}

func flipsToEntities(dtos []flipDTO) ([]entity.Flip, error) {
	result := make([]entity.Flip, 0, len(dtos))
	for _, dto := range dtos {
		flip, err := dto.toEntity()
		if err != nil {
			return nil, fmt.Errorf("flip %d: %w", dto.ID, err)
		}
		result = append(result, flip)
	}
	return result, nil
}

// settingsDTO carries fees as whole percents (13.0); entities use fractions.
type settingsDTO struct {
	ProfitThreshold      float64 `json:"profit_threshold"`
	FeePercentage        float64 `json:"fee_percentage"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
}

func (s settingsDTO) toEntity() entity.Settings {
	return entity.Settings{
		ProfitThreshold:      value.Money(s.ProfitThreshold),
		FeePercentage:        s.FeePercentage / 100,
		NotificationsEnabled: s.NotificationsEnabled,
	}
}

func settingsToDTO(s entity.Settings) settingsDTO {
	return settingsDTO{
		ProfitThreshold:      s.ProfitThreshold.Float64(),
		FeePercentage:        s.FeePercentage * 100,
		NotificationsEnabled: s.NotificationsEnabled,
	}
}

type statsDTO struct {
	TotalProfit   wireMoney `json:"total_profit"`
	TotalInvested wireMoney `json:"total_invested"`
	ActiveCount   int       `json:"active_count"`
	SoldCount     int       `json:"sold_count"`
	AvgProfit     wireMoney `json:"avg_profit"`
}

func (s statsDTO) toEntity() entity.Stats {
	deref := func(m *value.Money) value.Money {
		if m == nil {
			return 0
		}
		return *m
	}

	return entity.Stats{
		TotalProfit:   deref(s.TotalProfit.amount),
		TotalInvested: deref(s.TotalInvested.amount),
		ActiveFlips:   s.ActiveCount,
		SoldFlips:     s.SoldCount,
		AverageProfit: deref(s.AvgProfit.amount),
	}
}

type ebayStatusDTO struct {
	Linked        bool     `json:"linked"`
	Username      string   `json:"username"`
	StoreTier     string   `json:"store_tier"`
	FeePercentage *float64 `json:"fee_percentage"`
}

func (e ebayStatusDTO) toEntity() entity.EbayStatus {
	status := entity.EbayStatus{
		Linked:    e.Linked,
		Username:  e.Username,
		StoreTier: e.StoreTier,
	}

	if e.FeePercentage != nil {
		rate := *e.FeePercentage / 100
		status.FeeRate = &rate
	}

	return status
}
