package dealscout

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

// ListDealsQuery narrows the deal feed. Zero values mean "no filter".
type ListDealsQuery struct {
	Status      entity.DealStatus
	NeedsReview bool
	MinProfit   *float64
	Category    string
}

func (q ListDealsQuery) values() url.Values {
	values := url.Values{}

	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	if q.NeedsReview {
		values.Set("needs_review", "true")
	}
	if q.MinProfit != nil {
		values.Set("min_profit", strconv.FormatFloat(*q.MinProfit, 'f', -1, 64))
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}

	return values
}

func (c *Client) ListDeals(ctx context.Context, query ListDealsQuery) ([]entity.Deal, error) {
	var dtos []dealDTO
	if err := c.get(ctx, "/deals", query.values(), &dtos); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	return dealsToEntities(dtos)
}

func (c *Client) GetDeal(ctx context.Context, id int64) (entity.Deal, error) {
	var dto dealDTO
	if err := c.get(ctx, fmt.Sprintf("/deals/%d", id), nil, &dto); err != nil {
		return entity.Deal{}, remapNotFound(err, errcodes.DealNotFound, "deal not found")
	}

	return dto.toEntity()
}

// DismissDeal hides a deal from the feed. Dismissing an already-dismissed
// deal is a no-op on the backend.
func (c *Client) DismissDeal(ctx context.Context, id int64) error {
	err := c.post(ctx, fmt.Sprintf("/deals/%d/dismiss", id), nil, nil)

	return remapNotFound(err, errcodes.DealNotFound, "deal not found")
}

// UpdateCondition sets a reviewed condition on a needs_condition deal and
// returns the re-evaluated deal.
func (c *Client) UpdateCondition(ctx context.Context, id int64, condition value.Condition) (entity.Deal, error) {
	body := struct {
		Condition string `json:"condition"`
	}{Condition: string(condition)}

	var dto dealDTO
	if err := c.post(ctx, fmt.Sprintf("/deals/%d/condition", id), body, &dto); err != nil {
		return entity.Deal{}, remapNotFound(err, errcodes.DealNotFound, "deal not found")
	}

	return dto.toEntity()
}

// OverrideMarketValue replaces the estimated market value with a manual one.
func (c *Client) OverrideMarketValue(ctx context.Context, id int64, marketValue value.Money) (entity.Deal, error) {
	body := struct {
		MarketValue float64 `json:"market_value"`
	}{MarketValue: marketValue.Float64()}

	var dto dealDTO
	if err := c.post(ctx, fmt.Sprintf("/deals/%d/market-value", id), body, &dto); err != nil {
		return entity.Deal{}, remapNotFound(err, errcodes.DealNotFound, "deal not found")
	}

	return dto.toEntity()
}

// PurchaseRequest converts a deal into a tracked flip.
type PurchaseRequest struct {
	BuyPrice       value.Money
	BuyDate        time.Time
	PlannedRepairs []int64
	Notes          string
}

func (c *Client) PurchaseDeal(ctx context.Context, id int64, req PurchaseRequest) (entity.Flip, error) {
	body := struct {
		BuyPrice       float64  `json:"buy_price"`
		BuyDate        wireDate `json:"buy_date"`
		PlannedRepairs []int64  `json:"planned_repairs,omitempty"`
		Notes          string   `json:"notes,omitempty"`
	}{
		BuyPrice:       req.BuyPrice.Float64(),
		BuyDate:        wireDate{t: &req.BuyDate},
		PlannedRepairs: req.PlannedRepairs,
		Notes:          req.Notes,
	}

	var dto flipDTO
	if err := c.post(ctx, fmt.Sprintf("/deals/%d/purchase", id), body, &dto); err != nil {
		return entity.Flip{}, remapNotFound(err, errcodes.DealNotFound, "deal not found")
	}

	return dto.toEntity()
}
