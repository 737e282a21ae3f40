package dealscout

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

func (c *Client) ListFlips(ctx context.Context, status entity.FlipStatus) ([]entity.Flip, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var dtos []flipDTO
	if err := c.get(ctx, "/flips", query, &dtos); err != nil {
		return nil, fmt.Errorf("list flips: %w", err)
	}

	return flipsToEntities(dtos)
}

// CreateFlipRequest records a purchase made outside the deal feed.
type CreateFlipRequest struct {
	ItemName  string
	Category  string
	BuyPrice  value.Money
	BuyDate   time.Time
	BuySource string
	ImageURL  string
	Notes     string
}

func (c *Client) CreateFlip(ctx context.Context, req CreateFlipRequest) (entity.Flip, error) {
	body := struct {
		ItemName  string   `json:"item_name"`
		Category  string   `json:"category,omitempty"`
		BuyPrice  float64  `json:"buy_price"`
		BuyDate   wireDate `json:"buy_date"`
		BuySource string   `json:"buy_source,omitempty"`
		ImageURL  string   `json:"image_url,omitempty"`
		Notes     string   `json:"notes,omitempty"`
	}{
		ItemName:  req.ItemName,
		Category:  req.Category,
		BuyPrice:  req.BuyPrice.Float64(),
		BuyDate:   wireDate{t: &req.BuyDate},
		BuySource: req.BuySource,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
	}

	var dto flipDTO
	if err := c.post(ctx, "/flips", body, &dto); err != nil {
		return entity.Flip{}, fmt.Errorf("create flip: %w", err)
	}

	return dto.toEntity()
}

// UpdateFlipRequest patches mutable flip fields; nil means "leave as is".
type UpdateFlipRequest struct {
	ItemName *string
	Category *string
	BuyPrice *value.Money
	Notes    *string
}

func (c *Client) UpdateFlip(ctx context.Context, id int64, req UpdateFlipRequest) (entity.Flip, error) {
	body := map[string]any{}

	if req.ItemName != nil {
		body["item_name"] = *req.ItemName
	}
	if req.Category != nil {
		body["category"] = *req.Category
	}
	if req.BuyPrice != nil {
		body["buy_price"] = req.BuyPrice.Float64()
	}
	if req.Notes != nil {
		body["notes"] = *req.Notes
	}

	var dto flipDTO
	if err := c.put(ctx, fmt.Sprintf("/flips/%d", id), body, &dto); err != nil {
		return entity.Flip{}, remapNotFound(err, errcodes.FlipNotFound, "flip not found")
	}

	return dto.toEntity()
}

// SellRequest closes a flip with its sale outcome.
type SellRequest struct {
	SellPrice    value.Money
	SellDate     time.Time
	Platform     value.Platform
	FeesPaid     value.Money
	ShippingCost value.Money
}

func (c *Client) SellFlip(ctx context.Context, id int64, req SellRequest) (entity.Flip, error) {
	body := struct {
		SellPrice    float64  `json:"sell_price"`
		SellDate     wireDate `json:"sell_date"`
		SellPlatform string   `json:"sell_platform"`
		FeesPaid     float64  `json:"fees_paid"`
		ShippingCost float64  `json:"shipping_cost"`
	}{
		SellPrice:    req.SellPrice.Float64(),
		SellDate:     wireDate{t: &req.SellDate},
		SellPlatform: string(req.Platform),
		FeesPaid:     req.FeesPaid.Float64(),
		ShippingCost: req.ShippingCost.Float64(),
	}

	var dto flipDTO
	if err := c.post(ctx, fmt.Sprintf("/flips/%d/sell", id), body, &dto); err != nil {
		return entity.Flip{}, remapNotFound(err, errcodes.FlipNotFound, "flip not found")
	}

	return dto.toEntity()
}

func (c *Client) DeleteFlip(ctx context.Context, id int64) error {
	err := c.delete(ctx, fmt.Sprintf("/flips/%d", id), nil)

	return remapNotFound(err, errcodes.FlipNotFound, "flip not found")
}
