package dealscout

import (
	"context"
	"fmt"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
)

func (c *Client) GetSettings(ctx context.Context) (entity.Settings, error) {
	var dto settingsDTO
	if err := c.get(ctx, "/settings", nil, &dto); err != nil {
		return entity.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return dto.toEntity(), nil
}

func (c *Client) PutSettings(ctx context.Context, settings entity.Settings) (entity.Settings, error) {
	var dto settingsDTO
	if err := c.put(ctx, "/settings", settingsToDTO(settings), &dto); err != nil {
		return entity.Settings{}, fmt.Errorf("put settings: %w", err)
	}

	return dto.toEntity(), nil
}

func (c *Client) Stats(ctx context.Context) (entity.Stats, error) {
	var dto statsDTO
	if err := c.get(ctx, "/stats", nil, &dto); err != nil {
		return entity.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	return dto.toEntity(), nil
}

func (c *Client) EbayStatus(ctx context.Context) (entity.EbayStatus, error) {
	var dto ebayStatusDTO
	if err := c.get(ctx, "/ebay/status", nil, &dto); err != nil {
		return entity.EbayStatus{}, fmt.Errorf("get ebay status: %w", err)
	}

	return dto.toEntity(), nil
}

// RefreshEbay re-pulls store tier and fee rate from the linked account.
func (c *Client) RefreshEbay(ctx context.Context) (entity.EbayStatus, error) {
	var dto ebayStatusDTO
	if err := c.post(ctx, "/ebay/refresh", nil, &dto); err != nil {
		return entity.EbayStatus{}, fmt.Errorf("refresh ebay: %w", err)
	}

	return dto.toEntity(), nil
}

// EbayAuthURL returns the backend's account-linking URL. The OAuth flow
// itself happens between the user's browser and the backend.
func (c *Client) EbayAuthURL(ctx context.Context) (string, error) {
	var dto struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.get(ctx, "/ebay/auth", nil, &dto); err != nil {
		return "", fmt.Errorf("get ebay auth url: %w", err)
	}

	return dto.AuthURL, nil
}

func (c *Client) UnlinkEbay(ctx context.Context) error {
	if err := c.delete(ctx, "/ebay/unlink", nil); err != nil {
		return fmt.Errorf("unlink ebay: %w", err)
	}

	return nil
}

// RegisterDeviceToken upserts a push token; re-registering the same token
// refreshes its last-seen timestamp instead of duplicating it.
func (c *Client) RegisterDeviceToken(ctx context.Context, token, platform string) error {
	body := struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}{Token: token, Platform: platform}

	if err := c.post(ctx, "/device-token", body, nil); err != nil {
		return fmt.Errorf("register device token: %w", err)
	}

	return nil
}
