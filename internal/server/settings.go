package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/worker"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/httpx/reply"
	"github.com/junipr-dev/dealscout/pkg/httpx/req"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

type settingsBackend interface {
	GetSettings(ctx context.Context) (entity.Settings, error)
	PutSettings(ctx context.Context, settings entity.Settings) (entity.Settings, error)
	Stats(ctx context.Context) (entity.Stats, error)
	EbayStatus(ctx context.Context) (entity.EbayStatus, error)
	RefreshEbay(ctx context.Context) (entity.EbayStatus, error)
	UnlinkEbay(ctx context.Context) error
	RegisterDeviceToken(ctx context.Context, token, platform string) error
}

type SettingsServer struct {
	backend settingsBackend
	scanner *worker.DealScanner
}

func NewSettingsServer(backend settingsBackend, scanner *worker.DealScanner) SettingsServer {
	return SettingsServer{
		backend: backend,
		scanner: scanner,
	}
}

func (s SettingsServer) getV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	settings, err := s.backend.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("backend.GetSettings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s SettingsServer) putV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Settings
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	settings, err := s.backend.PutSettings(ctx, entity.Settings{
		ProfitThreshold:      value.Money(request.ProfitThreshold),
		FeePercentage:        request.FeePercentage,
		NotificationsEnabled: request.NotificationsEnabled,
	})
	if err != nil {
		return fmt.Errorf("backend.PutSettings: %w", err)
	}

	// The running scanner picks up the new floor and mute state immediately.
	if s.scanner != nil {
		s.scanner.SetThreshold(settings.ProfitThreshold)
		s.scanner.SetNotifications(settings.NotificationsEnabled)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s SettingsServer) getV1Stats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	stats, err := s.backend.Stats(ctx)
	if err != nil {
		return fmt.Errorf("backend.Stats: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStats(stats))

	return nil
}

func (s SettingsServer) getV1EbayStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status, err := s.backend.EbayStatus(ctx)
	if err != nil {
		return fmt.Errorf("backend.EbayStatus: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTEbayStatus(status))

	return nil
}

func (s SettingsServer) postV1EbayRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status, err := s.backend.RefreshEbay(ctx)
	if err != nil {
		return fmt.Errorf("backend.RefreshEbay: %w", err)
	}

	if !status.Linked {
		return domain.NewError(errcodes.EbayNotLinked, "no eBay account is linked")
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTEbayStatus(status))

	return nil
}

func (s SettingsServer) deleteV1EbayLink(w http.ResponseWriter, r *http.Request) error {
	if err := s.backend.UnlinkEbay(r.Context()); err != nil {
		return fmt.Errorf("backend.UnlinkEbay: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s SettingsServer) postV1DeviceTokens(w http.ResponseWriter, r *http.Request) error {
	var request rest.DeviceTokenRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.backend.RegisterDeviceToken(r.Context(), request.Token, request.Platform); err != nil {
		return fmt.Errorf("backend.RegisterDeviceToken: %w", err)
	}

	reply.OK(w)

	return nil
}
