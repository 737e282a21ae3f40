package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/httpx/reply"
	"github.com/junipr-dev/dealscout/pkg/httpx/req"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

type flipBackend interface {
	ListFlips(ctx context.Context, status entity.FlipStatus) ([]entity.Flip, error)
	CreateFlip(ctx context.Context, req dealscout.CreateFlipRequest) (entity.Flip, error)
	UpdateFlip(ctx context.Context, id int64, req dealscout.UpdateFlipRequest) (entity.Flip, error)
	SellFlip(ctx context.Context, id int64, req dealscout.SellRequest) (entity.Flip, error)
	DeleteFlip(ctx context.Context, id int64) error
}

type FlipServer struct {
	backend flipBackend
}

func NewFlipServer(backend flipBackend) FlipServer {
	return FlipServer{backend: backend}
}

func (s FlipServer) getV1Flips(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	status := entity.FlipStatus(r.URL.Query().Get("status"))
	switch status {
	case "", entity.FlipStatusActive, entity.FlipStatusSold:
	default:
		return domain.NewError(errcodes.ValidationError, "status must be active or sold")
	}

	flips, err := s.backend.ListFlips(ctx, status)
	if err != nil {
		return fmt.Errorf("backend.ListFlips: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTFlips(flips))

	return nil
}

func (s FlipServer) postV1Flips(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.FlipCreate
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	buyDate, err := parseDate(request.BuyDate)
	if err != nil {
		return err
	}

	flip, err := s.backend.CreateFlip(ctx, dealscout.CreateFlipRequest{
		ItemName:  request.ItemName,
		Category:  request.Category,
		BuyPrice:  value.Money(request.BuyPrice),
		BuyDate:   buyDate,
		BuySource: request.BuySource,
		ImageURL:  request.ImageURL,
		Notes:     request.Notes,
	})
	if err != nil {
		return fmt.Errorf("backend.CreateFlip: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTFlip(flip))

	return nil
}

func (s FlipServer) putV1Flip(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidFlipID)
	if err != nil {
		return err
	}

	var request rest.FlipUpdate
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	update := dealscout.UpdateFlipRequest{
		ItemName: request.ItemName,
		Category: request.Category,
		Notes:    request.Notes,
	}
	if request.BuyPrice != nil {
		price := value.Money(*request.BuyPrice)
		update.BuyPrice = &price
	}

	flip, err := s.backend.UpdateFlip(ctx, id, update)
	if err != nil {
		return fmt.Errorf("backend.UpdateFlip: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTFlip(flip))

	return nil
}

func (s FlipServer) postV1FlipSell(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidFlipID)
	if err != nil {
		return err
	}

	var request rest.FlipSell
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	sellDate, err := parseDate(request.SellDate)
	if err != nil {
		return err
	}

	flip, err := s.backend.SellFlip(ctx, id, dealscout.SellRequest{
		SellPrice:    value.Money(request.SellPrice),
		SellDate:     sellDate,
		Platform:     value.Platform(request.SellPlatform),
		FeesPaid:     value.Money(request.FeesPaid),
		ShippingCost: value.Money(request.ShippingCost),
	})
	if err != nil {
		return fmt.Errorf("backend.SellFlip: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTFlip(flip))

	return nil
}

func (s FlipServer) deleteV1Flip(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, errcodes.InvalidFlipID)
	if err != nil {
		return err
	}

	if err := s.backend.DeleteFlip(r.Context(), id); err != nil {
		return fmt.Errorf("backend.DeleteFlip: %w", err)
	}

	reply.OK(w)

	return nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.NewError(errcodes.ValidationError, "date must be YYYY-MM-DD")
	}

	return date, nil
}
