package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/httpx/reply"
	"github.com/junipr-dev/dealscout/pkg/httpx/req"
	"github.com/junipr-dev/dealscout/pkg/rest"
)

type dealBackend interface {
	ListDeals(ctx context.Context, query dealscout.ListDealsQuery) ([]entity.Deal, error)
	GetDeal(ctx context.Context, id int64) (entity.Deal, error)
	DismissDeal(ctx context.Context, id int64) error
	UpdateCondition(ctx context.Context, id int64, condition value.Condition) (entity.Deal, error)
	OverrideMarketValue(ctx context.Context, id int64, marketValue value.Money) (entity.Deal, error)
	PurchaseDeal(ctx context.Context, id int64, req dealscout.PurchaseRequest) (entity.Flip, error)
}

type DealServer struct {
	backend    dealBackend
	engine     *valuation.Engine
	classifier *location.Classifier
}

func NewDealServer(backend dealBackend, engine *valuation.Engine, classifier *location.Classifier) DealServer {
	return DealServer{
		backend:    backend,
		engine:     engine,
		classifier: classifier,
	}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := location.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		return err
	}

	query := dealscout.ListDealsQuery{Status: entity.DealStatusNew}
	if status := r.URL.Query().Get("status"); status != "" {
		query.Status = entity.DealStatus(status)
	}

	deals, err := s.backend.ListDeals(ctx, query)
	if err != nil {
		return fmt.Errorf("backend.ListDeals: %w", err)
	}

	// Counts cover the whole feed so the UI tabs stay correct regardless of
	// the active filter.
	counts := s.classifier.CountDeals(deals)
	visible := s.classifier.FilterDeals(deals, filter)

	out := rest.DealList{
		Deals:  make([]rest.Deal, 0, len(visible)),
		Counts: newRESTCounts(counts),
	}
	for _, deal := range visible {
		out.Deals = append(out.Deals, newRESTDeal(deal, s.engine, s.classifier))
	}

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	deal, err := s.backend.GetDeal(ctx, id)
	if err != nil {
		return fmt.Errorf("backend.GetDeal: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal, s.engine, s.classifier))

	return nil
}

func (s DealServer) postV1DealDismiss(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	if err := s.backend.DismissDeal(r.Context(), id); err != nil {
		return fmt.Errorf("backend.DismissDeal: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s DealServer) putV1DealCondition(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	var request rest.ConditionUpdate
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	condition, err := value.ParseCondition(request.Condition)
	if err != nil {
		return err
	}

	deal, err := s.backend.UpdateCondition(ctx, id, condition)
	if err != nil {
		return fmt.Errorf("backend.UpdateCondition: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal, s.engine, s.classifier))

	return nil
}

func (s DealServer) putV1DealMarketValue(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	var request rest.MarketValueUpdate
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := s.backend.OverrideMarketValue(ctx, id, value.Money(request.MarketValue))
	if err != nil {
		return fmt.Errorf("backend.OverrideMarketValue: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal, s.engine, s.classifier))

	return nil
}

func (s DealServer) postV1DealPurchase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	var request rest.PurchaseRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := s.backend.GetDeal(ctx, id)
	if err != nil {
		return fmt.Errorf("backend.GetDeal: %w", err)
	}

	if deal.Status == entity.DealStatusPurchased {
		return domain.NewError(errcodes.DealAlreadyBought, "deal was already purchased")
	}

	if !valuation.IsPurchaseEligible(deal) {
		return domain.NewError(errcodes.NotPurchaseEligible, "deal needs a known condition and market value before purchase")
	}

	buyDate, err := parseDate(request.BuyDate)
	if err != nil {
		return err
	}

	flip, err := s.backend.PurchaseDeal(ctx, id, dealscout.PurchaseRequest{
		BuyPrice:       value.Money(request.BuyPrice),
		BuyDate:        buyDate,
		PlannedRepairs: request.PlannedRepairs,
		Notes:          request.Notes,
	})
	if err != nil {
		return fmt.Errorf("backend.PurchaseDeal: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTFlip(flip))

	return nil
}

func (s DealServer) postV1DealRepairQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r, errcodes.InvalidDealID)
	if err != nil {
		return err
	}

	var request rest.RepairQuoteRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal, err := s.backend.GetDeal(ctx, id)
	if err != nil {
		return fmt.Errorf("backend.GetDeal: %w", err)
	}

	val, err := s.engine.Valuate(deal)
	if err != nil {
		return err
	}

	adjusted, err := s.engine.RepairAdjustedProfit(val.BestProfit, deal.RepairOptions, request.SelectedOptions)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, rest.RepairQuote{
		BaseProfit:     val.BestProfit.Round().Float64(),
		AdjustedProfit: adjusted.Round().Float64(),
		Platform:       string(val.Best),
	})

	return nil
}

func parseID(r *http.Request, code failure.ErrorCode) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(code, "id must be a positive integer")
	}

	return id, nil
}
