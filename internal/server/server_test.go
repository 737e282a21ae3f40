package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/internal/server"
	"github.com/junipr-dev/dealscout/internal/worker"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
	"github.com/junipr-dev/dealscout/pkg/rest"
	"github.com/junipr-dev/dealscout/pkg/tests"
)

// fakeBackend implements the deal, flip and settings backends in memory.
type fakeBackend struct {
	deals    map[int64]entity.Deal
	flips    map[int64]entity.Flip
	settings entity.Settings
	nextFlip int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		deals:    map[int64]entity.Deal{},
		flips:    map[int64]entity.Flip{},
		settings: entity.Settings{ProfitThreshold: 30, FeePercentage: 0.13, NotificationsEnabled: true},
		nextFlip: 1,
	}
}

func (f *fakeBackend) ListDeals(_ context.Context, query dealscout.ListDealsQuery) ([]entity.Deal, error) {
	out := make([]entity.Deal, 0, len(f.deals))
	for _, d := range f.deals {
		if query.Status != "" && d.Status != query.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeBackend) GetDeal(_ context.Context, id int64) (entity.Deal, error) {
	deal, ok := f.deals[id]
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	return deal, nil
}

func (f *fakeBackend) DismissDeal(_ context.Context, id int64) error {
	deal, ok := f.deals[id]
	if !ok {
		return domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	deal.Status = entity.DealStatusDismissed
	f.deals[id] = deal
	return nil
}

func (f *fakeBackend) UpdateCondition(_ context.Context, id int64, condition value.Condition) (entity.Deal, error) {
	deal, ok := f.deals[id]
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	deal.Condition = condition
	if condition.Known() {
		deal.Status = entity.DealStatusNew
	}
	f.deals[id] = deal
	return deal, nil
}

func (f *fakeBackend) OverrideMarketValue(_ context.Context, id int64, marketValue value.Money) (entity.Deal, error) {
	deal, ok := f.deals[id]
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}
	deal.MarketValue = &marketValue
	f.deals[id] = deal
	return deal, nil
}

func (f *fakeBackend) PurchaseDeal(_ context.Context, id int64, req dealscout.PurchaseRequest) (entity.Flip, error) {
	deal, ok := f.deals[id]
	if !ok {
		return entity.Flip{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}

	deal.Status = entity.DealStatusPurchased
	f.deals[id] = deal

	flip := entity.Flip{
		ID:       f.nextFlip,
		DealID:   &id,
		ItemName: deal.Title,
		BuyPrice: req.BuyPrice,
		BuyDate:  req.BuyDate,
		Status:   entity.FlipStatusActive,
	}
	f.flips[flip.ID] = flip
	f.nextFlip++

	return flip, nil
}

func (f *fakeBackend) ListFlips(_ context.Context, status entity.FlipStatus) ([]entity.Flip, error) {
	out := make([]entity.Flip, 0, len(f.flips))
	for _, flip := range f.flips {
		if status != "" && flip.Status != status {
			continue
		}
		out = append(out, flip)
	}
	return out, nil
}

func (f *fakeBackend) CreateFlip(_ context.Context, req dealscout.CreateFlipRequest) (entity.Flip, error) {
	flip := entity.Flip{
		ID:        f.nextFlip,
		ItemName:  req.ItemName,
		Category:  req.Category,
		BuyPrice:  req.BuyPrice,
		BuyDate:   req.BuyDate,
		BuySource: req.BuySource,
		Notes:     req.Notes,
		Status:    entity.FlipStatusActive,
	}
	f.flips[flip.ID] = flip
	f.nextFlip++
	return flip, nil
}

func (f *fakeBackend) UpdateFlip(_ context.Context, id int64, req dealscout.UpdateFlipRequest) (entity.Flip, error) {
	flip, ok := f.flips[id]
	if !ok {
		return entity.Flip{}, domain.NewError(errcodes.FlipNotFound, "flip not found")
	}
	if req.ItemName != nil {
		flip.ItemName = *req.ItemName
	}
	if req.BuyPrice != nil {
		flip.BuyPrice = *req.BuyPrice
	}
	if req.Notes != nil {
		flip.Notes = *req.Notes
	}
	f.flips[id] = flip
	return flip, nil
}

func (f *fakeBackend) SellFlip(_ context.Context, id int64, req dealscout.SellRequest) (entity.Flip, error) {
	flip, ok := f.flips[id]
	if !ok {
		return entity.Flip{}, domain.NewError(errcodes.FlipNotFound, "flip not found")
	}
	if flip.Status == entity.FlipStatusSold {
		return entity.Flip{}, domain.NewError(errcodes.FlipAlreadySold, "flip already sold")
	}

	flip.Status = entity.FlipStatusSold
	flip.SellPrice = &req.SellPrice
	flip.SellDate = &req.SellDate
	flip.SellPlatform = req.Platform
	flip.FeesPaid = req.FeesPaid
	flip.ShippingCost = req.ShippingCost
	flip.Profit = flip.CalculateProfit()

	f.flips[id] = flip
	return flip, nil
}

func (f *fakeBackend) DeleteFlip(_ context.Context, id int64) error {
	if _, ok := f.flips[id]; !ok {
		return domain.NewError(errcodes.FlipNotFound, "flip not found")
	}
	delete(f.flips, id)
	return nil
}

func (f *fakeBackend) GetSettings(context.Context) (entity.Settings, error) {
	return f.settings, nil
}

func (f *fakeBackend) PutSettings(_ context.Context, settings entity.Settings) (entity.Settings, error) {
	f.settings = settings
	return settings, nil
}

func (f *fakeBackend) Stats(context.Context) (entity.Stats, error) {
	return entity.Stats{TotalProfit: 120, ActiveFlips: 1, SoldFlips: 2, AverageProfit: 60}, nil
}

func (f *fakeBackend) EbayStatus(context.Context) (entity.EbayStatus, error) {
	return entity.EbayStatus{Linked: false}, nil
}

func (f *fakeBackend) RefreshEbay(context.Context) (entity.EbayStatus, error) {
	return entity.EbayStatus{Linked: false}, nil
}

func (f *fakeBackend) UnlinkEbay(context.Context) error { return nil }

func (f *fakeBackend) RegisterDeviceToken(context.Context, string, string) error { return nil }

type testEnv struct {
	backend *fakeBackend
	scanner *worker.DealScanner
	api     tests.APIClient
	close   func()
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	backend := newFakeBackend()
	engine := valuation.NewEngine(valuation.DefaultConfig())
	classifier := location.NewClassifier(location.Coordinate{Lat: 36.2667, Lng: -85.4167}, 100)

	scanner := worker.NewDealScanner(backend, engine, classifier, make(chan worker.Alert, 8)).
		WithThreshold(30)

	srv := server.NewServer(
		server.NewDealServer(backend, engine, classifier),
		server.NewFlipServer(backend),
		server.NewSettingsServer(backend, scanner),
		server.NewScannerServer(scanner, classifier),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return testEnv{
		backend: backend,
		scanner: scanner,
		api:     tests.NewAPIClient(ts.URL, nil),
		close:   ts.Close,
	}
}

func seedDeal(backend *fakeBackend, id int64, asking, market float64, pickup bool) {
	backend.deals[id] = entity.Deal{
		ID:                   id,
		Title:                "seeded deal",
		AskingPrice:          value.MoneyPtr(asking),
		MarketValue:          value.MoneyPtr(market),
		Condition:            value.ConditionUsed,
		Status:               entity.DealStatusNew,
		LocalPickupAvailable: &pickup,
		CreatedAt:            time.Now(),
	}
}

func TestGetDealsEnrichedWithCounts(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 1, 80, 200, true)
	seedDeal(env.backend, 2, 10, 50, false)

	var out rest.DealList
	resp, err := env.api.Get(context.Background(), "/v1/deals", nil, &out, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(out.Deals, 2)
	rq.Equal(2, out.Counts.All)
	rq.Equal(1, out.Counts.Pickup)
	rq.Equal(1, out.Counts.Shipping)

	for _, deal := range out.Deals {
		rq.NotNil(deal.BestProfit)
		rq.True(deal.PurchaseEligible)
		if deal.ID == 1 {
			// facebook: 200 - 80 = 120 beats ebay 200-80-26 = 94
			rq.Equal("facebook", deal.BestPlatform)
			rq.InDelta(120, *deal.BestProfit, 0.001)
			rq.Equal("high", deal.ProfitTier)
			rq.NotNil(deal.Score)
		}
	}
}

func TestGetDealsPickupFilter(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 1, 80, 200, true)
	seedDeal(env.backend, 2, 10, 50, false)

	var out rest.DealList
	_, err := env.api.Get(context.Background(), "/v1/deals?filter=pickup", nil, &out, nil)
	rq.NoError(err)

	rq.Len(out.Deals, 1)
	rq.Equal(int64(1), out.Deals[0].ID)
	// Counts still describe the whole feed.
	rq.Equal(2, out.Counts.All)
}

func TestGetDealsInvalidFilter(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var errOut rest.Error
	resp, err := env.api.Get(context.Background(), "/v1/deals?filter=nearby", nil, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(errcodes.InvalidLocationFilter.String(), errOut.Code)
}

func TestGetDealNotFound(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var errOut rest.Error
	resp, err := env.api.Get(context.Background(), "/v1/deals/99", nil, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(errcodes.DealNotFound.String(), errOut.Code)
}

func TestUnknownConditionDealHasNoValuation(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 5, 40, 100, true)
	deal := env.backend.deals[5]
	deal.Condition = value.ConditionUnknown
	deal.Status = entity.DealStatusNeedsCondition
	env.backend.deals[5] = deal

	var out rest.Deal
	_, err := env.api.Get(context.Background(), "/v1/deals/5", nil, &out, nil)
	rq.NoError(err)

	rq.Nil(out.BestProfit)
	rq.Empty(out.BestPlatform)
	rq.False(out.PurchaseEligible)

	// Reviewing the condition re-enables valuation.
	var updated rest.Deal
	resp, err := env.api.Put(context.Background(), "/v1/deals/5/condition", nil,
		rest.ConditionUpdate{Condition: "used"}, &updated, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.NotNil(updated.BestProfit)
	rq.True(updated.PurchaseEligible)
}

func TestPurchaseLifecycle(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 7, 45, 200, true)

	var flip rest.Flip
	resp, err := env.api.Post(context.Background(), "/v1/deals/7/purchase", nil,
		rest.PurchaseRequest{BuyPrice: 45, BuyDate: "2026-08-22"}, &flip, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("active", flip.Status)
	rq.Equal(int64(7), *flip.DealID)

	// Second purchase conflicts.
	var errOut rest.Error
	resp, err = env.api.Post(context.Background(), "/v1/deals/7/purchase", nil,
		rest.PurchaseRequest{BuyPrice: 45, BuyDate: "2026-08-22"}, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(errcodes.DealAlreadyBought.String(), errOut.Code)
}

func TestPurchaseIneligibleDeal(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 8, 45, 200, true)
	deal := env.backend.deals[8]
	deal.MarketValue = nil
	env.backend.deals[8] = deal

	var errOut rest.Error
	resp, err := env.api.Post(context.Background(), "/v1/deals/8/purchase", nil,
		rest.PurchaseRequest{BuyPrice: 45, BuyDate: "2026-08-22"}, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	rq.Equal(errcodes.NotPurchaseEligible.String(), errOut.Code)
}

func TestRepairQuote(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 9, 80, 200, true)
	deal := env.backend.deals[9]
	deal.Condition = value.ConditionNeedsRepair
	deal.RepairOptions = []entity.RepairOption{
		{ID: 1, Name: "new screen", PartCost: 20, LaborHours: 1},
	}
	env.backend.deals[9] = deal

	var quote rest.RepairQuote
	resp, err := env.api.Post(context.Background(), "/v1/deals/9/repair-quote", nil,
		rest.RepairQuoteRequest{SelectedOptions: []int64{1}}, &quote, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	// Best is facebook at 120; repairs cost 20 + 1h * $25.
	rq.InDelta(120, quote.BaseProfit, 0.001)
	rq.InDelta(75, quote.AdjustedProfit, 0.001)
	rq.Equal("facebook", quote.Platform)

	var errOut rest.Error
	resp, err = env.api.Post(context.Background(), "/v1/deals/9/repair-quote", nil,
		rest.RepairQuoteRequest{SelectedOptions: []int64{42}}, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(errcodes.UnknownRepairOption.String(), errOut.Code)
}

func TestFlipSellAndProfit(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var flip rest.Flip
	_, err := env.api.Post(context.Background(), "/v1/flips", nil, rest.FlipCreate{
		ItemName: "DeWalt drill",
		BuyPrice: 45,
		BuyDate:  "2026-08-20",
	}, &flip, nil)
	rq.NoError(err)
	rq.Nil(flip.Profit)

	var sold rest.Flip
	resp, err := env.api.Post(context.Background(), "/v1/flips/1/sell", nil, rest.FlipSell{
		SellPrice:    110,
		SellDate:     "2026-08-24",
		SellPlatform: "ebay",
		FeesPaid:     14.30,
		ShippingCost: 8.50,
	}, &sold, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("sold", sold.Status)
	rq.NotNil(sold.Profit)
	rq.InDelta(42.20, *sold.Profit, 0.001)

	// Selling twice conflicts.
	var errOut rest.Error
	resp, err = env.api.Post(context.Background(), "/v1/flips/1/sell", nil, rest.FlipSell{
		SellPrice: 120, SellDate: "2026-08-25", SellPlatform: "ebay",
	}, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(errcodes.FlipAlreadySold.String(), errOut.Code)
}

func TestFlipCreateValidation(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var errOut rest.Error
	resp, err := env.api.PostJSON(context.Background(), "/v1/flips", nil,
		`{"buy_price": 10, "buy_date": "2026-08-20"}`, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsRoundTripUpdatesScanner(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var settings rest.Settings
	_, err := env.api.Get(context.Background(), "/v1/settings", nil, &settings, nil)
	rq.NoError(err)
	rq.InDelta(30, settings.ProfitThreshold, 0.001)

	var updated rest.Settings
	resp, err := env.api.Put(context.Background(), "/v1/settings", nil, rest.Settings{
		ProfitThreshold:      55,
		FeePercentage:        0.13,
		NotificationsEnabled: false,
	}, &updated, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.InDelta(55, updated.ProfitThreshold, 0.001)
	rq.False(updated.NotificationsEnabled)
}

func TestScannerFilterEndpointResetsSession(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	seedDeal(env.backend, 1, 80, 200, true)
	env.scanner.PollOnce(context.Background())
	rq.True(env.scanner.Status().Primed)

	var status rest.ScannerStatus
	resp, err := env.api.Put(context.Background(), "/v1/scanner/filter", nil,
		rest.ScannerFilter{Filter: "pickup"}, &status, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("pickup", status.Filter)
	rq.False(status.Primed)
	rq.Zero(status.KnownDeals)

	var errOut rest.Error
	resp, err = env.api.Put(context.Background(), "/v1/scanner/filter", nil,
		rest.ScannerFilter{Filter: "nearby"}, nil, &errOut)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestLocationCheck(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	var out rest.DistanceCheck
	_, err := env.api.Get(context.Background(), "/v1/location/check?location=Cookeville%2C+TN", nil, &out, nil)
	rq.NoError(err)
	rq.NotNil(out.DistanceMiles)
	rq.True(out.Local)

	var far rest.DistanceCheck
	_, err = env.api.Get(context.Background(), "/v1/location/check?location=Houston%2C+TX", nil, &far, nil)
	rq.NoError(err)
	rq.NotNil(far.DistanceMiles)
	rq.False(far.Local)

	var unknown rest.DistanceCheck
	_, err = env.api.Get(context.Background(), "/v1/location/check?location=Narnia", nil, &unknown, nil)
	rq.NoError(err)
	rq.Nil(unknown.DistanceMiles)
	rq.False(unknown.Local)
}
