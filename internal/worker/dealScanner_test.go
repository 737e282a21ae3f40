package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/internal/worker"
)

type feedFunc func(ctx context.Context, query dealscout.ListDealsQuery) ([]entity.Deal, error)

func (f feedFunc) ListDeals(ctx context.Context, query dealscout.ListDealsQuery) ([]entity.Deal, error) {
	return f(ctx, query)
}

func newTestScanner(feed worker.DealFeed, alerts chan worker.Alert) *worker.DealScanner {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	classifier := location.NewClassifier(location.Coordinate{Lat: 36.2667, Lng: -85.4167}, 100)

	return worker.NewDealScanner(feed, engine, classifier, alerts).
		WithThreshold(30).
		WithPollTimeout(time.Second)
}

func pricedDeal(id int64, asking, market float64) entity.Deal {
	pickup := true
	return entity.Deal{
		ID:                   id,
		Title:                "deal",
		AskingPrice:          value.MoneyPtr(asking),
		MarketValue:          value.MoneyPtr(market),
		Condition:            value.ConditionUsed,
		Status:               entity.DealStatusNew,
		LocalPickupAvailable: &pickup,
	}
}

func TestFirstPollPrimesSilently(t *testing.T) {
	rq := require.New(t)

	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return []entity.Deal{pricedDeal(1, 50, 200), pricedDeal(2, 10, 400)}, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())

	rq.Empty(alerts)
	rq.True(s.Status().Primed)
	rq.Equal(2, s.Status().KnownDeals)
}

func TestNewProfitableDealAlertsOnce(t *testing.T) {
	rq := require.New(t)

	deals := []entity.Deal{pricedDeal(1, 50, 200)}
	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return deals, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())

	// 45 asking, 200 market: ebay profit 200-45-26 = 129, facebook 155.
	deals = append(deals, pricedDeal(2, 45, 200))
	s.PollOnce(context.Background())

	rq.Len(alerts, 1)
	alert := <-alerts
	rq.Equal(int64(2), alert.Deal.ID)
	rq.Equal(value.PlatformFacebook, alert.Valuation.Best)
	rq.Equal(value.Money(155), alert.Valuation.BestProfit)
	rq.True(alert.Local)
	rq.True(alert.Score.Strong)

	// Same feed again: nothing new.
	s.PollOnce(context.Background())
	rq.Empty(alerts)
}

func TestThresholdGatesAlerts(t *testing.T) {
	rq := require.New(t)

	deals := []entity.Deal{}
	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return deals, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())

	// ebay: 100 - 80 - 13 = 7, facebook: 20. Best is 20, below the 30 floor.
	deals = append(deals, pricedDeal(10, 80, 100))
	s.PollOnce(context.Background())
	rq.Empty(alerts)

	s.SetThreshold(10)
	deals = append(deals, pricedDeal(11, 80, 100))
	s.PollOnce(context.Background())
	rq.Len(alerts, 1)
}

func TestUnvaluedDealsNeverAlert(t *testing.T) {
	rq := require.New(t)

	unpriced := entity.Deal{ID: 3, Condition: value.ConditionUsed, AskingPrice: value.MoneyPtr(5), Status: entity.DealStatusNew}
	unknown := pricedDeal(4, 5, 500)
	unknown.Condition = value.ConditionUnknown

	deals := []entity.Deal{}
	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return deals, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())

	deals = append(deals, unpriced, unknown)
	s.PollOnce(context.Background())

	rq.Empty(alerts)
	// Still absorbed into the session.
	rq.Equal(2, s.Status().KnownDeals)
}

func TestFailedPollKeepsSession(t *testing.T) {
	rq := require.New(t)

	deals := []entity.Deal{pricedDeal(1, 50, 200)}
	var fail bool
	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return deals, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())
	rq.True(s.Status().Primed)
	rq.Equal(1, s.Status().KnownDeals)

	fail = true
	s.PollOnce(context.Background())

	// A failed poll neither clears the session nor emits anything.
	rq.Empty(alerts)
	rq.True(s.Status().Primed)
	rq.Equal(1, s.Status().KnownDeals)
	rq.Equal("backend down", s.Status().LastError)

	// The next successful poll diffs against the preserved set: only the
	// deal added meanwhile is new.
	fail = false
	deals = append(deals, pricedDeal(2, 45, 200))
	s.PollOnce(context.Background())

	rq.Len(alerts, 1)
	rq.Equal(int64(2), (<-alerts).Deal.ID)
	rq.Empty(s.Status().LastError)
}

func TestFilterChangeDiscardsInFlightPoll(t *testing.T) {
	rq := require.New(t)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	feed := feedFunc(func(ctx context.Context, _ dealscout.ListDealsQuery) ([]entity.Deal, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return []entity.Deal{pricedDeal(1, 50, 200)}, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.PollOnce(context.Background())
	}()

	// Filter changes while the response is still in flight.
	<-started
	s.SetFilter(location.FilterShipping)
	close(release)
	<-done

	// The stale response must not prime the new session or alert.
	rq.Empty(alerts)
	rq.False(s.Status().Primed)
	rq.Zero(s.Status().KnownDeals)

	// The next poll belongs to the new generation and primes normally.
	s.PollOnce(context.Background())
	rq.True(s.Status().Primed)
}

func TestSetFilterSameValueKeepsSession(t *testing.T) {
	rq := require.New(t)

	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return []entity.Deal{pricedDeal(1, 50, 200)}, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)

	s.PollOnce(context.Background())
	rq.Equal(1, s.Status().KnownDeals)

	s.SetFilter(location.FilterAll)
	rq.Equal(1, s.Status().KnownDeals)
	rq.True(s.Status().Primed)
}

func TestNotificationsToggle(t *testing.T) {
	rq := require.New(t)

	deals := []entity.Deal{}
	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return deals, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts)
	s.SetNotifications(false)

	s.PollOnce(context.Background())

	deals = append(deals, pricedDeal(2, 45, 200))
	s.PollOnce(context.Background())
	rq.Empty(alerts)

	// Re-enabling does not replay deals absorbed while muted.
	s.SetNotifications(true)
	s.PollOnce(context.Background())
	rq.Empty(alerts)

	deals = append(deals, pricedDeal(3, 45, 200))
	s.PollOnce(context.Background())
	rq.Len(alerts, 1)
}

func TestStartStop(t *testing.T) {
	rq := require.New(t)

	feed := feedFunc(func(context.Context, dealscout.ListDealsQuery) ([]entity.Deal, error) {
		return nil, nil
	})

	alerts := make(chan worker.Alert, 8)
	s := newTestScanner(feed, alerts).WithPollInterval(10 * time.Millisecond)

	rq.NoError(s.Start(context.Background()))
	rq.True(s.IsRunning())
	rq.Error(s.Start(context.Background()))

	s.Stop()
	rq.False(s.IsRunning())
}
