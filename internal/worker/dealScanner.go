package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/dealscore"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/tracker"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
)

type DealFeed interface {
	ListDeals(ctx context.Context, query dealscout.ListDealsQuery) ([]entity.Deal, error)
}

// Alert is one notification-worthy deal: new this session, valued, and
// clearing the profit threshold.
type Alert struct {
	Deal      entity.Deal
	Valuation valuation.Valuation
	Score     entity.Score
	Local     bool
}

// Status is a point-in-time snapshot of the scanner for the control surfaces.
type Status struct {
	Running    bool
	Filter     location.Filter
	Primed     bool
	KnownDeals int
	LastPollAt time.Time
	LastError  string
}

// DealScanner polls the backend deal feed on an interval and pushes alerts
// for deals that appear for the first time in the current session. One poll
// in flight at a time; a filter change mid-poll invalidates the response.
type DealScanner struct {
	feed       DealFeed
	engine     *valuation.Engine
	classifier *location.Classifier
	session    *tracker.PollingSession
	alerts     chan<- Alert

	pollInterval time.Duration
	pollTimeout  time.Duration

	// Control fields
	mu         sync.Mutex
	filter     location.Filter
	threshold  value.Money
	notify     bool
	generation uint64
	lastPoll   time.Time
	lastErr    error
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewDealScanner(
	feed DealFeed,
	engine *valuation.Engine,
	classifier *location.Classifier,
	alerts chan<- Alert,
) *DealScanner {
	return &DealScanner{
		feed:         feed,
		engine:       engine,
		classifier:   classifier,
		session:      tracker.NewPollingSession(),
		alerts:       alerts,
		pollInterval: 30 * time.Second,
		pollTimeout:  10 * time.Second,
		filter:       location.FilterAll,
		notify:       true,
	}
}

func (w *DealScanner) WithPollInterval(interval time.Duration) *DealScanner {
	if interval > 0 {
		w.pollInterval = interval
	}
	return w
}

func (w *DealScanner) WithPollTimeout(timeout time.Duration) *DealScanner {
	if timeout > 0 {
		w.pollTimeout = timeout
	}
	return w
}

func (w *DealScanner) WithThreshold(threshold value.Money) *DealScanner {
	w.threshold = threshold
	return w
}

func (w *DealScanner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("scanner is already running")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(scanCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("scanner stopped", "error", err)
		}
	}()

	return nil
}

func (w *DealScanner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *DealScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// SetFilter switches the location filter. The polling session resets so the
// next poll primes silently, and any poll already in flight is discarded when
// it lands.
func (w *DealScanner) SetFilter(filter location.Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if filter == w.filter {
		return
	}

	w.filter = filter
	w.generation++
	w.session.Reset()
}

func (w *DealScanner) Filter() location.Filter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// SetThreshold updates the alert profit floor, usually after the backend
// settings change.
func (w *DealScanner) SetThreshold(threshold value.Money) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.threshold = threshold
}

// SetNotifications toggles alert emission without stopping the poll loop;
// the session keeps absorbing deals so re-enabling does not replay them.
func (w *DealScanner) SetNotifications(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notify = enabled
}

func (w *DealScanner) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := Status{
		Running:    w.isRunning,
		Filter:     w.filter,
		Primed:     w.session.Primed(),
		KnownDeals: w.session.Size(),
		LastPollAt: w.lastPoll,
	}
	if w.lastErr != nil {
		status.LastError = w.lastErr.Error()
	}

	return status
}

func (w *DealScanner) Run(ctx context.Context) error {
	logger(ctx).Info("deal scanner started",
		"poll_interval", w.pollInterval,
		"poll_timeout", w.pollTimeout,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Prime immediately instead of waiting a full interval.
	w.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("deal scanner stopped")
			return ctx.Err()
		case <-ticker.C:
			w.PollOnce(ctx)
		}
	}
}

// PollOnce performs a single fetch-observe-alert cycle.
func (w *DealScanner) PollOnce(ctx context.Context) {
	w.mu.Lock()
	gen := w.generation
	filter := w.filter
	w.mu.Unlock()

	pollCtx, cancel := context.WithTimeout(ctx, w.pollTimeout)
	defer cancel()

	deals, err := w.feed.ListDeals(pollCtx, dealscout.ListDealsQuery{Status: entity.DealStatusNew})

	pollsTotal.Inc()

	if err != nil {
		pollErrorsTotal.Inc()
		logger(ctx).Error("poll failed", "error", err)

		w.mu.Lock()
		w.lastErr = err
		w.mu.Unlock()

		return
	}

	alerts := w.observe(deals, gen, filter)

	for _, alert := range alerts {
		select {
		case w.alerts <- alert:
			alertsTotal.Inc()
		case <-ctx.Done():
			return
		}
	}

	if len(alerts) > 0 {
		logger(ctx).Info("poll cycle completed", "alerts", len(alerts))
	}
}

// observe folds a poll response into the session under the lock and returns
// the alerts to emit. A response from before the last filter change is
// dropped whole: its deal set belongs to a session that no longer exists.
func (w *DealScanner) observe(deals []entity.Deal, gen uint64, filter location.Filter) []Alert {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		stalePollsTotal.Inc()
		return nil
	}

	w.lastPoll = time.Now()
	w.lastErr = nil

	visible := w.classifier.FilterDeals(deals, filter)
	fresh := w.session.Observe(visible)
	newDealsTotal.Add(float64(len(fresh)))

	if !w.notify {
		return nil
	}

	alerts := make([]Alert, 0, len(fresh))
	for _, deal := range fresh {
		alert, ok := w.evaluate(deal)
		if !ok {
			continue
		}
		alerts = append(alerts, alert)
	}

	return alerts
}

func (w *DealScanner) evaluate(deal entity.Deal) (Alert, bool) {
	val, err := w.engine.Valuate(deal)
	if err != nil {
		// Unpriced or unknown-condition deals are tracked but never alerted.
		return Alert{}, false
	}

	if val.BestProfit < w.threshold {
		return Alert{}, false
	}

	local := w.classifier.IsLocal(deal)

	return Alert{
		Deal:      deal,
		Valuation: val,
		Score:     dealscore.Calculate(deal, val.BestProfit, local),
		Local:     local,
	}, true
}
