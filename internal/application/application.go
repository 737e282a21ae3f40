// Package application wires the agent together: backend client, valuation
// engine, scanner, Telegram surfaces and the local HTTP API.
package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/junipr-dev/dealscout/internal/config"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/internal/infrastructure/notifier"
	"github.com/junipr-dev/dealscout/internal/server"
	"github.com/junipr-dev/dealscout/internal/transport/bot"
	"github.com/junipr-dev/dealscout/internal/worker"
	"github.com/junipr-dev/dealscout/pkg/application/modules"
	"github.com/junipr-dev/dealscout/pkg/contextx"
	"github.com/junipr-dev/dealscout/pkg/httpx"
	"github.com/junipr-dev/dealscout/pkg/logx"
	"github.com/junipr-dev/dealscout/pkg/middlewarex"
)

const (
	appName       = "dealscout-agent"
	appVersion    = "0.1.0"
	alertsBacklog = 100
)

func Run(ctx context.Context) error {
	log := contextx.LoggerFromContextOrDefault(ctx)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	masker := logx.NewSensitiveDataMasker()

	client := newBackendClient(cfg, masker)

	engine := newEngine(cfg.Valuation)
	classifier := location.NewClassifier(
		location.Coordinate{Lat: cfg.Location.HomeLat, Lng: cfg.Location.HomeLng},
		cfg.Location.RadiusMiles,
	)

	threshold := value.Money(cfg.Scanner.ProfitThreshold)
	notify := true

	// The backend owns settings; local config is only the fallback when it is
	// unreachable at boot.
	if settings, err := client.GetSettings(ctx); err != nil {
		log.Warn("backend settings unavailable, using configured defaults", logx.Error(err))
	} else {
		threshold = settings.ProfitThreshold
		notify = settings.NotificationsEnabled
	}

	if status, err := client.EbayStatus(ctx); err == nil && status.Linked && status.FeeRate != nil {
		engine.WithEbayFeeRate(*status.FeeRate)
		log.Info("using linked eBay store fee rate", "rate", *status.FeeRate)
	}

	filter, err := location.ParseFilter(cfg.Scanner.Filter)
	if err != nil {
		return fmt.Errorf("location.ParseFilter: %w", err)
	}

	alerts := make(chan worker.Alert, alertsBacklog)

	scanner := worker.NewDealScanner(client, engine, classifier, alerts).
		WithPollInterval(cfg.Scanner.PollInterval).
		WithPollTimeout(cfg.Scanner.PollTimeout).
		WithThreshold(threshold)
	scanner.SetFilter(filter)
	scanner.SetNotifications(notify)

	runTelegram(ctx, g, cfg, client, engine, scanner, alerts)

	if cfg.Scanner.Autostart {
		if err := scanner.Start(ctx); err != nil {
			return fmt.Errorf("scanner.Start: %w", err)
		}
	}

	apiServer := server.NewServer(
		server.NewDealServer(client, engine, classifier),
		server.NewFlipServer(client),
		server.NewSettingsServer(client, scanner),
		server.NewScannerServer(scanner, classifier),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
	)
	apiServer.RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:    cfg.Server.ListenAddress,
		Handler: router,
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.Server.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Server.MetricsAddress}.Run(ctx, g)

	g.Go(func() error {
		<-ctx.Done()
		scanner.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newBackendClient(cfg config.Config, masker logx.SensitiveDataMasker) *dealscout.Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(masker),
		httpx.WithLogFieldMaxLen(cfg.Server.LogFieldMaxLen),
	)

	if cfg.Backend.APIToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, staticToken(cfg.Backend.APIToken))
	}

	return dealscout.NewClient(cfg.Backend.BaseURL, &http.Client{
		Transport: transport,
		Timeout:   cfg.Backend.RequestTimeout,
	})
}

func newEngine(cfg config.Valuation) *valuation.Engine {
	valCfg := valuation.DefaultConfig()
	valCfg.Fees[value.PlatformEbay] = valuation.FeeProfile{Rate: cfg.EbayFeeRate}
	valCfg.Fees[value.PlatformMercari] = valuation.FeeProfile{Rate: cfg.MercariFeeRate}
	valCfg.LaborRatePerHour = value.Money(cfg.LaborRatePerHour)
	valCfg.TierHigh = value.Money(cfg.TierHigh)
	valCfg.TierMedium = value.Money(cfg.TierMedium)

	return valuation.NewEngine(valCfg)
}

// runTelegram starts the alert bot and the control bot when configured.
// Without a bot the alert channel still has to drain or the scanner would
// stall on its first profitable deal.
func runTelegram(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	client *dealscout.Client,
	engine *valuation.Engine,
	scanner *worker.DealScanner,
	alerts chan worker.Alert,
) {
	log := contextx.LoggerFromContextOrDefault(ctx)

	if !cfg.Bot.Enabled() {
		log.Info("telegram disabled, alerts will only be logged")
		g.Go(func() error { return logAlerts(ctx, alerts) })
		return
	}

	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		// The scanner blocks on a full alert channel, so something has to
		// keep draining it even when the bot cannot start.
		log.Error("notifier bot unavailable, alerts will only be logged", logx.Error(err))
		g.Go(func() error { return logAlerts(ctx, alerts) })
		return
	}

	g.Go(func() error {
		if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
			log.Error("notifier bot stopped", logx.Error(err))
		}
		return nil
	})

	if cfg.Bot.AdminID == 0 {
		return
	}

	controlBot, err := bot.New(cfg.Bot, client, engine, scanner)
	if err != nil {
		log.Error("control bot unavailable", logx.Error(err))
		return
	}

	g.Go(func() error {
		if err := controlBot.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("control bot stopped", logx.Error(err))
		}
		return nil
	})
}

// logAlerts is the no-bot alert consumer: it drains the channel into the log
// until the context ends.
func logAlerts(ctx context.Context, alerts <-chan worker.Alert) error {
	log := contextx.LoggerFromContextOrDefault(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case alert := <-alerts:
			log.Info("deal alert",
				"deal_id", alert.Deal.ID,
				"title", alert.Deal.Title,
				"profit", alert.Valuation.BestProfit.Round().Format(),
				"platform", string(alert.Valuation.Best),
			)
		}
	}
}

// staticToken satisfies the bearer authenticator with a fixed API token.
type staticToken string

func (t staticToken) Authenticate(context.Context) error { return nil }
func (t staticToken) BearerToken() string                { return string(t) }
