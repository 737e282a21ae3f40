package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
	"github.com/junipr-dev/dealscout/internal/domain/value"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/internal/transport/bot/view"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	status := h.scanner.Status()

	scannerState := "🔴 stopped"
	if status.Running {
		scannerState = "🟢 running"
	}

	lastPoll := "never"
	if !status.LastPollAt.IsZero() {
		lastPoll = status.LastPollAt.Format("15:04:05")
	}

	text := fmt.Sprintf(`📊 <b>Scanner status</b>

🔍 <b>Scanner:</b> %s
🗺 <b>Filter:</b> %s
📦 <b>Tracked deals:</b> %d
🕐 <b>Last poll:</b> %s
`,
		scannerState,
		status.Filter,
		status.KnownDeals,
		lastPoll,
	)

	if status.LastError != "" {
		text += fmt.Sprintf("⚠️ <b>Last error:</b> %s\n", status.LastError)
	}

	return h.sendHTML(ctx, msg.Chat.ID, text)
}

// OnDeals lists the current profitable deal feed, best platform first.
func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	deals, err := h.client.ListDeals(ctx, dealscout.ListDealsQuery{Status: entity.DealStatusNew})
	if err != nil {
		return h.send(ctx, msg.Chat.ID, view.DealsError)
	}

	var sb strings.Builder
	count := 0

	for _, deal := range deals {
		val, err := h.engine.Valuate(deal)
		if err != nil {
			continue
		}

		count++
		sb.WriteString(fmt.Sprintf("%d. <b>%s</b>: %s on %s (ask %s)\n",
			count,
			deal.Title,
			val.BestProfit.Round().Format(),
			val.Best,
			deal.AskingPrice.Format(),
		))

		if count == 10 {
			break
		}
	}

	if count == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.DealsEmpty)
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("💰 <b>Deals (%d shown)</b>\n\n%s", count, sb.String()))
}

func (h *Handler) OnFilter(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return h.sendHTML(ctx, msg.Chat.ID, view.FilterMissingArgument)
	}

	filter, err := location.ParseFilter(parts[1])
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.FilterInvalid)
	}

	h.scanner.SetFilter(filter)

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.FilterChanged, filter))
}

func (h *Handler) OnThreshold(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return h.sendHTML(ctx, msg.Chat.ID, view.ThresholdMissingArgument)
	}

	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || amount < 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.ThresholdInvalidFormat)
	}

	threshold := value.Money(amount)
	h.scanner.SetThreshold(threshold)

	// Keep the backend copy in sync so other clients see the same floor.
	settings, err := h.client.GetSettings(ctx)
	if err == nil {
		settings.ProfitThreshold = threshold
		if _, err := h.client.PutSettings(ctx, settings); err != nil {
			logger(ctx).Warn("failed to persist threshold", "error", err)
		}
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.ThresholdChanged, threshold.Format()))
}

func (h *Handler) OnNotify(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return h.sendHTML(ctx, msg.Chat.ID, view.NotifyMissingArgument)
	}

	switch strings.ToLower(parts[1]) {
	case "on":
		h.scanner.SetNotifications(true)
		return h.send(ctx, msg.Chat.ID, view.NotifyEnabled)
	case "off":
		h.scanner.SetNotifications(false)
		return h.send(ctx, msg.Chat.ID, view.NotifyDisabled)
	default:
		return h.sendHTML(ctx, msg.Chat.ID, view.NotifyMissingArgument)
	}
}

func (h *Handler) OnStartScan(ctx *th.Context, msg telego.Message) error {
	if h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerAlreadyRunning)
	}

	if err := h.scanner.Start(context.WithoutCancel(ctx)); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf("Failed to start scanner: %v", err))
	}

	return h.send(ctx, msg.Chat.ID, view.ScannerStarted)
}

func (h *Handler) OnStopScan(ctx *th.Context, msg telego.Message) error {
	if !h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerNotRunning)
	}

	h.scanner.Stop()

	return h.send(ctx, msg.Chat.ID, view.ScannerStopped)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
