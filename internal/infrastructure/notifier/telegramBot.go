// Package notifier delivers deal alerts to a Telegram chat.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/junipr-dev/dealscout/internal/worker"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run drains the alert channel until the context ends or the channel closes.
// A failed send is logged and dropped; the next poll cycle will not repeat
// the deal, so there is no retry.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan worker.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}
			if err := b.SendAlert(ctx, alert); err != nil {
				logger(ctx).Error("failed to send alert", "deal_id", alert.Deal.ID, "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendAlert(ctx context.Context, alert worker.Alert) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		formatAlert(alert),
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain status message.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}

func formatAlert(alert worker.Alert) string {
	deal := alert.Deal
	val := alert.Valuation

	logistics := "📦 Shipping required"
	if alert.Local {
		logistics = "🚗 Local pickup"
	}

	var sb strings.Builder

	header := "💰 <b>DEAL FOUND!</b>"
	if alert.Score.Strong {
		header = "🔥 <b>HOT DEAL!</b>"
	}

	sb.WriteString(header + "\n\n")
	sb.WriteString(fmt.Sprintf("🏷 <b>%s</b>\n", deal.Title))
	sb.WriteString(fmt.Sprintf("💵 <b>Asking:</b> %s\n", deal.AskingPrice.Format()))
	sb.WriteString(fmt.Sprintf("📊 <b>Worth:</b> %s\n", deal.MarketValue.Format()))
	sb.WriteString(fmt.Sprintf("📈 <b>Profit:</b> %s on %s (%s tier)\n",
		val.BestProfit.Round().Format(), val.Best, val.Tier))
	sb.WriteString(fmt.Sprintf("⭐ <b>Score:</b> %d/100 (%s)\n", alert.Score.Value, alert.Score.Description))
	sb.WriteString(logistics + "\n")

	if deal.Location != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", deal.Location))
	}

	if deal.ListingURL != "" {
		sb.WriteString(fmt.Sprintf("\n🔗 <a href=\"%s\">View Listing</a>", deal.ListingURL))
	}

	return sb.String()
}
