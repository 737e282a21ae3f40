package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/junipr-dev/dealscout/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnDeals, th.CommandEqual("deals"))
	adminGroup.HandleMessage(h.OnFilter, th.CommandEqual("filter"))
	adminGroup.HandleMessage(h.OnThreshold, th.CommandEqual("threshold"))
	adminGroup.HandleMessage(h.OnNotify, th.CommandEqual("notify"))
	adminGroup.HandleMessage(h.OnStartScan, th.CommandEqual("startscan"))
	adminGroup.HandleMessage(h.OnStopScan, th.CommandEqual("stopscan"))
}
