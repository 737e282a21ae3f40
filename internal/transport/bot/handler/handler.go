package handler

import (
	"github.com/junipr-dev/dealscout/internal/domain/service/valuation"
	"github.com/junipr-dev/dealscout/internal/infrastructure/dealscout"
	"github.com/junipr-dev/dealscout/internal/worker"
)

type Handler struct {
	client  *dealscout.Client
	engine  *valuation.Engine
	scanner *worker.DealScanner
}

func New(client *dealscout.Client, engine *valuation.Engine, scanner *worker.DealScanner) *Handler {
	return &Handler{
		client:  client,
		engine:  engine,
		scanner: scanner,
	}
}
