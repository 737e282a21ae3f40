package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Backend   Backend
	Server    Server
	Scanner   Scanner
	Valuation Valuation
	Location  Location
	Bot       Bot
}

type Bot struct {
	Token   string `env:"BOT_TOKEN"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

// Enabled reports whether the Telegram surfaces should start at all.
func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
