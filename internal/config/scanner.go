package config

import "time"

type Scanner struct {
	PollInterval time.Duration `env:"SCANNER_POLL_INTERVAL" envDefault:"30s"`
	PollTimeout  time.Duration `env:"SCANNER_POLL_TIMEOUT" envDefault:"10s"`
	Filter       string        `env:"SCANNER_FILTER" envDefault:"all"`
	// Fallback alert floor when the backend settings are unavailable at boot.
	ProfitThreshold float64 `env:"SCANNER_PROFIT_THRESHOLD" envDefault:"30"`
	Autostart       bool    `env:"SCANNER_AUTOSTART" envDefault:"true"`
}
