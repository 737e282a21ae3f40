package config

import "time"

type Backend struct {
	BaseURL        string        `env:"BACKEND_BASE_URL,notEmpty"`
	APIToken       string        `env:"BACKEND_API_TOKEN" json:"-"`
	RequestTimeout time.Duration `env:"BACKEND_REQUEST_TIMEOUT" envDefault:"15s"`
}
