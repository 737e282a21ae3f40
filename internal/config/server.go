package config

import "time"

type Server struct {
	ListenAddress   string        `env:"SERVER_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeAddress    string        `env:"SERVER_PROBE_ADDRESS" envDefault:":8091"`
	MetricsAddress  string        `env:"SERVER_METRICS_ADDRESS" envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen  int           `env:"SERVER_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
