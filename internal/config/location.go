package config

type Location struct {
	HomeLat     float64 `env:"LOCATION_HOME_LAT" envDefault:"36.2667"`
	HomeLng     float64 `env:"LOCATION_HOME_LNG" envDefault:"-85.4167"`
	RadiusMiles float64 `env:"LOCATION_RADIUS_MILES" envDefault:"100"`
}
