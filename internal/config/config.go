// Package config defines the front-end configuration and its loader.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the superheroes collection endpoint.
	APIBaseURL string `koanf:"api_base_url"`

	// APITimeoutMS bounds each API round trip. Zero keeps the HTTP client default (no timeout).
	APITimeoutMS int `koanf:"api_timeout_ms"`

	// MaxViews caps how many mounted views are kept in memory.
	MaxViews int `koanf:"max_views"`

	// GuardSubmit ignores a submit while a create call for the same view is in flight.
	GuardSubmit bool `koanf:"guard_submit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8080",
		APIBaseURL:   "http://localhost:3000/superheroes",
		APITimeoutMS: 0,
		MaxViews:     10_000,
		GuardSubmit:  false,
	}
}
