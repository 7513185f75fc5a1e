// Package seed fills a superheroes API with generated records and checks
// that every created record is listed back.
package seed

import (
	"errors"
	"time"

	"github.com/okian/heroes/internal/domain/hero"
)

// Error constants.
var (
	ErrInvalidConfig = errors.New("invalid seed config")
	ErrCreateFailed  = errors.New("some heroes were not created")
	ErrMissing       = errors.New("created heroes missing from list")
)

// Config holds configuration for a seed run.
type Config struct {
	BaseURL string        // Superheroes collection endpoint
	Count   int           // Number of heroes to create
	Workers int           // Number of concurrent create calls
	Timeout time.Duration // Per-request timeout
	Verbose bool          // Log every created hero
}

// Validate reports whether the config can drive a run.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("base url is empty"))
	case c.Count < 1:
		return errors.Join(ErrInvalidConfig, errors.New("count must be positive"))
	case c.Workers < 1:
		return errors.Join(ErrInvalidConfig, errors.New("workers must be positive"))
	}
	return nil
}

// Stats holds run statistics.
type Stats struct {
	Generated int
	Created   int
	Failed    int
	Listed    int
	Missing   []hero.ID
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
