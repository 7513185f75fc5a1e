package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/heroes/internal/adapters/superheroes"
	"github.com/okian/heroes/internal/domain/hero"
	"github.com/okian/heroes/pkg/logger"
)

const percentageMultiplier = 100

// API is the part of the superheroes client the seeder drives.
type API interface {
	List(ctx context.Context) ([]hero.Hero, error)
	Create(ctx context.Context, d hero.Draft) (hero.Hero, error)
}

// NewClient builds the superheroes client for cfg.
func NewClient(cfg *Config) *superheroes.Client {
	return superheroes.New(
		superheroes.WithBaseURL(cfg.BaseURL),
		superheroes.WithTimeout(cfg.Timeout),
		superheroes.WithLogger(logger.Get().Named("superheroes")),
	)
}

// Run generates cfg.Count heroes, creates them through api with cfg.Workers
// concurrent calls, then lists the collection and checks every created id.
func Run(ctx context.Context, cfg *Config, api API) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Get().Named("seed")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("count", cfg.Count),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	drafts := Generate(cfg.Count)
	stats.Generated = len(drafts)

	created, failed := createAll(ctx, cfg, api, drafts, log)
	stats.Created = len(created)
	stats.Failed = failed

	listed, err := api.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list heroes: %w", err)
	}
	stats.Listed = len(listed)
	stats.Missing = missing(created, listed)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logStats(ctx, log, stats)

	var errs []error
	if stats.Failed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrCreateFailed, stats.Failed, stats.Generated))
	}
	if len(stats.Missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrMissing, len(stats.Missing)))
	}
	return stats, errors.Join(errs...)
}

type createResult struct {
	index int
	hero  hero.Hero
	err   error
}

// createAll fans drafts out to a fixed set of workers. Results are returned
// in draft order; failures are logged and counted.
func createAll(ctx context.Context, cfg *Config, api API, drafts []hero.Draft, log logger.Logger) ([]hero.Hero, int) {
	jobs := make(chan int)
	results := make(chan createResult, len(drafts))

	workers := min(cfg.Workers, len(drafts))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		wlog := log.Named("worker-" + strconv.Itoa(w))
		go func() {
			defer wg.Done()
			for i := range jobs {
				h, err := api.Create(ctx, drafts[i])
				if err != nil {
					wlog.Warn(ctx, "create failed",
						logger.String("name", drafts[i].Name),
						logger.String("reason", superheroes.UserMessage(err)),
						logger.Error(err))
				} else if cfg.Verbose {
					wlog.Info(ctx, "hero created", logger.String("id", string(h.ID)), logger.String("name", h.Name))
				}
				results <- createResult{index: i, hero: h, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range drafts {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()
	close(results)

	ordered := make([]*hero.Hero, len(drafts))
	failed := len(drafts)
	for r := range results {
		if r.err == nil {
			h := r.hero
			ordered[r.index] = &h
			failed--
		}
	}

	created := make([]hero.Hero, 0, len(drafts)-failed)
	for _, h := range ordered {
		if h != nil {
			created = append(created, *h)
		}
	}
	return created, failed
}

func logStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.Generated > 0 {
		successRate = float64(stats.Created) / float64(stats.Generated) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Created) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("created", stats.Created),
		logger.Int("failed", stats.Failed),
		logger.Int("listed", stats.Listed),
		logger.Int("missing", len(stats.Missing)),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("createsPerSecond", perSecond))
}
