package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/heroes/internal/adapters/superheroes"
	"github.com/okian/heroes/internal/seed"
	"github.com/okian/heroes/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount      = 20
	defaultWorkers    = 4
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", superheroes.DefaultBaseURL, "Superheroes collection endpoint")
		count   = flag.Int("count", defaultCount, "Number of heroes to create")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent create calls")
		timeout = flag.Duration("timeout", defaultTimeout, "Per-request timeout")
		verbose = flag.Bool("verbose", false, "Log every created hero")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL: *baseURL,
		Count:   *count,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if _, err := seed.Run(ctx, cfg, seed.NewClient(cfg)); err != nil {
		logger.Get().Error(ctx, "seed failed", logger.Error(err))
		stop()
		cancel()
		os.Exit(1)
	}
}
