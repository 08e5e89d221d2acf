package commands

import (
	"fmt"
	"time"

	"github.com/pochun/chipscan/internal/external/tpex"
	"github.com/pochun/chipscan/internal/external/twse"
	"github.com/pochun/chipscan/internal/report"
	"github.com/pochun/chipscan/internal/snapshot"
	"github.com/pochun/chipscan/internal/streak"
	"github.com/pochun/chipscan/pkg/cache"
	"github.com/pochun/chipscan/pkg/config"
	"github.com/pochun/chipscan/pkg/httputil"
	"github.com/pochun/chipscan/pkg/logger"
)

// deps is the assembled application wiring shared by every command.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	service *report.Service
}

// buildDeps loads configuration and wires the adapters, snapshot builder,
// streak scanner and report service.
// ⭐ SSOT: 應用程式組裝只在這個函式
func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	}

	log := logger.New(cfg)

	store, err := cache.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	httpClient := httputil.New(cfg, log)

	twseClient := twse.NewClient(httpClient, store, log, cfg.TWSE.BaseURL, cfg.TWSE.OpenAPIURL)
	tpexClient := tpex.NewClient(httpClient, store, log, cfg.TPEX.BaseURL, cfg.TPEX.OpenAPIURL)

	builder := snapshot.NewBuilder(twseClient, tpexClient, log)
	scanner := streak.NewScanner(twseClient, tpexClient, streak.Config{
		Window: cfg.Scan.Window,
		Budget: cfg.Scan.Budget,
		Delay:  cfg.Scan.Delay,
	}, log)

	service := report.NewService(builder, scanner, twseClient, tpexClient, cfg, log)

	return &deps{
		cfg:     cfg,
		log:     log,
		service: service,
	}, nil
}

// parseDateFlag resolves the shared --date flag, defaulting to today.
func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}
