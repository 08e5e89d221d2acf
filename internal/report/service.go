package report

import (
	"context"
	"errors"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/snapshot"
	"github.com/pochun/chipscan/internal/streak"
	"github.com/pochun/chipscan/internal/universe"
	"github.com/pochun/chipscan/pkg/config"
	"github.com/pochun/chipscan/pkg/logger"
)

// RegistrySource is the slice of the market adapter the service needs for
// reference data.
type RegistrySource interface {
	FetchRegistry(ctx context.Context) ([]contracts.RegistryRow, contracts.FetchStatus)
}

// Service orchestrates report generation.
// ⭐ SSOT: 報表產生流程只在這裡編排
type Service struct {
	builder   *snapshot.Builder
	scanner   *streak.Scanner
	primary   RegistrySource
	secondary RegistrySource
	config    *config.Config
	logger    *logger.Logger
}

// NewService wires a report service over the snapshot builder, streak
// scanner and the two exchange registries.
func NewService(
	builder *snapshot.Builder,
	scanner *streak.Scanner,
	primary, secondary RegistrySource,
	cfg *config.Config,
	log *logger.Logger,
) *Service {
	return &Service{
		builder:   builder,
		scanner:   scanner,
		primary:   primary,
		secondary: secondary,
		config:    cfg,
		logger:    log,
	}
}

// registries fetches both exchange registries, primary market first so
// first-seen precedence matches the snapshot merge.
func (s *Service) registries(ctx context.Context) [][]contracts.RegistryRow {
	primaryRows, primaryStatus := s.primary.FetchRegistry(ctx)
	secondaryRows, secondaryStatus := s.secondary.FetchRegistry(ctx)
	if primaryStatus != contracts.FetchOK {
		s.logger.WithField("status", primaryStatus.String()).Warn("Primary registry unavailable")
	}
	if secondaryStatus != contracts.FetchOK {
		s.logger.WithField("status", secondaryStatus.String()).Warn("Secondary registry unavailable")
	}
	return [][]contracts.RegistryRow{primaryRows, secondaryRows}
}

// buildSnapshot fetches registries and builds the unified snapshot for date.
func (s *Service) buildSnapshot(ctx context.Context, date time.Time) (*contracts.MarketSnapshot, [][]contracts.RegistryRow, error) {
	registries := s.registries(ctx)
	industry := universe.IndustryByCode(registries...)
	snap, err := s.builder.Build(ctx, date, industry)
	if err != nil {
		return nil, registries, err
	}
	return snap, registries, nil
}

// Momentum produces the top gainer/loser leaderboards for date.
func (s *Service) Momentum(ctx context.Context, date time.Time) (*MomentumReport, error) {
	snap, _, err := s.buildSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return BuildMomentum(snap, s.config.Report.TopN, s.config.Report.MinVolumeLots), nil
}

// Flow produces the institutional net buy/sell leaderboards for date.
func (s *Service) Flow(ctx context.Context, date time.Time) (*FlowReport, error) {
	snap, _, err := s.buildSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return BuildFlow(snap, s.config.Report.TopN), nil
}

// Streak produces the consecutive buy/sell leaderboards ending at date.
// The reference day's snapshot only enriches rows with price context, so
// a holiday reference date degrades gracefully instead of failing: the
// streaks still compute from the collected history.
func (s *Service) Streak(ctx context.Context, date time.Time) (*StreakReport, error) {
	snap, registries, err := s.buildSnapshot(ctx, date)
	if err != nil && !errors.Is(err, contracts.ErrNoMarketData) {
		return nil, err
	}

	history, err := s.scanner.Scan(ctx, date)
	if err != nil {
		return nil, err
	}
	if history.Collected() == 0 {
		return nil, contracts.ErrNoMarketData
	}

	stocks := universe.BuildStockList(registries...)
	return BuildStreak(history, snap, stocks, s.config.Report.TopN), nil
}

// Portfolio resolves the holdings named in input against date's snapshot.
func (s *Service) Portfolio(ctx context.Context, date time.Time, input string) ([]contracts.SecurityRow, error) {
	snap, _, err := s.buildSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return PortfolioQuotes(snap, input), nil
}
