// Package streak walks backward through the trading calendar collecting
// institutional flow history and computes consecutive buy/sell run lengths
// per security and investor class.
package streak

import (
	"context"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/logger"
)

// ChipSource is the slice of the market adapter the scanner needs: the
// institutional-flow feed only.
type ChipSource interface {
	FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus)
}

// Config holds the scan window parameters.
type Config struct {
	// Window is the target number of collected trading days.
	Window int
	// Budget is the maximum number of calendar days walked backward,
	// generous enough to straddle multi-day exchange holidays.
	Budget int
	// Delay paces the day-by-day fetches as a courtesy to upstream.
	Delay time.Duration
}

// DefaultConfig returns the standard scan parameters: a 25-trading-day
// window inside a 60-calendar-day budget, 200ms between days.
func DefaultConfig() Config {
	return Config{
		Window: 25,
		Budget: 60,
		Delay:  200 * time.Millisecond,
	}
}

// Scanner collects per-security flow history over a rolling window.
// ⭐ SSOT: 籌碼歷史回推只在這裡執行
type Scanner struct {
	primary   ChipSource
	secondary ChipSource
	limiter   *rate.Limiter
	config    Config
	logger    *logger.Logger
}

// NewScanner creates a scanner over the two market flow sources.
func NewScanner(primary, secondary ChipSource, config Config, log *logger.Logger) *Scanner {
	var limiter *rate.Limiter
	if config.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(config.Delay), 1)
	}
	return &Scanner{
		primary:   primary,
		secondary: secondary,
		limiter:   limiter,
		config:    config,
		logger:    log,
	}
}

// Scan walks backward from ref one calendar day at a time until the target
// window is collected or the attempt budget is exhausted. Every iteration
// charges an attempt, weekends included; weekends are skipped without a
// fetch and contribute no collected day. A day counts as collected when
// either market returned flow data. A partial window is a normal outcome
// around extended holidays, not an error.
func (s *Scanner) Scan(ctx context.Context, ref time.Time) (*History, error) {
	type dayRecords struct {
		date  time.Time
		chips map[string]contracts.DailyChipRecord
	}

	var (
		days      []dayRecords
		collected = 0
		attempts  = 0
	)

	for collected < s.config.Window && attempts < s.config.Budget {
		target := ref.AddDate(0, 0, -attempts)
		attempts++

		if wd := target.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		chips := make(map[string]contracts.DailyChipRecord)
		hasData := false

		if rows, status := s.primary.FetchChips(ctx, target); status == contracts.FetchOK {
			hasData = true
			foldChips(chips, rows)
		}
		if rows, status := s.secondary.FetchChips(ctx, target); status == contracts.FetchOK {
			hasData = true
			foldChips(chips, rows)
		}

		if !hasData {
			// Gap day: charged against the budget, not recorded
			continue
		}

		days = append(days, dayRecords{date: target, chips: chips})
		collected++
	}

	s.logger.WithFields(map[string]interface{}{
		"ref":       ref.Format("2006-01-02"),
		"collected": collected,
		"attempts":  attempts,
		"window":    s.config.Window,
	}).Info("Chip history scan finished")

	// The walk visits days newest-first, so the per-security series is
	// already ordered by recency. Securities absent from a day's payload
	// default to zero flow for that day.
	codes := make(map[string]bool)
	for _, d := range days {
		for code := range d.chips {
			codes[code] = true
		}
	}

	history := &History{
		Dates:  make([]time.Time, len(days)),
		series: make(map[string][]contracts.DailyChipRecord, len(codes)),
	}
	for i, d := range days {
		history.Dates[i] = d.date
	}
	for code := range codes {
		series := make([]contracts.DailyChipRecord, len(days))
		for i, d := range days {
			series[i] = d.chips[code] // zero value for missing codes
		}
		history.series[code] = series
	}

	return history, nil
}

// foldChips converts chip rows to lot records. Codes already present (from
// the primary market) are not overwritten.
func foldChips(dst map[string]contracts.DailyChipRecord, rows []contracts.ChipRow) {
	for _, row := range rows {
		if _, exists := dst[row.Code]; exists {
			continue
		}
		dst[row.Code] = contracts.DailyChipRecord{
			ForeignNet: row.ForeignShares / 1000,
			TrustNet:   row.TrustShares / 1000,
		}
	}
}

// History is the collected flow window: per-security series ordered from the
// most recent collected day to the oldest. Request-scoped, in-memory only.
type History struct {
	Dates  []time.Time
	series map[string][]contracts.DailyChipRecord
}

// NewHistory builds a history from pre-collected series, most recent day
// first.
func NewHistory(dates []time.Time, series map[string][]contracts.DailyChipRecord) *History {
	return &History{Dates: dates, series: series}
}

// Collected returns the number of trading days in the window.
func (h *History) Collected() int {
	return len(h.Dates)
}

// Series returns the flow series for code, most recent first. Unknown codes
// return nil.
func (h *History) Series(code string) []contracts.DailyChipRecord {
	return h.series[code]
}

// Codes returns every security seen in the window, sorted.
func (h *History) Codes() []string {
	codes := make([]string, 0, len(h.series))
	for code := range h.series {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
