package streak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/logger"
)

// fakeChipSource serves canned flow rows per date and records which dates
// were fetched.
type fakeChipSource struct {
	byDate  map[string][]contracts.ChipRow
	fetched []time.Time
}

func (f *fakeChipSource) FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus) {
	f.fetched = append(f.fetched, date)
	rows, ok := f.byDate[date.Format("2006-01-02")]
	if !ok || len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}

// tradingDays serves one chip row for every non-weekend date.
type tradingDays struct {
	fetched []time.Time
}

func (f *tradingDays) FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus) {
	f.fetched = append(f.fetched, date)
	return []contracts.ChipRow{{Code: "2330", ForeignShares: 1_000_000, TrustShares: 500_000}}, contracts.FetchOK
}

func newScanner(primary, secondary ChipSource, window, budget int) *Scanner {
	return NewScanner(primary, secondary, Config{Window: window, Budget: budget}, logger.NewNop())
}

func TestScanner_SaturdayReferenceStillFillsWindow(t *testing.T) {
	// 2026-01-03 is a Saturday
	ref := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Saturday, ref.Weekday())

	src := &tradingDays{}
	s := newScanner(src, &fakeChipSource{}, 25, 60)

	history, err := s.Scan(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, 25, history.Collected(), "weekends are skipped but the window still fills within budget")
	for _, d := range src.fetched {
		wd := d.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "no fetch on Saturday")
		assert.NotEqual(t, time.Sunday, wd, "no fetch on Sunday")
	}

	// Most recent collected day first
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), history.Dates[0])
	assert.True(t, history.Dates[0].After(history.Dates[len(history.Dates)-1]))
}

func TestScanner_BudgetExhaustionYieldsPartialWindow(t *testing.T) {
	ref := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) // Friday

	src := &tradingDays{}
	s := newScanner(src, &fakeChipSource{}, 25, 10)

	history, err := s.Scan(context.Background(), ref)
	require.NoError(t, err)

	// 10 calendar days back from a Friday include one full weekend
	assert.Equal(t, 8, history.Collected(), "partial window is an acceptable outcome")
}

func TestScanner_GapDayChargesBudgetWithoutCollecting(t *testing.T) {
	ref := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) // Friday
	primary := &fakeChipSource{byDate: map[string][]contracts.ChipRow{
		// 2026-01-01 is a holiday: no data from either market
		"2026-01-02": {{Code: "2330", ForeignShares: 2_000_000}},
		"2025-12-31": {{Code: "2330", ForeignShares: 1_000_000}},
	}}

	s := newScanner(primary, &fakeChipSource{}, 2, 60)
	history, err := s.Scan(context.Background(), ref)
	require.NoError(t, err)

	require.Equal(t, 2, history.Collected())
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), history.Dates[0])
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), history.Dates[1], "the holiday is a gap, not a collected day")
}

func TestScanner_MissingSecurityDefaultsToZeroFlow(t *testing.T) {
	ref := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	primary := &fakeChipSource{byDate: map[string][]contracts.ChipRow{
		"2026-01-02": {
			{Code: "2330", ForeignShares: 2_000_000},
			{Code: "2317", ForeignShares: -1_000_000},
		},
		// 2317 absent on the older day
		"2026-01-01": {{Code: "2330", ForeignShares: 3_000_000}},
	}}

	s := newScanner(primary, &fakeChipSource{}, 2, 60)
	history, err := s.Scan(context.Background(), ref)
	require.NoError(t, err)

	series := history.Series("2317")
	require.Len(t, series, 2)
	assert.Equal(t, int64(-1000), series[0].ForeignNet)
	assert.Equal(t, contracts.DailyChipRecord{}, series[1], "absent security defaults to zero flow")

	assert.Equal(t, []string{"2317", "2330"}, history.Codes())
	assert.Nil(t, history.Series("9999"))
}

func TestScanner_SecondaryMarketContributes(t *testing.T) {
	ref := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	primary := &fakeChipSource{byDate: map[string][]contracts.ChipRow{
		"2026-01-02": {{Code: "2330", ForeignShares: 2_000_000, TrustShares: 1_000_000}},
	}}
	secondary := &fakeChipSource{byDate: map[string][]contracts.ChipRow{
		"2026-01-02": {
			{Code: "3297", ForeignShares: 500_000},
			// Duplicate of a primary code: primary record wins
			{Code: "2330", ForeignShares: 999_000_000},
		},
	}}

	s := newScanner(primary, secondary, 1, 60)
	history, err := s.Scan(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, int64(500), history.Series("3297")[0].ForeignNet)
	assert.Equal(t, int64(2000), history.Series("2330")[0].ForeignNet)
}
