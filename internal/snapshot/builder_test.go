package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/logger"
)

// fakeSource is a canned MarketSource.
type fakeSource struct {
	quotes     []contracts.QuoteRow
	chips      []contracts.ChipRow
	valuations []contracts.ValuationRow
}

func (f *fakeSource) FetchQuotes(ctx context.Context, date time.Time) ([]contracts.QuoteRow, contracts.FetchStatus) {
	return f.quotes, statusOf(len(f.quotes))
}

func (f *fakeSource) FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus) {
	return f.chips, statusOf(len(f.chips))
}

func (f *fakeSource) FetchValuation(ctx context.Context, date time.Time) ([]contracts.ValuationRow, contracts.FetchStatus) {
	return f.valuations, statusOf(len(f.valuations))
}

func statusOf(n int) contracts.FetchStatus {
	if n == 0 {
		return contracts.FetchEmpty
	}
	return contracts.FetchOK
}

var testDate = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

func TestBuilder_Build_MergesAllCategories(t *testing.T) {
	primary := &fakeSource{
		quotes: []contracts.QuoteRow{
			{Code: "2330", Name: " 台積電 ", Close: 1050, Change: 10, Shares: 31_234_567},
		},
		chips: []contracts.ChipRow{
			{Code: "2330", Name: "台積電", ForeignShares: 3_500_000, TrustShares: 1_200_000, DealerShares: -400_000},
		},
		valuations: []contracts.ValuationRow{
			{Code: "2330", PERatio: 28.5, PBRatio: 7.8},
		},
	}
	secondary := &fakeSource{
		quotes: []contracts.QuoteRow{
			{Code: "3297", Name: "杭特", Close: 45.5, Change: 0.55, Shares: 2_345_678},
		},
	}

	b := NewBuilder(primary, secondary, logger.NewNop())
	snap, err := b.Build(context.Background(), testDate, map[string]string{"2330": "半導體業"})
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())

	tsmc, ok := snap.Row("2330")
	require.True(t, ok)
	assert.Equal(t, "台積電", tsmc.Name, "builder trims padded names")
	assert.Equal(t, contracts.MarketTWSE, tsmc.Market)
	assert.Equal(t, int64(31_234), tsmc.VolumeLots, "shares convert to lots by truncation")
	assert.Equal(t, int64(3_500), tsmc.ForeignLots)
	assert.Equal(t, int64(1_200), tsmc.TrustLots)
	assert.Equal(t, int64(-400), tsmc.DealerLots)
	assert.Equal(t, int64(4_300), tsmc.NetInstitutional)
	assert.Equal(t, 7.8, tsmc.PBRatio)
	assert.InDelta(t, 134.62, tsmc.BookValuePerShare, 0.001)
	assert.Equal(t, "半導體業", tsmc.Industry)

	otc, ok := snap.Row("3297")
	require.True(t, ok)
	assert.Equal(t, contracts.MarketTPEX, otc.Market)
	assert.Equal(t, "其他", otc.Industry, "unmapped industry defaults")
	assert.InDelta(t, 1.22, otc.ChangePct, 0.001)
}

func TestBuilder_Build_DuplicateCodePrimaryWins(t *testing.T) {
	primary := &fakeSource{
		quotes: []contracts.QuoteRow{{Code: "2330", Name: "台積電", Close: 1050, Change: 10}},
	}
	secondary := &fakeSource{
		// Erroneous duplicate from the other feed
		quotes: []contracts.QuoteRow{{Code: "2330", Name: "幽靈", Close: 1, Change: 0}},
		chips:  []contracts.ChipRow{{Code: "2330", ForeignShares: 9_000_000}},
	}

	b := NewBuilder(primary, secondary, logger.NewNop())
	snap, err := b.Build(context.Background(), testDate, nil)
	require.NoError(t, err)

	require.Equal(t, 1, snap.Len(), "merge keeps exactly one row per code")
	row, _ := snap.Row("2330")
	assert.Equal(t, contracts.MarketTWSE, row.Market)
	assert.Equal(t, 1050.0, row.Close)
	assert.Equal(t, int64(0), row.ForeignLots, "secondary chips must not attach to the primary row")
}

func TestBuilder_Build_ChipOnlySecurityStillRanks(t *testing.T) {
	primary := &fakeSource{
		chips: []contracts.ChipRow{{Code: "2885", Name: "元大金", ForeignShares: 12_000_000}},
	}
	b := NewBuilder(primary, &fakeSource{}, logger.NewNop())

	snap, err := b.Build(context.Background(), testDate, nil)
	require.NoError(t, err)

	row, ok := snap.Row("2885")
	require.True(t, ok)
	assert.Equal(t, int64(12_000), row.ForeignLots)
	assert.Equal(t, 0.0, row.Close, "missing price stays zero, not an error")
}

func TestBuilder_Build_NoMarketData(t *testing.T) {
	b := NewBuilder(&fakeSource{}, &fakeSource{}, logger.NewNop())

	snap, err := b.Build(context.Background(), testDate, nil)
	assert.ErrorIs(t, err, contracts.ErrNoMarketData)
	assert.Nil(t, snap)
}
