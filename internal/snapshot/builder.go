// Package snapshot builds the unified per-date market table from the source
// adapters: price, institutional flow and valuation for both exchanges,
// merged into one SecurityRow collection keyed by code.
package snapshot

import (
	"context"
	"strings"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/logger"
)

// MarketSource is the adapter contract one exchange fulfills. Both the twse
// and tpex clients satisfy it.
type MarketSource interface {
	FetchQuotes(ctx context.Context, date time.Time) ([]contracts.QuoteRow, contracts.FetchStatus)
	FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus)
	FetchValuation(ctx context.Context, date time.Time) ([]contracts.ValuationRow, contracts.FetchStatus)
}

// Builder assembles unified market snapshots.
// ⭐ SSOT: 全市場快照只在這裡組裝
type Builder struct {
	primary   MarketSource // 上市, wins duplicate codes
	secondary MarketSource // 上櫃
	logger    *logger.Logger
}

// NewBuilder creates a snapshot builder over the two market sources.
func NewBuilder(primary, secondary MarketSource, log *logger.Logger) *Builder {
	return &Builder{
		primary:   primary,
		secondary: secondary,
		logger:    log,
	}
}

// Build fetches all data categories for date from both markets and merges
// them. industry maps code→category name; unmapped codes default to 其他.
//
// Returns contracts.ErrNoMarketData when every adapter came back empty.
// Partial data (one market down, valuation missing) is not an error; the
// missing fields stay zero.
func (b *Builder) Build(ctx context.Context, date time.Time, industry map[string]string) (*contracts.MarketSnapshot, error) {
	var (
		rows    []contracts.SecurityRow
		seen    = make(map[string]int)
		anyData = false
	)

	for _, m := range []struct {
		market contracts.Market
		source MarketSource
	}{
		{contracts.MarketTWSE, b.primary},
		{contracts.MarketTPEX, b.secondary},
	} {
		quotes, quoteStatus := m.source.FetchQuotes(ctx, date)
		chips, chipStatus := m.source.FetchChips(ctx, date)
		valuations, valStatus := m.source.FetchValuation(ctx, date)

		if quoteStatus == contracts.FetchOK || chipStatus == contracts.FetchOK || valStatus == contracts.FetchOK {
			anyData = true
		}

		rows = mergeMarket(rows, seen, m.market, quotes, chips, valuations)
	}

	if !anyData {
		b.logger.WithField("date", date.Format("2006-01-02")).Warn("No market data from any adapter")
		return nil, contracts.ErrNoMarketData
	}

	for i := range rows {
		if name, ok := industry[rows[i].Code]; ok {
			rows[i].Industry = name
		} else {
			rows[i].Industry = industryDefault
		}
		derive(&rows[i])
	}

	b.logger.WithFields(map[string]interface{}{
		"date":       date.Format("2006-01-02"),
		"securities": len(rows),
	}).Info("Market snapshot built")

	return contracts.NewMarketSnapshot(date, rows), nil
}

// mergeMarket folds one market's partial tables into the accumulated rows.
// The join key is the security code: quotes form the base rows, chips and
// valuation attach by code, and chip rows for codes without a quote are
// appended so flow-only securities still rank. Codes already claimed by an
// earlier market are skipped: the merge is a left-join with first-market
// precedence, never a union that double-counts.
func mergeMarket(
	rows []contracts.SecurityRow,
	seen map[string]int,
	market contracts.Market,
	quotes []contracts.QuoteRow,
	chips []contracts.ChipRow,
	valuations []contracts.ValuationRow,
) []contracts.SecurityRow {
	claimed := func(code string) bool {
		i, ok := seen[code]
		return ok && rows[i].Market != market
	}

	for _, q := range quotes {
		code := strings.TrimSpace(q.Code)
		if code == "" || claimed(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			// Duplicate within the same feed: first row wins
			continue
		}
		seen[code] = len(rows)
		rows = append(rows, contracts.SecurityRow{
			Code:       code,
			Name:       strings.TrimSpace(q.Name),
			Market:     market,
			Close:      q.Close,
			Change:     q.Change,
			VolumeLots: q.Shares / 1000,
		})
	}

	for _, c := range chips {
		code := strings.TrimSpace(c.Code)
		if code == "" || claimed(code) {
			continue
		}
		i, ok := seen[code]
		if !ok {
			i = len(rows)
			seen[code] = i
			rows = append(rows, contracts.SecurityRow{
				Code:   code,
				Name:   strings.TrimSpace(c.Name),
				Market: market,
			})
		}
		rows[i].ForeignLots = c.ForeignShares / 1000
		rows[i].TrustLots = c.TrustShares / 1000
		rows[i].DealerLots = c.DealerShares / 1000
	}

	for _, v := range valuations {
		code := strings.TrimSpace(v.Code)
		if code == "" || claimed(code) {
			continue
		}
		// Valuation never creates rows; it only enriches existing ones
		if i, ok := seen[code]; ok {
			rows[i].PERatio = v.PERatio
			rows[i].PBRatio = v.PBRatio
		}
	}

	return rows
}
