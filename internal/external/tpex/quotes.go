package tpex

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/external/payload"
	"github.com/pochun/chipscan/pkg/cache"
)

// Stable column positions in the daily close quote feed.
const (
	quoteIdxCode   = 0
	quoteIdxName   = 1
	quoteIdxClose  = 2
	quoteIdxChange = 3
	quoteIdxShares = 8
)

// FetchQuotes fetches the daily close quote table for every OTC security.
// ⭐ SSOT: 上櫃收盤行情只在這個函式抓
func (c *Client) FetchQuotes(ctx context.Context, date time.Time) ([]contracts.QuoteRow, contracts.FetchStatus) {
	endpoint := fmt.Sprintf("%s/web/stock/aftertrading/daily_close_quotes/stk_quote_result.php?l=zh-tw&o=json&d=%s",
		c.baseURL, url.QueryEscape(ROCDate(date)))

	body, err := c.fetch(ctx, cache.Key("tpex:quotes", cacheDate(date)), endpoint, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", ROCDate(date)).Debug("TPEX quotes unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseQuotes(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   ROCDate(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TPEX quotes")
	return rows, status
}

// parseQuotes extracts normalized quote rows. The change column is already
// signed; no color-flag handling is needed on this market.
func parseQuotes(body []byte) ([]contracts.QuoteRow, contracts.FetchStatus) {
	env, err := payload.Decode(body)
	if err != nil {
		return nil, contracts.FetchMalformed
	}

	data := env.Rows()
	if len(data) == 0 {
		return nil, contracts.FetchEmpty
	}

	rows := make([]contracts.QuoteRow, 0, len(data))
	for _, raw := range data {
		code := payload.Cell(raw, quoteIdxCode)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.QuoteRow{
			Code:   code,
			Name:   payload.Cell(raw, quoteIdxName),
			Close:  payload.Float(payload.Cell(raw, quoteIdxClose)),
			Change: payload.Float(payload.Cell(raw, quoteIdxChange)),
			Shares: payload.Int(payload.Cell(raw, quoteIdxShares)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
