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

// Stable column positions in the PE-ratio analysis feed.
const (
	valuationIdxCode = 0
	valuationIdxPE   = 2
	valuationIdxPB   = 6
)

// FetchValuation fetches per-security PE and PB ratios.
// ⭐ SSOT: 上櫃本益比/淨值比只在這個函式抓
func (c *Client) FetchValuation(ctx context.Context, date time.Time) ([]contracts.ValuationRow, contracts.FetchStatus) {
	endpoint := fmt.Sprintf("%s/web/stock/aftertrading/peratio_analysis/pera_result.php?l=zh-tw&o=json&d=%s",
		c.baseURL, url.QueryEscape(ROCDate(date)))

	body, err := c.fetch(ctx, cache.Key("tpex:valuation", cacheDate(date)), endpoint, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", ROCDate(date)).Debug("TPEX valuation unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseValuation(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   ROCDate(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TPEX valuation")
	return rows, status
}

func parseValuation(body []byte) ([]contracts.ValuationRow, contracts.FetchStatus) {
	env, err := payload.Decode(body)
	if err != nil {
		return nil, contracts.FetchMalformed
	}

	data := env.Rows()
	if len(data) == 0 {
		return nil, contracts.FetchEmpty
	}

	rows := make([]contracts.ValuationRow, 0, len(data))
	for _, raw := range data {
		code := payload.Cell(raw, valuationIdxCode)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.ValuationRow{
			Code:    code,
			PERatio: payload.Float(payload.Cell(raw, valuationIdxPE)),
			PBRatio: payload.Float(payload.Cell(raw, valuationIdxPB)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
