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

// Stable column positions in the institutional trading feed (含鉅額交易,
// hedge-inclusive variant). Foreign/trust/dealer are the net columns.
const (
	chipIdxCode    = 0
	chipIdxName    = 1
	chipIdxForeign = 10
	chipIdxTrust   = 13
	chipIdxDealer  = 22
)

// FetchChips fetches the daily institutional net buy/sell table.
// ⭐ SSOT: 上櫃法人買賣超只在這個函式抓
func (c *Client) FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus) {
	endpoint := fmt.Sprintf("%s/web/stock/3insti/daily_trade/3itrade_hedge_result.php?l=zh-tw&o=json&se=AL&t=D&d=%s",
		c.baseURL, url.QueryEscape(ROCDate(date)))

	body, err := c.fetch(ctx, cache.Key("tpex:chips", cacheDate(date)), endpoint, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", ROCDate(date)).Debug("TPEX chips unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseChips(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   ROCDate(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TPEX chips")
	return rows, status
}

func parseChips(body []byte) ([]contracts.ChipRow, contracts.FetchStatus) {
	env, err := payload.Decode(body)
	if err != nil {
		return nil, contracts.FetchMalformed
	}

	data := env.Rows()
	if len(data) == 0 {
		return nil, contracts.FetchEmpty
	}

	rows := make([]contracts.ChipRow, 0, len(data))
	for _, raw := range data {
		code := payload.Cell(raw, chipIdxCode)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.ChipRow{
			Code:          code,
			Name:          payload.Cell(raw, chipIdxName),
			ForeignShares: payload.Int(payload.Cell(raw, chipIdxForeign)),
			TrustShares:   payload.Int(payload.Cell(raw, chipIdxTrust)),
			DealerShares:  payload.Int(payload.Cell(raw, chipIdxDealer)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
