package twse

import (
	"context"
	"fmt"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/external/payload"
	"github.com/pochun/chipscan/pkg/cache"
)

// FetchValuation fetches per-security PE and PB ratios (BWIBBU).
// ⭐ SSOT: 上市本益比/淨值比只在這個函式抓
func (c *Client) FetchValuation(ctx context.Context, date time.Time) ([]contracts.ValuationRow, contracts.FetchStatus) {
	url := fmt.Sprintf("%s/rwd/zh/afterTrading/BWIBBU_d?date=%s&selectType=ALL&response=json",
		c.baseURL, dateParam(date))

	body, err := c.fetch(ctx, cache.Key("twse:valuation", dateParam(date)), url, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", dateParam(date)).Debug("TWSE valuation unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseValuation(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   dateParam(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TWSE valuation")
	return rows, status
}

func parseValuation(body []byte) ([]contracts.ValuationRow, contracts.FetchStatus) {
	env, err := payload.Decode(body)
	if err != nil {
		return nil, contracts.FetchMalformed
	}
	if !env.OK() {
		return nil, contracts.FetchEmpty
	}

	data := env.Rows()
	if len(data) == 0 {
		return nil, contracts.FetchEmpty
	}

	idxPE := payload.FieldIndex(env.Fields, "本益比", 5)
	idxPB := payload.FieldIndex(env.Fields, "股價淨值比", 6)

	rows := make([]contracts.ValuationRow, 0, len(data))
	for _, raw := range data {
		code := payload.Cell(raw, 0)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.ValuationRow{
			Code:    code,
			PERatio: payload.Float(payload.Cell(raw, idxPE)),
			PBRatio: payload.Float(payload.Cell(raw, idxPB)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
