package twse

import (
	"context"
	"fmt"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/external/payload"
	"github.com/pochun/chipscan/pkg/cache"
)

// Historical column positions in the T86 feed, used when the field names
// drift past substring recognition.
const (
	fallbackForeignIdx = 4
	fallbackTrustIdx   = 10
	fallbackDealerIdx  = 11
)

// FetchChips fetches the daily institutional net buy/sell table (三大法人).
// ⭐ SSOT: 上市法人買賣超只在這個函式抓
func (c *Client) FetchChips(ctx context.Context, date time.Time) ([]contracts.ChipRow, contracts.FetchStatus) {
	url := fmt.Sprintf("%s/rwd/zh/fund/T86?date=%s&selectType=ALL&response=json",
		c.baseURL, dateParam(date))

	body, err := c.fetch(ctx, cache.Key("twse:chips", dateParam(date)), url, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", dateParam(date)).Debug("TWSE chips unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseChips(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   dateParam(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TWSE chips")
	return rows, status
}

// parseChips extracts normalized chip rows from a T86 response body.
// The foreign column excludes foreign dealer self-trading (外陸資買賣超股數
// 不含外資自營商), matching the figure the exchange itself headlines.
func parseChips(body []byte) ([]contracts.ChipRow, contracts.FetchStatus) {
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

	idxForeign := payload.FieldIndex(env.Fields, "外陸資買賣超股數", fallbackForeignIdx)
	idxTrust := payload.FieldIndex(env.Fields, "投信買賣超股數", fallbackTrustIdx)
	idxDealer := payload.FieldIndex(env.Fields, "自營商買賣超股數", fallbackDealerIdx)

	rows := make([]contracts.ChipRow, 0, len(data))
	for _, raw := range data {
		code := payload.Cell(raw, 0)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.ChipRow{
			Code:          code,
			Name:          payload.Cell(raw, 1),
			ForeignShares: payload.Int(payload.Cell(raw, idxForeign)),
			TrustShares:   payload.Int(payload.Cell(raw, idxTrust)),
			DealerShares:  payload.Int(payload.Cell(raw, idxDealer)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
