package twse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/external/payload"
	"github.com/pochun/chipscan/pkg/cache"
)

// FetchQuotes fetches the daily close quote table for every listed security.
// ⭐ SSOT: 上市收盤行情只在這個函式抓
//
// The MI_INDEX bundle ships several tables (indexes, statistics, quotes);
// the quote table is identified as the one carrying a 收盤價 column.
func (c *Client) FetchQuotes(ctx context.Context, date time.Time) ([]contracts.QuoteRow, contracts.FetchStatus) {
	url := fmt.Sprintf("%s/rwd/zh/afterTrading/MI_INDEX?date=%s&type=ALL&response=json",
		c.baseURL, dateParam(date))

	body, err := c.fetch(ctx, cache.Key("twse:quotes", dateParam(date)), url, cache.TTLDaily)
	if err != nil {
		c.logger.WithError(err).WithField("date", dateParam(date)).Debug("TWSE quotes unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseQuotes(body)
	c.logger.WithFields(map[string]interface{}{
		"date":   dateParam(date),
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TWSE quotes")
	return rows, status
}

// parseQuotes extracts normalized quote rows from an MI_INDEX response body.
func parseQuotes(body []byte) ([]contracts.QuoteRow, contracts.FetchStatus) {
	env, err := payload.Decode(body)
	if err != nil {
		return nil, contracts.FetchMalformed
	}
	if !env.OK() {
		// stat carries a human-readable "no data" message on holidays
		return nil, contracts.FetchEmpty
	}

	table, ok := env.TableWithField("收盤價")
	if !ok {
		return nil, contracts.FetchMalformed
	}

	idxCode := payload.FieldIndex(table.Fields, "證券代號", -1)
	idxName := payload.FieldIndex(table.Fields, "證券名稱", -1)
	idxClose := payload.FieldIndex(table.Fields, "收盤價", -1)
	idxSign := payload.FieldIndex(table.Fields, "漲跌(+/-)", -1)
	idxDiff := payload.FieldIndex(table.Fields, "漲跌價差", -1)
	idxShares := payload.FieldIndex(table.Fields, "成交股數", -1)
	if idxCode < 0 || idxClose < 0 || idxSign < 0 || idxDiff < 0 || idxShares < 0 {
		return nil, contracts.FetchMalformed
	}

	rows := make([]contracts.QuoteRow, 0, len(table.Data))
	for _, raw := range table.Data {
		code := payload.Cell(raw, idxCode)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.QuoteRow{
			Code:   code,
			Name:   payload.Cell(raw, idxName),
			Close:  payload.Float(payload.Cell(raw, idxClose)),
			Change: signedChange(payload.Cell(raw, idxSign), payload.Cell(raw, idxDiff)),
			Shares: payload.Int(payload.Cell(raw, idxShares)),
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}

// signedChange combines TWSE's color-coded direction flag with the unsigned
// change magnitude. The flag is an HTML fragment; green (or a bare minus)
// marks a decline.
func signedChange(sign, magnitude string) float64 {
	v := payload.Float(magnitude)
	s := strings.ToLower(sign)
	if strings.Contains(s, "green") || strings.Contains(s, "-") {
		return -v
	}
	return v
}
