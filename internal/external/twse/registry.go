package twse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/cache"
)

// registryEntry is one company in the open-data registry. The open API
// returns field names in Chinese.
type registryEntry struct {
	Code         string `json:"公司代號"`
	Name         string `json:"公司簡稱"`
	IndustryCode string `json:"產業別"`
}

// FetchRegistry fetches the listed-company registry (t187ap03_L), the
// reference source for industry classification.
// ⭐ SSOT: 上市公司基本資料只在這個函式抓
func (c *Client) FetchRegistry(ctx context.Context) ([]contracts.RegistryRow, contracts.FetchStatus) {
	url := fmt.Sprintf("%s/v1/opendata/t187ap03_L", c.openAPIURL)

	body, err := c.fetch(ctx, cache.Key("twse:registry", "latest"), url, cache.TTLRegistry)
	if err != nil {
		c.logger.WithError(err).Debug("TWSE registry unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseRegistry(body, contracts.MarketTWSE)
	c.logger.WithFields(map[string]interface{}{
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TWSE registry")
	return rows, status
}

// parseRegistry decodes an open-data registry body into normalized rows.
func parseRegistry(body []byte, market contracts.Market) ([]contracts.RegistryRow, contracts.FetchStatus) {
	var entries []registryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, contracts.FetchMalformed
	}
	if len(entries) == 0 {
		return nil, contracts.FetchEmpty
	}

	rows := make([]contracts.RegistryRow, 0, len(entries))
	for _, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			continue
		}
		rows = append(rows, contracts.RegistryRow{
			Code:         code,
			Name:         strings.TrimSpace(e.Name),
			IndustryCode: strings.TrimSpace(e.IndustryCode),
			Market:       market,
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
