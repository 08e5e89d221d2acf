package tpex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/pkg/cache"
)

// registryEntry is one company in the open-data registry (t187ap03_O).
type registryEntry struct {
	Code         string `json:"公司代號"`
	Name         string `json:"公司簡稱"`
	IndustryCode string `json:"產業別"`
}

// FetchRegistry fetches the OTC-company registry, the reference source for
// industry classification on this market.
// ⭐ SSOT: 上櫃公司基本資料只在這個函式抓
func (c *Client) FetchRegistry(ctx context.Context) ([]contracts.RegistryRow, contracts.FetchStatus) {
	url := fmt.Sprintf("%s/openapi/v1/t187ap03_O", c.openAPIURL)

	body, err := c.fetch(ctx, cache.Key("tpex:registry", "latest"), url, cache.TTLRegistry)
	if err != nil {
		c.logger.WithError(err).Debug("TPEX registry unavailable")
		return nil, contracts.FetchEmpty
	}

	rows, status := parseRegistry(body)
	c.logger.WithFields(map[string]interface{}{
		"status": status.String(),
		"count":  len(rows),
	}).Debug("Fetched TPEX registry")
	return rows, status
}

func parseRegistry(body []byte) ([]contracts.RegistryRow, contracts.FetchStatus) {
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
			Market:       contracts.MarketTPEX,
		})
	}

	if len(rows) == 0 {
		return nil, contracts.FetchEmpty
	}
	return rows, contracts.FetchOK
}
