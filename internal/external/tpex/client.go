// Package tpex adapts the Taipei Exchange (上櫃/OTC) after-trading endpoints
// into the normalized row schema. TPEX payloads are dense positional arrays
// with generic or absent field names, but the column order is contractually
// stable, so extraction is by index. Dates are in the ROC calendar
// (year − 1911).
package tpex

import (
	"context"
	"fmt"
	"time"

	"github.com/pochun/chipscan/pkg/cache"
	"github.com/pochun/chipscan/pkg/httputil"
	"github.com/pochun/chipscan/pkg/logger"
)

// Client handles communication with TPEX after-trading data
// ⭐ SSOT: 上櫃盤後資料呼叫只在這個 client
type Client struct {
	httpClient *httputil.Client
	cache      cache.Cache
	logger     *logger.Logger
	baseURL    string
	openAPIURL string
}

// NewClient creates a new TPEX client.
func NewClient(httpClient *httputil.Client, store cache.Cache, log *logger.Logger, baseURL, openAPIURL string) *Client {
	if store == nil {
		store = cache.Nop{}
	}
	return &Client{
		httpClient: httpClient,
		cache:      store,
		logger:     log,
		baseURL:    baseURL,
		openAPIURL: openAPIURL,
	}
}

// ROCDate renders a date in the ROC calendar form TPEX query strings expect,
// e.g. 2026-01-02 → "115/01/02".
func ROCDate(date time.Time) string {
	return fmt.Sprintf("%d/%02d/%02d", date.Year()-1911, int(date.Month()), date.Day())
}

// cacheDate is the cache key form of a date (ASCII-safe, no slashes).
func cacheDate(date time.Time) string {
	return date.Format("20060102")
}

// fetch memoizes one endpoint call.
func (c *Client) fetch(ctx context.Context, key, url string, ttl time.Duration) ([]byte, error) {
	if body, ok := c.cache.Get(ctx, key); ok {
		return body, nil
	}

	body, err := c.httpClient.GetBody(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, body, ttl)
	return body, nil
}
