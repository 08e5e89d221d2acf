// Package twse adapts the Taiwan Stock Exchange (上市) after-trading
// endpoints into the normalized row schema. TWSE payloads are
// self-describing, but the field order is not contractually stable, so every
// column is located by name (substring match) rather than by position.
package twse

import (
	"context"
	"time"

	"github.com/pochun/chipscan/pkg/cache"
	"github.com/pochun/chipscan/pkg/httputil"
	"github.com/pochun/chipscan/pkg/logger"
)

// Client handles communication with TWSE after-trading data
// ⭐ SSOT: 上市盤後資料呼叫只在這個 client
type Client struct {
	httpClient *httputil.Client
	cache      cache.Cache
	logger     *logger.Logger
	baseURL    string
	openAPIURL string
}

// NewClient creates a new TWSE client.
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

// dateParam renders a date the way TWSE query strings expect it.
func dateParam(date time.Time) string {
	return date.Format("20060102")
}

// fetch memoizes one endpoint call. A cache hit skips the network entirely;
// errors are returned raw so each adapter can convert them to its no-data
// signal.
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
