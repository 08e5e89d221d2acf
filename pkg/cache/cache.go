// Package cache provides time-bounded memoization of upstream responses.
//
// Each raw upstream fetch is keyed by (endpoint identifier, date, params) so
// repeated user actions within a session do not hammer the exchanges. The
// clock is injectable to make TTL behavior deterministic in tests.
package cache

import (
	"context"
	"strings"
	"time"
)

// Standard TTLs per data category
const (
	TTLDaily    = 1 * time.Hour  // 盤後日資料 (快照、籌碼、估值)
	TTLRegistry = 24 * time.Hour // 公司基本資料 (產業別對照)
)

// Cache stores raw upstream response bodies with a TTL.
// ⭐ SSOT: upstream memoization 只透過這個介面
type Cache interface {
	// Get returns the cached body for key, or false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores body under key for ttl.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// Key builds a cache key from an endpoint identifier, a date string and
// optional extra parameters.
func Key(endpoint, date string, params ...string) string {
	parts := append([]string{endpoint, date}, params...)
	return strings.Join(parts, ":")
}

// Nop is a cache that stores nothing.
type Nop struct{}

func (Nop) Get(ctx context.Context, key string) ([]byte, bool)               { return nil, false }
func (Nop) Set(ctx context.Context, key string, body []byte, d time.Duration) {}
