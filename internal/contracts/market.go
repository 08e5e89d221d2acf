// Package contracts defines the shared domain types exchanged between the
// source adapters, the snapshot builder, the streak scanner and the reports.
package contracts

// Market identifies the exchange a security is listed on.
type Market string

const (
	// MarketTWSE is the primary exchange (上市). It wins tie-breaks when the
	// same code shows up in both feeds.
	MarketTWSE Market = "TWSE"
	// MarketTPEX is the secondary/OTC exchange (上櫃).
	MarketTPEX Market = "TPEX"
)

// FetchStatus is the tagged outcome of one adapter call. Adapters never let
// an upstream failure escape: holidays and not-yet-published snapshots are
// frequent conditions, not exceptions.
type FetchStatus int

const (
	// FetchOK means the adapter returned at least one normalized row.
	FetchOK FetchStatus = iota
	// FetchEmpty means upstream had no data for the requested date
	// (holiday, weekend, snapshot not yet published, network failure).
	FetchEmpty
	// FetchMalformed means upstream answered with a payload the adapter
	// could not recognize. Treated as no-data downstream, but logged
	// separately since it usually means a schema drift.
	FetchMalformed
)

// String implements fmt.Stringer for log fields.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchEmpty:
		return "empty"
	case FetchMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// QuoteRow is the normalized price row from one market's daily close feed.
// Change is already signed; TWSE's color-flag convention is resolved at the
// adapter boundary.
type QuoteRow struct {
	Code   string
	Name   string
	Close  float64
	Change float64
	Shares int64 // raw share count, converted to lots downstream
}

// ChipRow is the normalized institutional net buy/sell row. Values are raw
// shares, signed.
type ChipRow struct {
	Code          string
	Name          string
	ForeignShares int64
	TrustShares   int64
	DealerShares  int64
}

// ValuationRow is the normalized per/pbr row. Zero means unavailable.
type ValuationRow struct {
	Code    string
	PERatio float64
	PBRatio float64
}

// RegistryRow is one company from the exchange registry (industry
// classification reference data).
type RegistryRow struct {
	Code         string
	Name         string
	IndustryCode string
	Market       Market
}
