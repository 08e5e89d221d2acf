package contracts

import (
	"errors"
	"time"
)

// ErrNoMarketData is returned when every adapter came back empty for the
// requested date, typically a weekend, a holiday, or an end-of-day snapshot
// that has not been published yet.
var ErrNoMarketData = errors.New("no market data for requested date")

// SecurityRow is one security in a unified market snapshot. All volume and
// flow figures are in lots (張, 1000 shares); the shares→lots conversion is
// a deliberate precision loss matching board-lot reporting convention.
type SecurityRow struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market Market `json:"market"`

	Close      float64 `json:"close"`
	Change     float64 `json:"change"`
	ChangePct  float64 `json:"change_pct"`
	VolumeLots int64   `json:"volume_lots"`

	ForeignLots int64 `json:"foreign_lots"`
	TrustLots   int64 `json:"trust_lots"`
	DealerLots  int64 `json:"dealer_lots"`
	// NetInstitutional = ForeignLots + TrustLots + DealerLots
	NetInstitutional int64 `json:"net_institutional"`

	PERatio float64 `json:"pe_ratio"` // 0 = unavailable
	PBRatio float64 `json:"pb_ratio"` // 0 = unavailable
	// BookValuePerShare = Close / PBRatio when PBRatio > 0
	BookValuePerShare float64 `json:"book_value_per_share"`

	Industry string `json:"industry"`
}

// MarketSnapshot is the unified per-date table keyed by security code.
// Code is unique within one snapshot: the merge is a left-join, not a union.
type MarketSnapshot struct {
	Date time.Time
	Rows []SecurityRow

	byCode map[string]int
}

// NewMarketSnapshot builds a snapshot over rows, indexing them by code.
func NewMarketSnapshot(date time.Time, rows []SecurityRow) *MarketSnapshot {
	s := &MarketSnapshot{
		Date:   date,
		Rows:   rows,
		byCode: make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		s.byCode[row.Code] = i
	}
	return s
}

// Row returns the row for code, if present.
func (s *MarketSnapshot) Row(code string) (SecurityRow, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return SecurityRow{}, false
	}
	return s.Rows[i], true
}

// Len returns the number of securities in the snapshot.
func (s *MarketSnapshot) Len() int {
	return len(s.Rows)
}
