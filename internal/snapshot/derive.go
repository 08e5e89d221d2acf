package snapshot

import (
	"math"

	"github.com/pochun/chipscan/internal/contracts"
)

const industryDefault = "其他"

// derive fills the computed fields of a merged row.
func derive(r *contracts.SecurityRow) {
	r.ChangePct = changePct(r.Close, r.Change)
	r.NetInstitutional = r.ForeignLots + r.TrustLots + r.DealerLots
	r.BookValuePerShare = bookValuePerShare(r.Close, r.PBRatio)
}

// changePct reconstructs the previous close from today's close and change
// and returns the percentage move, rounded to 2 decimals. A non-positive
// previous close (newly listed or halted security) yields 0.
func changePct(close, change float64) float64 {
	prevClose := close - change
	if prevClose <= 0 {
		return 0
	}
	return round2(change / prevClose * 100)
}

// bookValuePerShare derives 每股淨值 from the close and the price-to-book
// ratio. A PB of 0 means the ratio was unavailable upstream.
func bookValuePerShare(close, pbRatio float64) float64 {
	if pbRatio <= 0 {
		return 0
	}
	return round2(close / pbRatio)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
