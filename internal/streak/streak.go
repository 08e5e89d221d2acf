package streak

import "github.com/pochun/chipscan/internal/contracts"

// Compute derives the current run lengths from a flow series ordered most
// recent first. A buy streak is the count of leading days with strictly
// positive net flow; a sell streak counts strictly negative days. Zero flow
// breaks both runs: a day with no net position is not a continuation.
func Compute(series []contracts.DailyChipRecord) contracts.StreakResult {
	var r contracts.StreakResult

	for _, day := range series {
		if day.ForeignNet <= 0 {
			break
		}
		r.ForeignBuyDays++
	}
	for _, day := range series {
		if day.ForeignNet >= 0 {
			break
		}
		r.ForeignSellDays++
	}
	for _, day := range series {
		if day.TrustNet <= 0 {
			break
		}
		r.TrustBuyDays++
	}
	for _, day := range series {
		if day.TrustNet >= 0 {
			break
		}
		r.TrustSellDays++
	}

	return r
}
