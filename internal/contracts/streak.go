package contracts

// DailyChipRecord is the per-security institutional flow for one historical
// trading day, in lots, signed. Held in memory only for the scan window.
type DailyChipRecord struct {
	ForeignNet int64
	TrustNet   int64
}

// StreakResult holds the current run-length of consecutive buy/sell days per
// investor class. Per class, the buy and sell streaks are mutually exclusive:
// both derive from the sign of the same most recent day, so at most one can
// be nonzero. Both zero means no current run.
type StreakResult struct {
	ForeignBuyDays  int `json:"foreign_buy_days"`
	ForeignSellDays int `json:"foreign_sell_days"`
	TrustBuyDays    int `json:"trust_buy_days"`
	TrustSellDays   int `json:"trust_sell_days"`
}

// MaxBuy returns the longest current buy streak across investor classes.
func (r StreakResult) MaxBuy() int {
	if r.ForeignBuyDays > r.TrustBuyDays {
		return r.ForeignBuyDays
	}
	return r.TrustBuyDays
}

// MaxSell returns the longest current sell streak across investor classes.
func (r StreakResult) MaxSell() int {
	if r.ForeignSellDays > r.TrustSellDays {
		return r.ForeignSellDays
	}
	return r.TrustSellDays
}

// Active reports whether any investor class has a current run.
func (r StreakResult) Active() bool {
	return r.MaxBuy() > 0 || r.MaxSell() > 0
}
