// Package universe defines the "pure individual equity" universe: the
// eligibility filter shared by every ranking report and by the streak
// scanner, plus the industry classification reference data.
package universe

import "strings"

// Filter criteria constants. The code conventions are exchange-wide:
// "00"-prefixed codes are ETFs and funds, 6-digit codes are warrants, and a
// "KY" marker in the name flags a foreign-registered listing.
const (
	fundPrefix        = "00"
	warrantCodeLength = 6
	foreignMarker     = "KY"
)

// Eligible reports whether a security belongs to the pure-equity universe.
// The same predicate is used for universe selection and for ranking, so the
// two always agree on membership.
// ⭐ SSOT: 純個股篩選條件只定義在這裡
func Eligible(code, name string) bool {
	if strings.HasPrefix(code, fundPrefix) {
		return false
	}
	if len(code) >= warrantCodeLength {
		return false
	}
	if strings.Contains(name, foreignMarker) {
		return false
	}
	return true
}
