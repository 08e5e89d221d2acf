package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pochun/chipscan/internal/contracts"
)

func series(foreign ...int64) []contracts.DailyChipRecord {
	s := make([]contracts.DailyChipRecord, len(foreign))
	for i, f := range foreign {
		s[i] = contracts.DailyChipRecord{ForeignNet: f}
	}
	return s
}

func TestCompute_BuyStreakStopsAtFirstNonPositive(t *testing.T) {
	// Most recent first: +3, +5, +2, -1, +4
	r := Compute(series(3, 5, 2, -1, 4))
	assert.Equal(t, 3, r.ForeignBuyDays)
	assert.Equal(t, 0, r.ForeignSellDays)
}

func TestCompute_LeadingZeroBreaksBothRuns(t *testing.T) {
	r := Compute(series(0, 5, 5))
	assert.Equal(t, 0, r.ForeignBuyDays, "zero is not positive")
	assert.Equal(t, 0, r.ForeignSellDays, "zero is not negative either")
}

func TestCompute_SellStreak(t *testing.T) {
	r := Compute(series(-2, -1, -7, 3))
	assert.Equal(t, 0, r.ForeignBuyDays)
	assert.Equal(t, 3, r.ForeignSellDays)
}

func TestCompute_MutuallyExclusivePerClass(t *testing.T) {
	cases := [][]int64{
		{3, 5, 2, -1, 4},
		{-2, -1, 3},
		{0, 1, -1},
		{7},
		{},
	}
	for _, c := range cases {
		r := Compute(series(c...))
		assert.False(t, r.ForeignBuyDays > 0 && r.ForeignSellDays > 0,
			"buy and sell streaks cannot both be nonzero: %v", c)
	}
}

func TestCompute_ClassesAreIndependent(t *testing.T) {
	s := []contracts.DailyChipRecord{
		{ForeignNet: 2, TrustNet: -1},
		{ForeignNet: 1, TrustNet: -4},
		{ForeignNet: -5, TrustNet: -2},
		{ForeignNet: 3, TrustNet: 6},
	}
	r := Compute(s)
	assert.Equal(t, 2, r.ForeignBuyDays)
	assert.Equal(t, 0, r.ForeignSellDays)
	assert.Equal(t, 0, r.TrustBuyDays)
	assert.Equal(t, 3, r.TrustSellDays)
}

func TestCompute_EmptySeries(t *testing.T) {
	r := Compute(nil)
	assert.Equal(t, contracts.StreakResult{}, r)
	assert.False(t, r.Active())
}
