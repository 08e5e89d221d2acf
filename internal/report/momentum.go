package report

import (
	"sort"
	"strconv"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/universe"
)

// MomentumRow is one security in the strong/weak leaderboard.
type MomentumRow struct {
	Rank       int     `json:"rank"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Close      float64 `json:"close"`
	ChangePct  float64 `json:"change_pct"`
	VolumeLots int64   `json:"volume_lots"`
}

// MomentumReport holds the daily strong/weak leaderboards ranked by
// percentage change.
type MomentumReport struct {
	Strong []MomentumRow `json:"strong"`
	Weak   []MomentumRow `json:"weak"`
}

// BuildMomentum ranks the eligible universe by percentage change, keeping
// only securities above the volume floor, and truncates both sides to topN.
func BuildMomentum(snap *contracts.MarketSnapshot, topN int, minVolumeLots int64) *MomentumReport {
	candidates := make([]contracts.SecurityRow, 0, snap.Len())
	for _, row := range snap.Rows {
		if !universe.Eligible(row.Code, row.Name) {
			continue
		}
		if row.VolumeLots < minVolumeLots {
			continue
		}
		candidates = append(candidates, row)
	}

	strong := rankMomentum(candidates, topN, false)
	weak := rankMomentum(candidates, topN, true)

	return &MomentumReport{Strong: strong, Weak: weak}
}

// rankMomentum sorts by change_pct and assigns dense ranks 1..N.
// Ties break by code for a deterministic order.
func rankMomentum(rows []contracts.SecurityRow, topN int, ascending bool) []MomentumRow {
	sorted := make([]contracts.SecurityRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ChangePct != sorted[j].ChangePct {
			if ascending {
				return sorted[i].ChangePct < sorted[j].ChangePct
			}
			return sorted[i].ChangePct > sorted[j].ChangePct
		}
		return sorted[i].Code < sorted[j].Code
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := make([]MomentumRow, len(sorted))
	for i, row := range sorted {
		out[i] = MomentumRow{
			Rank:       i + 1,
			Code:       row.Code,
			Name:       row.Name,
			Close:      row.Close,
			ChangePct:  row.ChangePct,
			VolumeLots: row.VolumeLots,
		}
	}
	return out
}

// momentumTable renders one side with presentation column names.
func momentumTable(title string, rows []MomentumRow) *Table {
	t := &Table{
		Title:   title,
		Columns: []string{"排名", "代碼", "商品", "成交", "漲幅%", "成交量(張)"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Rank), r.Code, r.Name,
			formatPrice(r.Close), formatPrice(r.ChangePct), formatInt(r.VolumeLots),
		})
	}
	return t
}

// StrongTable renders the strong side.
func (r *MomentumReport) StrongTable() *Table {
	return momentumTable("強勢股", r.Strong)
}

// WeakTable renders the weak side.
func (r *MomentumReport) WeakTable() *Table {
	return momentumTable("弱勢股", r.Weak)
}
