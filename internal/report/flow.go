package report

import (
	"sort"
	"strconv"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/universe"
)

// FlowRow is one security in the institutional net buy/sell leaderboard.
type FlowRow struct {
	Rank             int     `json:"rank"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Industry         string  `json:"industry"`
	Close            float64 `json:"close"`
	Change           float64 `json:"change"`
	VolumeLots       int64   `json:"volume_lots"`
	ForeignLots      int64   `json:"foreign_lots"`
	TrustLots        int64   `json:"trust_lots"`
	DealerLots       int64   `json:"dealer_lots"`
	NetInstitutional int64   `json:"net_institutional"`
	PERatio          float64 `json:"pe_ratio"`
	PBRatio          float64 `json:"pb_ratio"`
	BookValue        float64 `json:"book_value_per_share"`
}

// FlowReport holds the net institutional buy/sell leaderboards.
type FlowReport struct {
	Buy  []FlowRow `json:"buy"`
	Sell []FlowRow `json:"sell"`
}

// BuildFlow ranks the eligible universe by net institutional flow and
// truncates both sides to topN.
func BuildFlow(snap *contracts.MarketSnapshot, topN int) *FlowReport {
	candidates := make([]contracts.SecurityRow, 0, snap.Len())
	for _, row := range snap.Rows {
		if !universe.Eligible(row.Code, row.Name) {
			continue
		}
		candidates = append(candidates, row)
	}

	return &FlowReport{
		Buy:  rankFlow(candidates, topN, false),
		Sell: rankFlow(candidates, topN, true),
	}
}

func rankFlow(rows []contracts.SecurityRow, topN int, ascending bool) []FlowRow {
	sorted := make([]contracts.SecurityRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].NetInstitutional != sorted[j].NetInstitutional {
			if ascending {
				return sorted[i].NetInstitutional < sorted[j].NetInstitutional
			}
			return sorted[i].NetInstitutional > sorted[j].NetInstitutional
		}
		return sorted[i].Code < sorted[j].Code
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := make([]FlowRow, len(sorted))
	for i, row := range sorted {
		out[i] = FlowRow{
			Rank:             i + 1,
			Code:             row.Code,
			Name:             row.Name,
			Industry:         row.Industry,
			Close:            row.Close,
			Change:           row.Change,
			VolumeLots:       row.VolumeLots,
			ForeignLots:      row.ForeignLots,
			TrustLots:        row.TrustLots,
			DealerLots:       row.DealerLots,
			NetInstitutional: row.NetInstitutional,
			PERatio:          row.PERatio,
			PBRatio:          row.PBRatio,
			BookValue:        row.BookValuePerShare,
		}
	}
	return out
}

// flowTable renders one side. The net-flow column is renamed per side
// (法人買超 vs 法人賣超) for presentation clarity.
func flowTable(title, netColumn string, rows []FlowRow) *Table {
	t := &Table{
		Title: title,
		Columns: []string{
			"排名", "代號", "名稱", "產業類別", "收盤價", "漲跌", "成交量",
			"外資", "投信", "自營商", netColumn, "本益比", "股價淨值比", "每股淨值",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Rank), r.Code, r.Name, r.Industry,
			formatPrice(r.Close), formatPrice(r.Change), formatInt(r.VolumeLots),
			formatInt(r.ForeignLots), formatInt(r.TrustLots), formatInt(r.DealerLots),
			formatInt(r.NetInstitutional),
			formatPrice(r.PERatio), formatPrice(r.PBRatio), formatPrice(r.BookValue),
		})
	}
	return t
}

// BuyTable renders the buy side.
func (r *FlowReport) BuyTable() *Table {
	return flowTable("法人買超排行", "法人買超", r.Buy)
}

// SellTable renders the sell side.
func (r *FlowReport) SellTable() *Table {
	return flowTable("法人賣超排行", "法人賣超", r.Sell)
}
