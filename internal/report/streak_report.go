package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/streak"
	"github.com/pochun/chipscan/internal/universe"
)

// StreakRow is one security in the consecutive buy/sell leaderboard.
// Snapshot fields are enrich-only: a row still ranks when the reference
// day's snapshot has nothing for it.
type StreakRow struct {
	Rank       int     `json:"rank"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Industry   string  `json:"industry"`
	Close      float64 `json:"close"`
	ChangePct  float64 `json:"change_pct"`
	VolumeLots int64   `json:"volume_lots"`
	PERatio    float64 `json:"pe_ratio"`
	PBRatio    float64 `json:"pb_ratio"`
	BookValue  float64 `json:"book_value_per_share"`
	Foreign    int     `json:"foreign_days"`
	Trust      int     `json:"trust_days"`
	Days       int     `json:"days"`
	Detail     string  `json:"detail"`
}

// StreakReport holds the consecutive-buy and consecutive-sell leaderboards.
type StreakReport struct {
	Buy  []StreakRow `json:"buy"`
	Sell []StreakRow `json:"sell"`
}

// BuildStreak computes streaks for every code in the history, filters to
// the eligible universe, and ranks by streak length. snap may be nil when
// the reference day itself had no market data.
func BuildStreak(history *streak.History, snap *contracts.MarketSnapshot, stocks universe.StockList, topN int) *StreakReport {
	byCode := make(map[string]universe.Stock, len(stocks))
	for _, s := range stocks {
		byCode[s.Code] = s
	}

	var buy, sell []StreakRow
	for _, code := range history.Codes() {
		stock, ok := byCode[code]
		if !ok {
			continue
		}
		res := streak.Compute(history.Series(code))
		if !res.Active() {
			continue
		}

		row := StreakRow{
			Code:     code,
			Name:     stock.Name,
			Industry: stock.Industry,
		}
		if snap != nil {
			if sec, ok := snap.Row(code); ok {
				row.Close = sec.Close
				row.ChangePct = sec.ChangePct
				row.VolumeLots = sec.VolumeLots
				row.PERatio = sec.PERatio
				row.PBRatio = sec.PBRatio
				row.BookValue = sec.BookValuePerShare
			}
		}

		if d := res.MaxBuy(); d > 0 {
			r := row
			r.Foreign = res.ForeignBuyDays
			r.Trust = res.TrustBuyDays
			r.Days = d
			r.Detail = streakDetail(res.ForeignBuyDays, res.TrustBuyDays, true)
			buy = append(buy, r)
		}
		if d := res.MaxSell(); d > 0 {
			r := row
			r.Foreign = res.ForeignSellDays
			r.Trust = res.TrustSellDays
			r.Days = d
			r.Detail = streakDetail(res.ForeignSellDays, res.TrustSellDays, false)
			sell = append(sell, r)
		}
	}

	return &StreakReport{
		Buy:  rankStreak(buy, topN),
		Sell: rankStreak(sell, topN),
	}
}

// streakDetail describes which institution drives the streak.
func streakDetail(foreign, trust int, buying bool) string {
	verb := "連買"
	if !buying {
		verb = "連賣"
	}
	switch {
	case foreign > 0 && trust > 0:
		return fmt.Sprintf("土洋同步%s (外%d/投%d)", verb, foreign, trust)
	case foreign >= trust:
		return fmt.Sprintf("外資%s %d 天", verb, foreign)
	default:
		return fmt.Sprintf("投信%s %d 天", verb, trust)
	}
}

func rankStreak(rows []StreakRow, topN int) []StreakRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Days != rows[j].Days {
			return rows[i].Days > rows[j].Days
		}
		return rows[i].Code < rows[j].Code
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func streakTable(title string, rows []StreakRow) *Table {
	t := &Table{
		Title: title,
		Columns: []string{
			"排名", "代號", "名稱", "產業類別", "收盤價", "漲幅%", "成交量",
			"本益比", "股價淨值比", "每股淨值", "外資", "投信", "連續天數", "詳細說明",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Rank), r.Code, r.Name, r.Industry,
			formatPrice(r.Close), formatPrice(r.ChangePct), formatInt(r.VolumeLots),
			formatPrice(r.PERatio), formatPrice(r.PBRatio), formatPrice(r.BookValue),
			strconv.Itoa(r.Foreign), strconv.Itoa(r.Trust),
			strconv.Itoa(r.Days), r.Detail,
		})
	}
	return t
}

// BuyTable renders the consecutive-buy leaderboard.
func (r *StreakReport) BuyTable() *Table {
	return streakTable("法人連續買超排行", r.Buy)
}

// SellTable renders the consecutive-sell leaderboard.
func (r *StreakReport) SellTable() *Table {
	return streakTable("法人連續賣超排行", r.Sell)
}
