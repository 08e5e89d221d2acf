package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pochun/chipscan/internal/contracts"
)

var (
	codePattern = regexp.MustCompile(`\d{4,6}`)
	asciiJunk   = regexp.MustCompile(`[A-Za-z0-9,;、\s]+`)
)

// ParseHoldings extracts security codes and name fragments from free-form
// holdings text. 使用者貼上的持股清單格式不固定, 同時接受代號與中文名稱.
func ParseHoldings(input string) (codes []string, names []string) {
	seen := make(map[string]bool)
	for _, code := range codePattern.FindAllString(input, -1) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for _, token := range asciiJunk.Split(input, -1) {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		names = append(names, token)
	}
	return codes, names
}

// PortfolioQuotes filters the snapshot down to the holdings named in input.
// A row matches on exact code or when its name contains a name fragment.
// Results sort by daily change percentage, best performer first.
func PortfolioQuotes(snap *contracts.MarketSnapshot, input string) []contracts.SecurityRow {
	codes, names := ParseHoldings(input)
	if len(codes) == 0 && len(names) == 0 {
		return nil
	}

	wantCode := make(map[string]bool, len(codes))
	for _, c := range codes {
		wantCode[c] = true
	}

	var out []contracts.SecurityRow
	for _, row := range snap.Rows {
		if wantCode[row.Code] {
			out = append(out, row)
			continue
		}
		for _, name := range names {
			if strings.Contains(row.Name, name) {
				out = append(out, row)
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ChangePct != out[j].ChangePct {
			return out[i].ChangePct > out[j].ChangePct
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// PortfolioTable renders the holdings quotes.
func PortfolioTable(rows []contracts.SecurityRow) *Table {
	t := &Table{
		Title: "自選持股行情",
		Columns: []string{
			"代號", "名稱", "產業類別", "收盤價", "漲跌", "漲幅%", "成交量",
			"外資", "投信", "自營商", "法人合計",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Code, r.Name, r.Industry,
			formatPrice(r.Close), formatPrice(r.Change), formatPrice(r.ChangePct),
			formatInt(r.VolumeLots),
			formatInt(r.ForeignLots), formatInt(r.TrustLots), formatInt(r.DealerLots),
			formatInt(r.NetInstitutional),
		})
	}
	return t
}
