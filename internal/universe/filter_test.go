package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pochun/chipscan/internal/contracts"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		secName  string
		eligible bool
	}{
		{"plain 4-digit equity", "2330", "台積電", true},
		{"ETF prefix excluded", "0050", "元大台灣50", false},
		{"ETF prefix on longer code", "00878", "國泰永續高股息", false},
		{"warrant-length code excluded", "912345", "某權證", false},
		{"KY name excluded", "4763", "材料-KY", false},
		{"5-digit special stock allowed", "91115", "存託憑證例", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, Eligible(tt.code, tt.secName))
		})
	}
}

func TestIndustryName(t *testing.T) {
	assert.Equal(t, "半導體業", IndustryName("24"))
	assert.Equal(t, "水泥工業", IndustryName("01"))
	assert.Equal(t, "其他", IndustryName("99"))
	assert.Equal(t, "其他", IndustryName(""))
}

func TestBuildStockList(t *testing.T) {
	twse := []contracts.RegistryRow{
		{Code: "2330", Name: "台積電", IndustryCode: "24", Market: contracts.MarketTWSE},
		{Code: "0050", Name: "元大台灣50", IndustryCode: "", Market: contracts.MarketTWSE},
		{Code: "4763", Name: "材料-KY", IndustryCode: "21", Market: contracts.MarketTWSE},
	}
	tpex := []contracts.RegistryRow{
		{Code: "3297", Name: "杭特", IndustryCode: "26", Market: contracts.MarketTPEX},
		// Erroneous duplicate of a listed code: primary market wins
		{Code: "2330", Name: "重複", IndustryCode: "99", Market: contracts.MarketTPEX},
	}

	list := BuildStockList(twse, tpex)

	assert.Len(t, list, 2, "ETF and KY names are filtered out")
	assert.Equal(t, "半導體業", list["2330"].Industry)
	assert.Equal(t, contracts.MarketTWSE, list["2330"].Market, "first registry wins duplicates")
	assert.Equal(t, "光電業", list["3297"].Industry)
}

func TestIndustryByCode_KeepsIneligibleSecurities(t *testing.T) {
	rows := []contracts.RegistryRow{
		{Code: "0050", Name: "元大台灣50", IndustryCode: ""},
		{Code: "2330", Name: "台積電", IndustryCode: "24"},
	}
	m := IndustryByCode(rows)
	assert.Equal(t, "其他", m["0050"])
	assert.Equal(t, "半導體業", m["2330"])
}
