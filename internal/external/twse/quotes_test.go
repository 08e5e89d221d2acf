package twse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pochun/chipscan/internal/contracts"
)

// miIndexBody mimics the MI_INDEX bundle: an index table first, then the
// quote table identified by its 收盤價 column.
const miIndexBody = `{
	"stat": "OK",
	"tables": [
		{
			"fields": ["指數", "收盤指數", "漲跌點數"],
			"data": [["發行量加權股價指數", "23,500.11", "120.55"]]
		},
		{
			"fields": ["證券代號", "證券名稱", "成交股數", "成交筆數", "成交金額", "開盤價", "最高價", "最低價", "收盤價", "漲跌(+/-)", "漲跌價差"],
			"data": [
				["2330", "台積電  ", "31,234,567", "50,000", "32,000,000,000", "1040.00", "1055.00", "1035.00", "1050.00", "<p style= color:red>+</p>", "10.00"],
				["2317", "鴻海", "25,000,900", "30,000", "5,000,000,000", "205.00", "206.00", "201.50", "202.00", "<p style= color:green>-</p>", "3.00"],
				["1101", "台泥", "8,000,000", "9,000", "300,000,000", "36.00", "36.20", "35.90", "36.00", "<p> </p>", "0.00"]
			]
		}
	]
}`

func TestParseQuotes(t *testing.T) {
	rows, status := parseQuotes([]byte(miIndexBody))
	require.Equal(t, contracts.FetchOK, status)
	require.Len(t, rows, 3)

	tsmc := rows[0]
	assert.Equal(t, "2330", tsmc.Code)
	assert.Equal(t, "台積電", tsmc.Name, "name padding should be trimmed")
	assert.Equal(t, 1050.0, tsmc.Close)
	assert.Equal(t, 10.0, tsmc.Change, "red flag keeps the magnitude positive")
	assert.Equal(t, int64(31234567), tsmc.Shares)

	honhai := rows[1]
	assert.Equal(t, -3.0, honhai.Change, "green flag flips the sign")

	flat := rows[2]
	assert.Equal(t, 0.0, flat.Change)
}

func TestParseQuotes_HolidayStat(t *testing.T) {
	body := `{"stat": "很抱歉，沒有符合條件的資料!"}`
	rows, status := parseQuotes([]byte(body))
	assert.Equal(t, contracts.FetchEmpty, status)
	assert.Nil(t, rows)
}

func TestParseQuotes_MissingQuoteTable(t *testing.T) {
	body := `{"stat": "OK", "tables": [{"fields": ["指數"], "data": [["x"]]}]}`
	_, status := parseQuotes([]byte(body))
	assert.Equal(t, contracts.FetchMalformed, status)
}

func TestParseQuotes_NotJSON(t *testing.T) {
	_, status := parseQuotes([]byte("<html>maintenance</html>"))
	assert.Equal(t, contracts.FetchMalformed, status)
}

func TestSignedChange(t *testing.T) {
	tests := []struct {
		sign, magnitude string
		want            float64
	}{
		{"<p style= color:green>-</p>", "5.00", -5.0},
		{"<p style= color:red>+</p>", "5.00", 5.0},
		{"-", "2.50", -2.5},
		{"+", "2.50", 2.5},
		{"", "1.00", 1.0},
		{"<p style= color:green>-</p>", "-", 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, signedChange(tt.sign, tt.magnitude), "sign=%q", tt.sign)
	}
}
