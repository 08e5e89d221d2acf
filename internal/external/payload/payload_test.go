package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Rows_AADataFirst(t *testing.T) {
	body := []byte(`{
		"aaData": [["3297","杭特","45.5","+0.5","1234000"]],
		"tables": [{"fields": ["代號"], "data": [["ignored"]]}]
	}`)

	env, err := Decode(body)
	require.NoError(t, err)

	rows := env.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "3297", Cell(rows[0], 0))
}

func TestDecode_Rows_TablesFallback(t *testing.T) {
	body := []byte(`{
		"aaData": [],
		"tables": [{"fields": ["代號","收盤"], "data": [["2330","1050"]]}]
	}`)

	env, err := Decode(body)
	require.NoError(t, err)

	rows := env.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "2330", Cell(rows[0], 0))
}

func TestDecode_Rows_TopLevelData(t *testing.T) {
	body := []byte(`{"stat":"OK","fields":["證券代號","證券名稱"],"data":[["2330","台積電"]]}`)

	env, err := Decode(body)
	require.NoError(t, err)
	assert.True(t, env.OK())

	rows := env.Rows()
	require.Len(t, rows, 1)
}

func TestDecode_Rows_AllEmpty(t *testing.T) {
	env, err := Decode([]byte(`{"stat":"很抱歉，沒有符合條件的資料!"}`))
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Nil(t, env.Rows())
}

func TestTableWithField(t *testing.T) {
	env, err := Decode([]byte(`{
		"tables": [
			{"fields": ["指數","漲跌點數"], "data": [["加權指數","100"]]},
			{"fields": ["證券代號","收盤價"], "data": [["2330","1050"]]}
		]
	}`))
	require.NoError(t, err)

	table, ok := env.TableWithField("收盤價")
	require.True(t, ok)
	assert.Equal(t, []string{"證券代號", "收盤價"}, table.Fields)

	_, ok = env.TableWithField("本益比")
	assert.False(t, ok)
}

func TestFieldIndex(t *testing.T) {
	fields := []string{"證券代號", "證券名稱", "外陸資買賣超股數(不含外資自營商)", "投信買賣超股數"}

	assert.Equal(t, 2, FieldIndex(fields, "外陸資買賣超股數", -1))
	assert.Equal(t, 3, FieldIndex(fields, "投信買賣超股數", -1))
	// Name drift falls back to the historical position
	assert.Equal(t, 4, FieldIndex(fields, "不存在的欄位", 4))
}

func TestCell(t *testing.T) {
	row := []interface{}{"  2330 ", 4531000.0, nil}

	assert.Equal(t, "2330", Cell(row, 0))
	// Large JSON numbers must not render in exponent notation
	assert.Equal(t, "4531000", Cell(row, 1))
	assert.Equal(t, "", Cell(row, 2))
	assert.Equal(t, "", Cell(row, 99))
}

func TestFloat_TolerantCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"-", 0},
		{"", 0},
		{"nan", 0},
		{"---", 0},
		{"None", 0},
		{"除息", 0},
		{"1,234.5", 1234.5},
		{"+0.55", 0.55},
		{"-3.2", -3.2},
		{" 105.0 ", 105},
		{"n/a", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Float(tt.in), "Float(%q)", tt.in)
	}
}

func TestLots_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int64(4531), Lots("4,531,900"))
	assert.Equal(t, int64(0), Lots("999"))
	assert.Equal(t, int64(-1), Lots("-1,500"))
	assert.Equal(t, int64(0), Lots("-"))
}
