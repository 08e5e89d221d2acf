// Package payload decodes the two JSON envelope shapes the exchange
// endpoints use interchangeably: the self-describing
// {stat, tables:[{fields,data}]} form and the flat {aaData:[[...]]} form.
// Upstream is not consistent about which form a given endpoint returns, so
// every adapter goes through the primary-then-fallback extraction here.
package payload

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Table is one self-describing table: column names plus row data.
type Table struct {
	Fields []string        `json:"fields"`
	Data   [][]interface{} `json:"data"`
}

// Envelope is the union of the response shapes seen across TWSE and TPEX
// endpoints. Only some of the members are populated for any given endpoint.
type Envelope struct {
	Stat   string          `json:"stat"`
	Fields []string        `json:"fields"`
	Data   [][]interface{} `json:"data"`
	Tables []Table         `json:"tables"`
	AAData [][]interface{} `json:"aaData"`
}

// Decode parses body into an Envelope.
func Decode(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// OK reports whether the stat gate passed. Endpoints without a stat member
// pass trivially.
func (e *Envelope) OK() bool {
	return e.Stat == "" || e.Stat == "OK"
}

// Rows extracts row data, trying aaData first, then tables[0].data, then the
// top-level data member. Returns nil when every shape is empty or absent.
func (e *Envelope) Rows() [][]interface{} {
	if len(e.AAData) > 0 {
		return e.AAData
	}
	if len(e.Tables) > 0 && len(e.Tables[0].Data) > 0 {
		return e.Tables[0].Data
	}
	if len(e.Data) > 0 {
		return e.Data
	}
	return nil
}

// TableWithField returns the first table whose field list contains a column
// name including substr. Used for TWSE bundles that ship several tables in
// one response.
func (e *Envelope) TableWithField(substr string) (*Table, bool) {
	for i := range e.Tables {
		if FieldIndex(e.Tables[i].Fields, substr, -1) >= 0 {
			return &e.Tables[i], true
		}
	}
	return nil, false
}

// FieldIndex finds the index of the column whose name contains substr.
// TWSE renames columns occasionally ("外陸資買賣超股數(不含外資自營商)" vs
// older spellings), so lookup is by substring, with a positional fallback
// for when the name drifts entirely.
func FieldIndex(fields []string, substr string, fallback int) int {
	for i, f := range fields {
		if strings.Contains(f, substr) {
			return i
		}
	}
	return fallback
}

// Cell stringifies the i-th cell of a row. JSON numbers decode as float64;
// they are re-rendered without exponent notation so the numeric coercion
// below sees plain digits. Out-of-range indexes yield "".
func Cell(row []interface{}, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// placeholders the exchanges emit for halted or non-trading securities.
var placeholders = map[string]bool{
	"-": true, "": true, "nan": true, "None": true, "---": true,
	"除息": true, "除權": true,
}

// Float is the tolerant numeric coercion used everywhere a field is expected
// numeric: placeholder tokens and anything unparsable become 0 instead of an
// error, because upstream freely mixes numbers with markers.
func Float(s string) float64 {
	s = strings.TrimSpace(s)
	if placeholders[s] {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Int coerces like Float, truncating any fractional part.
func Int(s string) int64 {
	return int64(Float(s))
}

// Lots converts a raw share count string to board lots (1000 shares),
// truncating toward zero. Fractional lots are dropped, not rounded; this
// matches how the exchanges themselves report lot figures.
func Lots(s string) int64 {
	return Int(s) / 1000
}
