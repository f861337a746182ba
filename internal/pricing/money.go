package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a price field as the pricing backend sends it: sometimes a bare
// number, sometimes an already-formatted string like "$15.00". The raw text
// is kept and formatting decides what to do with it.
type Money string

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Money(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*m = Money(n.String())
	return nil
}

func (m Money) String() string { return string(m) }

// Format renders the amount with two decimals and a currency symbol.
// Strings already carrying a symbol pass through untouched; unparseable
// values are returned as-is rather than dropped.
func (m Money) Format(symbol string) string {
	s := string(m)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "$") {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return symbol + d.StringFixed(2)
}
