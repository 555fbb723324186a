// Package schema defines the layout of a base figures spreadsheet: the accepted
// local-market codes, the numeric columns in order, their header labels and the
// field names used when rows are submitted to the list store.
package schema

// MarketCode identifies a local market.
type MarketCode string

const (
	MarketRO MarketCode = "RO"
	MarketIT MarketCode = "IT"
	MarketES MarketCode = "ES"
	MarketTR MarketCode = "TR"
	MarketDE MarketCode = "DE"
	MarketIE MarketCode = "IE"
	MarketPT MarketCode = "PT"
	MarketUK MarketCode = "UK"
)

// Markets lists every accepted market in display order.
var Markets = []MarketCode{
	MarketRO, MarketIT, MarketES, MarketTR,
	MarketDE, MarketIE, MarketPT, MarketUK,
}

// ParseMarket returns the MarketCode for s.
// Matching is exact and case-sensitive: "ro" is not a market.
func ParseMarket(s string) (MarketCode, bool) {
	for _, m := range Markets {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// IsMarket reports whether s is an accepted market code.
func IsMarket(s string) bool {
	_, ok := ParseMarket(s)
	return ok
}

func (m MarketCode) String() string {
	return string(m)
}

// MarketStrings returns the market codes as plain strings.
func MarketStrings() []string {
	out := make([]string, len(Markets))
	for i, m := range Markets {
		out[i] = string(m)
	}
	return out
}
