// Package pricing turns Kalshi's mixed-unit price fields into percentages.
//
// The API has reported yes prices both as fractional-dollar strings
// ("0.5400") and as integer cents (54). Dollar fields always take priority.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-signals/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Percent returns the yes price of q in [0, 100] rounded to one decimal place.
// Fields are tried in order yes_bid_dollars, last_price_dollars, yes_bid,
// last_price; a field that is absent, unparseable or out of range is skipped.
// ok is false when no field yields a price, which is distinct from a 0% price.
func Percent(q model.Quote) (pct float64, ok bool) {
	p := q.Prices
	for _, raw := range []string{p.YesBidDollars, p.LastPriceDollars} {
		if pct, ok := FromDollars(raw, 1); ok {
			return pct, true
		}
	}
	for _, raw := range []string{p.YesBidCents, p.LastPriceCents} {
		if pct, ok := FromCents(raw, 1); ok {
			return pct, true
		}
	}
	return 0, false
}

// CandlePercent converts one OHLC price component, preferring the dollar field.
// Dollar values are rounded to two decimal places; cents are used as-is.
func CandlePercent(dollars, cents string) (float64, bool) {
	if pct, ok := FromDollars(dollars, 2); ok {
		return pct, true
	}
	d, ok := parse(cents)
	if !ok || d.IsNegative() || d.GreaterThan(hundred) {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// FromDollars scales a fractional-dollar string in [0, 1] to a percentage.
func FromDollars(raw string, places int32) (float64, bool) {
	d, ok := parse(raw)
	if !ok || d.IsNegative() || d.GreaterThan(one) {
		return 0, false
	}
	return d.Mul(hundred).Round(places).InexactFloat64(), true
}

// FromCents reads an integer-cents string in [0, 100] as a percentage.
func FromCents(raw string, places int32) (float64, bool) {
	d, ok := parse(raw)
	if !ok || d.IsNegative() || d.GreaterThan(hundred) {
		return 0, false
	}
	return d.Round(places).InexactFloat64(), true
}

// Round rounds x half away from zero using its shortest decimal form,
// so Round(2.05, 1) is 2.1 rather than the binary-float 2.0.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
