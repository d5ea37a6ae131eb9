// Package history converts Kalshi candlesticks into price series for the
// House, Senate and combination markets.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickgao/kalshi-signals/internal/api"
	"github.com/rickgao/kalshi-signals/internal/pricing"
)

// Range is a lookback window selector.
type Range string

const (
	Week     Range = "1W"
	Month    Range = "1M"
	Quarter  Range = "3M"
	HalfYear Range = "6M"
	All      Range = "All"
)

// Ranges lists the selectable ranges in display order.
var Ranges = []Range{Week, Month, Quarter, HalfYear, All}

var rangeDays = map[Range]int{
	Week:     7,
	Month:    30,
	Quarter:  90,
	HalfYear: 180,
	All:      365,
}

// ParseRange accepts a range label, ignoring case.
func ParseRange(s string) (Range, error) {
	for _, r := range Ranges {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown range %q (want one of 1W, 1M, 3M, 6M, All)", s)
}

// Days returns the lookback in days.
func (r Range) Days() int {
	return rangeDays[r]
}

// PeriodInterval is the candle width in minutes: hourly for a week or
// less, daily otherwise.
func (r Range) PeriodInterval() int {
	if r.Days() <= 7 {
		return 60
	}
	return 1440
}

// Window builds the candlestick request for r ending at now.
func (r Range) Window(now time.Time) api.CandlesticksOptions {
	start := now.AddDate(0, 0, -r.Days())
	return api.CandlesticksOptions{
		StartTS:        start.Unix(),
		EndTS:          now.Unix(),
		PeriodInterval: r.PeriodInterval(),
	}
}

// Point is one candle in percent. Open, High and Low are nil when the API
// omitted them; Close is always present.
type Point struct {
	Time   time.Time `json:"time"`
	Open   *float64  `json:"open,omitempty"`
	High   *float64  `json:"high,omitempty"`
	Low    *float64  `json:"low,omitempty"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Parse converts candles to points sorted by time. Candles without a
// timestamp or a parseable close are dropped.
func Parse(candles []api.APICandle) []Point {
	out := make([]Point, 0, len(candles))
	for _, c := range candles {
		if c.EndPeriodTS == 0 {
			continue
		}
		p := c.Price
		closeVal, ok := pricing.CandlePercent(p.CloseDollars.String(), p.Close.String())
		if !ok {
			continue
		}
		out = append(out, Point{
			Time:   time.Unix(c.EndPeriodTS, 0).UTC(),
			Open:   optional(p.OpenDollars, p.Open),
			High:   optional(p.HighDollars, p.High),
			Low:    optional(p.LowDollars, p.Low),
			Close:  closeVal,
			Volume: max(c.Volume.Int64(), 0),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

func optional(dollars, cents api.FlexString) *float64 {
	v, ok := pricing.CandlePercent(dollars.String(), cents.String())
	if !ok {
		return nil
	}
	return &v
}

// Series is the history of one market.
type Series struct {
	Label  string  `json:"label"`
	Ticker string  `json:"ticker"`
	Points []Point `json:"points"`
}

// Last returns the most recent close.
func (s Series) Last() (float64, bool) {
	if len(s.Points) == 0 {
		return 0, false
	}
	return s.Points[len(s.Points)-1].Close, true
}

// Change is the last close minus the first close.
func (s Series) Change() float64 {
	if len(s.Points) < 2 {
		return 0
	}
	return pricing.Round(s.Points[len(s.Points)-1].Close-s.Points[0].Close, 2)
}

// Bounds returns the lowest and highest close.
func (s Series) Bounds() (lo, hi float64) {
	for i, p := range s.Points {
		if i == 0 || p.Close < lo {
			lo = p.Close
		}
		if i == 0 || p.Close > hi {
			hi = p.Close
		}
	}
	return lo, hi
}

// Volume sums contract volume over the series.
func (s Series) Volume() int64 {
	var total int64
	for _, p := range s.Points {
		total += p.Volume
	}
	return total
}
