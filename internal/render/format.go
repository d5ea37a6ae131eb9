// Package render holds formatting shared by the dashboard front ends.
// The console, web and tui subpackages present a dashboard.Snapshot.
package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/polls"
	"github.com/rickgao/kalshi-signals/internal/signal"
)

// NA marks a value that could not be computed this cycle.
const NA = "N/A"

// Percent formats a probability as "60.0%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Edge formats an edge in points with an explicit sign, as "+10.0".
func Edge(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}

// Points formats a price change in points with two decimals, as "-1.25".
func Points(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

// Volume formats a contract count with thousands separators.
func Volume(n int64) string {
	return humanize.Comma(n)
}

// Ballot summarizes a generic-ballot reading, as "D 47.0% / R 43.0% (fallback)".
func Ballot(g polls.Generic) string {
	s := fmt.Sprintf("D %s / R %s", Percent(g.Dem), Percent(g.Rep))
	if g.Fallback {
		s += " (fallback)"
	}
	return s
}

// Timestamp formats a snapshot time for display.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

// Tone classifies a recommendation for coloring: 1 for buys, -1 for sells
// and 0 for Watch.
func Tone(s model.Signal) int {
	switch signal.Recommendation(s.Recommendation) {
	case signal.StrongBuy, signal.Buy:
		return 1
	case signal.StrongSell, signal.Sell:
		return -1
	}
	return 0
}
