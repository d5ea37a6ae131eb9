package model

import "strings"

// -----------------------------------------------------------------------------
// Parties and chambers
// -----------------------------------------------------------------------------

// Party is a single-letter party code as it appears in Kalshi ticker suffixes.
type Party string

const (
	Democrat   Party = "D"
	Republican Party = "R"
)

// ParseParty accepts "D", "R", "Dem", "Rep", "Democrat", "Republican" (any case).
func ParseParty(s string) (Party, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "D", "DEM", "DEMOCRAT", "DEMOCRATS":
		return Democrat, true
	case "R", "REP", "REPUBLICAN", "REPUBLICANS":
		return Republican, true
	}
	return "", false
}

// Short returns the display abbreviation ("Dem" or "Rep").
func (p Party) Short() string {
	switch p {
	case Democrat:
		return "Dem"
	case Republican:
		return "Rep"
	}
	return string(p)
}

// Other returns the opposing party.
func (p Party) Other() Party {
	if p == Democrat {
		return Republican
	}
	return Democrat
}

// Chamber identifies a congressional chamber.
type Chamber string

const (
	House  Chamber = "house"
	Senate Chamber = "senate"
)

// Title returns "House" or "Senate".
func (c Chamber) Title() string {
	switch c {
	case House:
		return "House"
	case Senate:
		return "Senate"
	}
	return string(c)
}

// ControlMarketName is the display name of the control market for party p
// in chamber c, e.g. "Dem House Control".
func ControlMarketName(p Party, c Chamber) string {
	return p.Short() + " " + c.Title() + " Control"
}

// -----------------------------------------------------------------------------
// Market data
// -----------------------------------------------------------------------------

// PriceFields holds alternate wire representations of a market's yes price.
// Empty strings mean the field was absent or null.
type PriceFields struct {
	YesBidDollars    string // fractional dollars, e.g. "0.5400"
	LastPriceDollars string
	YesBidCents      string // integer cents, e.g. "54"
	LastPriceCents   string
}

// Quote is an open market as seen by the dashboard.
type Quote struct {
	Ticker string      `json:"ticker"`
	Title  string      `json:"title"`
	Prices PriceFields `json:"prices"`
	Volume int64       `json:"volume"`
}

// HasSuffix reports whether the ticker ends with suffix, ignoring case.
func (q Quote) HasSuffix(suffix string) bool {
	return strings.HasSuffix(strings.ToUpper(q.Ticker), strings.ToUpper(suffix))
}

// -----------------------------------------------------------------------------
// Signals
// -----------------------------------------------------------------------------

// Signal compares a market-implied probability against a fair value.
type Signal struct {
	Market         string  `json:"market"`
	Chamber        Chamber `json:"chamber"`
	MarketPct      float64 `json:"market_pct"`
	Source         string  `json:"source"`
	FairPct        float64 `json:"fair_pct"`
	Edge           float64 `json:"edge"`
	Recommendation string  `json:"recommendation"`
}
